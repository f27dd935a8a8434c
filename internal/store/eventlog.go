package store

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"blockview-cli/internal/model"
)

// AppendEvent appends one JSONL record to events.jsonl. The log is append-only
// history for humans and scripts; state never replays from it.
func (s Store) AppendEvent(typ, entityID string, payload any) error {
	typ = strings.TrimSpace(typ)
	entityID = strings.TrimSpace(entityID)
	if typ == "" || entityID == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	id, err := NewEventID()
	if err != nil {
		return err
	}
	ev := model.Event{
		ID:       id,
		TS:       time.Now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.eventsPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(raw, '\n')); err != nil {
		return err
	}
	return nil
}

// ReadEvents returns all events in log order. Malformed lines are skipped;
// a missing log is an empty history, not an error.
func (s Store) ReadEvents() ([]model.Event, error) {
	f, err := os.Open(s.eventsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []model.Event
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ev model.Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadEventsTail returns the last n events in log order.
func (s Store) ReadEventsTail(n int) ([]model.Event, error) {
	all, err := s.ReadEvents()
	if err != nil {
		return nil, err
	}
	if n <= 0 || len(all) <= n {
		return all, nil
	}
	return all[len(all)-n:], nil
}
