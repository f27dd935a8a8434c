package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: blockview %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data to be an object; got: %#v", env["data"])
	}
	return m
}

func TestCLISmoke(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "init")

	doc := mustRun(t, "--dir", dir, "docs", "add", "Meeting notes")
	docID, _ := dataMap(t, doc)["id"].(string)
	if docID == "" {
		t.Fatalf("expected docs add to return an id; got: %#v", doc["data"])
	}
	mustRun(t, "--dir", dir, "docs", "use", docID)

	a := mustRun(t, "--dir", dir, "blocks", "add", "First point")
	aID, _ := dataMap(t, a)["id"].(string)
	if aID == "" {
		t.Fatalf("expected blocks add to return an id; got: %#v", a["data"])
	}
	g := mustRun(t, "--dir", dir, "blocks", "add", "--kind", "group", "Agenda")
	gID, _ := dataMap(t, g)["id"].(string)
	b := mustRun(t, "--dir", dir, "blocks", "add", "Second point")
	bID, _ := dataMap(t, b)["id"].(string)

	// Move the second point under the group.
	mv := mustRun(t, "--dir", dir, "blocks", "move", bID, "--to-parent", gID, "--index", "0")
	if changed, _ := dataMap(t, mv)["changed"].(bool); !changed {
		t.Fatalf("expected move to report changed; got: %#v", mv["data"])
	}

	listed := mustRun(t, "--dir", dir, "blocks", "list")
	rows, ok := listed["data"].([]any)
	if !ok || len(rows) != 3 {
		t.Fatalf("expected 3 block rows; got: %#v", listed["data"])
	}
	second, _ := rows[2].(map[string]any)
	if second["clientId"] != bID || second["parentId"] != gID {
		t.Fatalf("expected %s nested under %s; got row: %#v", bID, gID, second)
	}

	mustRun(t, "--dir", dir, "blocks", "select", aID)
	mustRun(t, "--dir", dir, "blocks", "remove", aID)

	evs := mustRun(t, "--dir", dir, "events", "list")
	if xs, ok := evs["data"].([]any); !ok || len(xs) == 0 {
		t.Fatalf("expected events after mutations; got: %#v", evs["data"])
	}

	mustRun(t, "--dir", dir, "docs", "archive", docID)
	docs := mustRun(t, "--dir", dir, "docs", "list")
	if xs, ok := docs["data"].([]any); !ok || len(xs) != 0 {
		t.Fatalf("expected no active documents after archive; got: %#v", docs["data"])
	}
	all := mustRun(t, "--dir", dir, "docs", "list", "--all")
	if xs, ok := all["data"].([]any); !ok || len(xs) != 1 {
		t.Fatalf("expected one document with --all; got: %#v", all["data"])
	}
}

func TestCLIBlocksRequireDocument(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	_, stderr, err := runCLI(t, []string{"--dir", dir, "blocks", "list"})
	if err == nil {
		t.Fatalf("expected blocks list without a document to fail")
	}
	if !bytes.Contains(stderr, []byte("no current document")) {
		t.Fatalf("expected helpful error; stderr:\n%s", stderr)
	}
}

func TestCLIUnknownDocumentFails(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	_, _, err := runCLI(t, []string{"--dir", dir, "blocks", "list", "--doc", "doc-nope"})
	if err == nil {
		t.Fatalf("expected unknown --doc to fail")
	}
}
