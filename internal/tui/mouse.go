package tui

// dragAdapter turns terminal mouse coordinates into drag-space ticks. One
// terminal row maps to rowHeight translate units; columns are wider than they
// are meaningful, so a couple of cells of horizontal travel is already a
// deliberate re-parent gesture.
const dragCellWidth = 12

type dragAdapter struct {
	active bool
	startX int
	startY int
	lastY  int
}

func (a *dragAdapter) begin(x, y int) {
	a.active = true
	a.startX = x
	a.startY = y
	a.lastY = y
}

// tick samples the pointer at (x, y) while the dragged row currently sits at
// position in the flattened list. Velocity is the sign of the row delta since
// the previous sample; a sample on the same row reports zero.
func (a *dragAdapter) tick(x, y, position int) dragTick {
	velocity := 0
	if y > a.lastY {
		velocity = 1
	} else if y < a.lastY {
		velocity = -1
	}
	a.lastY = y
	return dragTick{
		vertical:   (y - a.startY) * rowHeight,
		horizontal: (x - a.startX) * dragCellWidth,
		velocity:   velocity,
		position:   position,
	}
}

func (a *dragAdapter) reset() {
	a.active = false
	a.startX = 0
	a.startY = 0
	a.lastY = 0
}
