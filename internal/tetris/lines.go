package tetris

// TryClearLines removes every full row and returns how many were removed.
// A row is full when none of its cells is Empty or Shadow. Rows above a
// removed row drop by one and the vacated top row becomes Empty.
//
// If a piece is falling it is lifted out of the grid for the scan and put
// back afterwards, so only settled terrain is ever cleared. The piece drops
// by one for every removed row below it and keeps its place relative to the
// terrain around it.
func (b *Board) TryClearLines() int {
	falling := b.state == StateFalling
	below := 0
	if falling {
		b.erasePiece()
		b.clearShadow()
		for y := max(b.cur.Bottom()+1, 0); y < b.height; y++ {
			if b.rowFull(y) {
				below++
			}
		}
	}
	n := b.clearLines()
	b.stats.Lines += n
	if falling {
		b.cur.Y += below
		b.paintPiece()
		b.refreshShadow()
	}
	return n
}

// clearLines scans rows top to bottom. After row y is removed the row that
// slides into y was already scanned and found not full, so the scan simply
// continues at y+1 without skipping or recounting anything.
func (b *Board) clearLines() int {
	cleared := 0
	for y := range b.height {
		if b.rowFull(y) {
			b.removeRow(y)
			cleared++
		}
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for x := range b.width {
		if !b.cells[b.index(x, y)].Solid() {
			return false
		}
	}
	return true
}

// removeRow shifts rows [0, row) down by one and empties row 0.
func (b *Board) removeRow(row int) {
	for y := row; y > 0; y-- {
		b.copyRowTrusted(y, y-1)
	}
	for x := range b.width {
		b.setTrusted(x, 0, CellEmpty)
	}
}

// copyRowTrusted and setTrusted write without bounds or collision checks.
// They are reserved for line compaction, whose row indices always come from
// the scan over [0, height).
func (b *Board) copyRowTrusted(dst, src int) {
	copy(b.cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
}

func (b *Board) setTrusted(x, y int, c Cell) {
	b.cells[y*b.width+x] = c
}
