package tetris

// landingY returns the lowest reference row the active piece can reach by
// falling straight down from where it is now. It does not mutate the board.
func (b *Board) landingY() int {
	y := b.cur.Y
	for !b.collides(b.cur.X, y+1, b.cur.Shape) {
		y++
	}
	return y
}

// ShadowPiece returns the active piece translated to its landing row.
func (b *Board) ShadowPiece() Piece {
	p := b.cur
	p.Y = b.landingY()
	return p
}

// refreshShadow repaints the drop preview for the active piece. Shadow cells
// only ever go into empty cells, so they never cover the piece or terrain.
func (b *Board) refreshShadow() {
	b.clearShadow()
	for _, p := range cellsAt(b.cur.X, b.landingY(), b.cur.Shape) {
		if !b.inBounds(p.X, p.Y) {
			continue
		}
		idx := b.index(p.X, p.Y)
		if b.cells[idx] != CellEmpty {
			continue
		}
		b.cells[idx] = CellShadow
		b.shadowCells = append(b.shadowCells, idx)
	}
}

// clearShadow removes the previous preview. Cells since taken over by the
// piece or by terrain are left as they are.
func (b *Board) clearShadow() {
	for _, idx := range b.shadowCells {
		if b.cells[idx] == CellShadow {
			b.cells[idx] = CellEmpty
		}
	}
	b.shadowCells = b.shadowCells[:0]
}
