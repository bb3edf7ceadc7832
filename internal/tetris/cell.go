package tetris

// Cell is the state of one grid cell.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellShadow
	CellT
	CellS1
	CellS2
	CellI

	// CellOutOfRange is returned by queries outside the grid. It is never stored.
	CellOutOfRange Cell = 0xFF
)

// String returns a human-readable name for the cell state.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "Empty"
	case CellShadow:
		return "Shadow"
	case CellT:
		return "T"
	case CellS1:
		return "S1"
	case CellS2:
		return "S2"
	case CellI:
		return "I"
	case CellOutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// Solid reports whether the cell blocks movement: any block, never Empty or Shadow.
func (c Cell) Solid() bool {
	return c != CellEmpty && c != CellShadow
}

// Valid reports whether c is a state that may be stored in the grid.
func (c Cell) Valid() bool {
	return c <= CellI
}

// Rune returns the single-character glyph used by text renderers and scripts.
func (c Cell) Rune() rune {
	switch c {
	case CellEmpty:
		return '.'
	case CellShadow:
		return ':'
	case CellT:
		return 'T'
	case CellS1:
		return 'S'
	case CellS2:
		return 'Z'
	case CellI:
		return 'I'
	default:
		return '?'
	}
}

// CellFromRune is the inverse of Cell.Rune. '#' is accepted as a generic
// settled block and maps to CellT.
func CellFromRune(r rune) (Cell, bool) {
	switch r {
	case '.', ' ':
		return CellEmpty, true
	case ':':
		return CellShadow, true
	case 'T', '#':
		return CellT, true
	case 'S':
		return CellS1, true
	case 'Z':
		return CellS2, true
	case 'I':
		return CellI, true
	}
	return CellOutOfRange, false
}
