// Package tetris implements the falling-block simulation core: piece shapes,
// the board grid, collision, line clearing and the game-over rule.
//
// The package is UI-agnostic and deterministic for a given RNG seed. It never
// touches the terminal, the clock or the filesystem; drivers feed it commands
// and read back cell states.
package tetris

import "fmt"

// Kind identifies a tetromino variant.
type Kind uint8

const (
	KindT Kind = iota
	KindS1
	KindS2
	KindI
)

// String returns the short name of the variant.
func (k Kind) String() string {
	switch k {
	case KindT:
		return "T"
	case KindS1:
		return "S1"
	case KindS2:
		return "S2"
	case KindI:
		return "I"
	default:
		return "Unknown"
	}
}

// Cell returns the cell state a settled or active block of this kind shows.
func (k Kind) Cell() Cell {
	switch k {
	case KindT:
		return CellT
	case KindS1:
		return CellS1
	case KindS2:
		return CellS2
	case KindI:
		return CellI
	default:
		return CellOutOfRange
	}
}

// ParseKind converts a variant name ("T", "S1", "S2", "I") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "T", "t":
		return KindT, nil
	case "S1", "s1", "S", "s":
		return KindS1, nil
	case "S2", "s2", "Z", "z":
		return KindS2, nil
	case "I", "i":
		return KindI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Offset is a cell position relative to a piece's reference point.
type Offset struct {
	DX, DY int
}

// Shape is the ordered set of four offsets occupied by a piece.
// It is a value type: rotating returns a new Shape and never aliases.
type Shape [4]Offset

// Rotate applies a quarter turn to every offset.
// Clockwise maps (x, y) to (y, -x); counter-clockwise maps (x, y) to (-y, x).
func (s Shape) Rotate(clockwise bool) Shape {
	var out Shape
	for i, o := range s {
		if clockwise {
			out[i] = Offset{DX: o.DY, DY: -o.DX}
		} else {
			out[i] = Offset{DX: -o.DY, DY: o.DX}
		}
	}
	return out
}

// Turn applies n clockwise quarter turns (n is taken modulo 4).
func (s Shape) Turn(n int) Shape {
	n = ((n % 4) + 4) % 4
	for range n {
		s = s.Rotate(true)
	}
	return s
}

// Template is the spawn shape of one variant.
type Template struct {
	Kind  Kind
	Shape Shape
}

var (
	shapeT  = Shape{{-1, 0}, {0, 0}, {1, 0}, {0, 1}}
	shapeS1 = Shape{{0, 0}, {1, 0}, {-1, 1}, {0, 1}}
	shapeS2 = Shape{{-1, 0}, {0, 0}, {0, 1}, {1, 1}}
	shapeI  = Shape{{0, -1}, {0, 0}, {0, 1}, {0, 2}}
)

// Library is an immutable set of templates, one per variant.
type Library struct {
	name      string
	templates []Template
}

// ClassicLibrary returns the four-variant library: T, S1, S2 and I.
func ClassicLibrary() Library {
	return Library{
		name: "classic",
		templates: []Template{
			{Kind: KindT, Shape: shapeT},
			{Kind: KindS1, Shape: shapeS1},
			{Kind: KindS2, Shape: shapeS2},
			{Kind: KindI, Shape: shapeI},
		},
	}
}

// TOnlyLibrary returns a library that only ever spawns T pieces.
func TOnlyLibrary() Library {
	return Library{
		name:      "t-only",
		templates: []Template{{Kind: KindT, Shape: shapeT}},
	}
}

// Name returns the library name.
func (l Library) Name() string {
	return l.name
}

// Len returns the number of variants in the library.
func (l Library) Len() int {
	return len(l.templates)
}

// At returns the i-th template.
func (l Library) At(i int) Template {
	return l.templates[i]
}

// Template looks up the template for a kind.
func (l Library) Template(kind Kind) (Template, bool) {
	for _, t := range l.templates {
		if t.Kind == kind {
			return t, true
		}
	}
	return Template{}, false
}

// Kinds returns the variants in library order.
func (l Library) Kinds() []Kind {
	kinds := make([]Kind, len(l.templates))
	for i, t := range l.templates {
		kinds[i] = t.Kind
	}
	return kinds
}

// Point is an absolute grid coordinate.
type Point struct {
	X, Y int
}

// Piece is the active piece: a reference point plus the shape and kind.
type Piece struct {
	X, Y  int
	Kind  Kind
	Shape Shape
}

// Cells returns the absolute coordinates the piece occupies.
func (p Piece) Cells() [4]Point {
	return cellsAt(p.X, p.Y, p.Shape)
}

// Top returns the smallest y among the piece's cells.
func (p Piece) Top() int {
	top := p.Y + p.Shape[0].DY
	for _, o := range p.Shape[1:] {
		top = min(top, p.Y+o.DY)
	}
	return top
}

// Bottom returns the largest y among the piece's cells.
func (p Piece) Bottom() int {
	bottom := p.Y + p.Shape[0].DY
	for _, o := range p.Shape[1:] {
		bottom = max(bottom, p.Y+o.DY)
	}
	return bottom
}

func cellsAt(x, y int, s Shape) [4]Point {
	var pts [4]Point
	for i, o := range s {
		pts[i] = Point{X: x + o.DX, Y: y + o.DY}
	}
	return pts
}
