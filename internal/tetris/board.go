package tetris

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
)

// Reference board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 19

	// MinWidth is the narrowest board every turned template fits on when
	// spawned at width/2.
	MinWidth  = 5
	// MinHeight is the shortest accepted board.
	MinHeight = 4

	// SpawnY is the reference row every new piece starts at.
	SpawnY = -2
)

var (
	ErrOutOfRange   = errors.New("tetris: cell out of range")
	ErrInvalidSize  = errors.New("tetris: invalid board size")
	ErrInvalidCell  = errors.New("tetris: invalid cell state")
	ErrUnknownKind  = errors.New("tetris: piece kind not in library")
	ErrEmptyLibrary = errors.New("tetris: empty piece library")
	ErrGameOver     = errors.New("tetris: game is over")
)

// State is the board's position in the piece lifecycle.
type State uint8

const (
	StateSpawning State = iota
	StateFalling
	StateLocking
	StateClearing
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateSpawning:
		return "Spawning"
	case StateFalling:
		return "Falling"
	case StateLocking:
		return "Locking"
	case StateClearing:
		return "Clearing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Options configures a Board. Width and height are fixed for the board's lifetime.
type Options struct {
	Width   int
	Height  int
	Library Library // zero value means ClassicLibrary
	Seed    int64

	// LockOnHardDrop makes HardDrop lock the piece immediately instead of
	// leaving it resting at the landing row until the next tick.
	LockOnHardDrop bool
}

// DefaultOptions returns the reference 10x19 board with the classic library.
func DefaultOptions() Options {
	return Options{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Library: ClassicLibrary(),
	}
}

// Stats counts what happened on the board since it was created.
type Stats struct {
	Lines  int // rows cleared
	Pieces int // pieces locked into the terrain
}

// Board owns the grid and the active piece. It is not safe for concurrent
// use; every method runs to completion before returning.
type Board struct {
	width  int
	height int
	cells  []Cell // row-major, index = y*width + x

	lib            Library
	rng            *rand.Rand
	lockOnHardDrop bool

	state State
	cur   Piece

	// Grid indices currently painted with the active piece and with the shadow.
	pieceCells  []int
	shadowCells []int

	stats Stats
}

// NewBoard creates an empty board and spawns the first piece.
func NewBoard(opts Options) (*Board, error) {
	if opts.Width < MinWidth || opts.Height < MinHeight {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrInvalidSize, opts.Width, opts.Height, MinWidth, MinHeight)
	}
	lib := opts.Library
	if lib.Len() == 0 {
		if lib.name != "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyLibrary, lib.name)
		}
		lib = ClassicLibrary()
	}

	b := &Board{
		width:          opts.Width,
		height:         opts.Height,
		cells:          make([]Cell, opts.Width*opts.Height),
		lib:            lib,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		lockOnHardDrop: opts.LockOnHardDrop,
		pieceCells:     make([]int, 0, 4),
		shadowCells:    make([]int, 0, 4),
	}
	b.NextPiece()
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// State returns the current lifecycle state.
func (b *Board) State() State {
	return b.state
}

// GameOver reports whether the board reached its terminal state.
func (b *Board) GameOver() bool {
	return b.state == StateGameOver
}

// Piece returns a copy of the active piece.
func (b *Board) Piece() Piece {
	return b.cur
}

// Library returns the piece library new pieces are drawn from.
func (b *Board) Library() Library {
	return b.lib
}

// Stats returns the lines and pieces counters.
func (b *Board) Stats() Stats {
	return b.stats
}

// CellAt returns the state of the cell at (x, y).
// Rows above the top (y < 0) read as CellEmpty; anything left, right or below
// the grid is a contract violation and yields ErrOutOfRange.
func (b *Board) CellAt(x, y int) (Cell, error) {
	if x < 0 || x >= b.width || y >= b.height {
		return CellOutOfRange, fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfRange, x, y, b.width, b.height)
	}
	if y < 0 {
		return CellEmpty, nil
	}
	return b.cells[b.index(x, y)], nil
}

// SetCell places settled terrain at (x, y). Only CellEmpty and piece cells are
// accepted, and the active piece's own cells cannot be overwritten.
func (b *Board) SetCell(x, y int, c Cell) error {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfRange, x, y, b.width, b.height)
	}
	if !c.Valid() || c == CellShadow {
		return fmt.Errorf("%w: %s", ErrInvalidCell, c)
	}
	idx := b.index(x, y)
	if b.ownsCell(idx) {
		return fmt.Errorf("%w: (%d, %d) holds the active piece", ErrInvalidCell, x, y)
	}
	b.cells[idx] = c
	if b.state == StateFalling {
		b.refreshShadow()
	}
	return nil
}

// Move shifts the active piece by (dx, dy). It returns false, leaving the
// board untouched, when the target placement collides.
func (b *Board) Move(dx, dy int) bool {
	if b.state != StateFalling {
		return false
	}
	return b.place(b.cur.X+dx, b.cur.Y+dy, b.cur.Shape)
}

// Rotate turns the active piece a quarter turn around its reference point.
// A rotation that collides is rejected; there are no wall kicks.
func (b *Board) Rotate(clockwise bool) bool {
	if b.state != StateFalling {
		return false
	}
	return b.place(b.cur.X, b.cur.Y, b.cur.Shape.Rotate(clockwise))
}

// place is the single mutation primitive: lift the piece, test the candidate,
// then either commit it or put the piece back where it was.
func (b *Board) place(x, y int, s Shape) bool {
	b.erasePiece()
	if b.collides(x, y, s) {
		b.paintPiece()
		return false
	}
	b.cur.X, b.cur.Y, b.cur.Shape = x, y, s
	b.paintPiece()
	b.refreshShadow()
	return true
}

// collides reports whether shape s at (x, y) leaves the grid on the left,
// right or bottom, or overlaps a solid cell that is not the active piece.
// Cells above the top never collide.
func (b *Board) collides(x, y int, s Shape) bool {
	for _, p := range cellsAt(x, y, s) {
		if p.X < 0 || p.X >= b.width || p.Y >= b.height {
			return true
		}
		if p.Y < 0 {
			continue
		}
		idx := b.index(p.X, p.Y)
		if b.cells[idx].Solid() && !b.ownsCell(idx) {
			return true
		}
	}
	return false
}

// paintPiece draws the active piece into every free in-bounds cell it covers.
// A freshly spawned piece may overlap terrain; those cells are left alone.
func (b *Board) paintPiece() {
	b.pieceCells = b.pieceCells[:0]
	c := b.cur.Kind.Cell()
	for _, p := range b.cur.Cells() {
		if !b.inBounds(p.X, p.Y) {
			continue
		}
		idx := b.index(p.X, p.Y)
		if b.cells[idx].Solid() {
			continue
		}
		b.cells[idx] = c
		b.pieceCells = append(b.pieceCells, idx)
	}
}

// erasePiece clears exactly the cells paintPiece wrote.
func (b *Board) erasePiece() {
	for _, idx := range b.pieceCells {
		b.cells[idx] = CellEmpty
	}
	b.pieceCells = b.pieceCells[:0]
}

func (b *Board) ownsCell(idx int) bool {
	return slices.Contains(b.pieceCells, idx)
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

// String renders the grid one row per line using Cell.Rune glyphs.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := range b.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range b.width {
			sb.WriteRune(b.cells[b.index(x, y)].Rune())
		}
	}
	return sb.String()
}
