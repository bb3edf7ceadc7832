package tetris

import "fmt"

// OutcomeKind classifies the result of a command.
type OutcomeKind uint8

const (
	OutcomeContinued OutcomeKind = iota
	OutcomeLocked
	OutcomeGameOver
)

// Outcome is returned by every command. Lines is only meaningful for
// OutcomeLocked. Rejected marks a move or rotation refused by collision.
type Outcome struct {
	Kind     OutcomeKind
	Lines    int
	Rejected bool
}

// String renders the outcome as Continued, Locked(n) or GameOver.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeContinued:
		if o.Rejected {
			return "Rejected"
		}
		return "Continued"
	case OutcomeLocked:
		return fmt.Sprintf("Locked(%d)", o.Lines)
	case OutcomeGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

var (
	continued = Outcome{Kind: OutcomeContinued}
	gameOver  = Outcome{Kind: OutcomeGameOver}
)

// SoftDropTick is the gravity step. The piece moves down one row if it can.
// Otherwise it locks: if any of its cells is still above row 0 the game is
// over, else full rows are cleared and the next piece spawns.
func (b *Board) SoftDropTick() Outcome {
	if b.state == StateGameOver {
		return gameOver
	}
	if b.Move(0, 1) {
		return continued
	}
	return b.lock()
}

// HardDrop moves the piece straight to its landing row in one step. With
// LockOnHardDrop the piece then locks exactly as a failed tick would;
// otherwise it rests there and the next tick locks it.
func (b *Board) HardDrop() Outcome {
	if b.state == StateGameOver {
		return gameOver
	}
	if y := b.landingY(); y != b.cur.Y {
		b.place(b.cur.X, y, b.cur.Shape)
	}
	if !b.lockOnHardDrop {
		return continued
	}
	return b.lock()
}

// lock settles the active piece, clears lines and spawns the next piece.
func (b *Board) lock() Outcome {
	if b.cur.Top() < 0 {
		b.clearShadow()
		b.state = StateGameOver
		return gameOver
	}

	b.state = StateLocking
	b.clearShadow()
	// The painted cells stay in the grid and become terrain.
	b.pieceCells = b.pieceCells[:0]
	b.stats.Pieces++

	b.state = StateClearing
	n := b.clearLines()
	b.stats.Lines += n

	b.NextPiece()
	return Outcome{Kind: OutcomeLocked, Lines: n}
}

// NextPiece picks a variant uniformly at random, places it at
// (width/2, SpawnY) with 0-3 random quarter turns and recomputes the shadow.
// A spawn that overlaps terrain is not fatal by itself; it ends the game on
// the first tick that cannot move it down.
func (b *Board) NextPiece() {
	t := b.lib.At(b.rng.Intn(b.lib.Len()))
	turns := b.rng.Intn(4)
	b.spawn(t.Kind, t.Shape.Turn(turns))
}

// SpawnPiece replaces the active piece with the given kind turned clockwise
// n times. It is the deterministic counterpart of NextPiece. A finished
// board stays finished.
func (b *Board) SpawnPiece(kind Kind, turns int) error {
	if b.state == StateGameOver {
		return ErrGameOver
	}
	t, ok := b.lib.Template(kind)
	if !ok {
		return fmt.Errorf("%w: %s not in %s", ErrUnknownKind, kind, b.lib.Name())
	}
	b.spawn(kind, t.Shape.Turn(turns))
	return nil
}

func (b *Board) spawn(kind Kind, s Shape) {
	b.state = StateSpawning
	b.erasePiece()
	b.clearShadow()
	b.cur = Piece{X: b.width / 2, Y: SpawnY, Kind: kind, Shape: s}
	b.paintPiece()
	b.state = StateFalling
	b.refreshShadow()
}
