package script

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// Result is what a script run produced.
type Result struct {
	Name     string
	Outcomes []tetris.Outcome
	Final    tetris.Snapshot
	Failures []string // unmet expectations, empty when the script passed
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run builds the board, applies the preset and every command, then checks
// the expectations. Commands after game over are still applied and report
// GameOver, as they would from a live driver.
func Run(s *Script) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w, h := s.size()
	lib, _ := s.library()
	cmds, _ := s.expand()

	board, err := tetris.NewBoard(tetris.Options{
		Width:          w,
		Height:         h,
		Library:        lib,
		Seed:           s.Seed,
		LockOnHardDrop: s.LockOnHardDrop,
	})
	if err != nil {
		return nil, fmt.Errorf("script: cannot create board: %w", err)
	}

	// Spawn first so preset terrain never lands on the random first piece.
	if s.Spawn != nil {
		kind, _ := tetris.ParseKind(s.Spawn.Kind)
		if err := board.SpawnPiece(kind, s.Spawn.Turns); err != nil {
			return nil, fmt.Errorf("script: cannot spawn: %w", err)
		}
	}
	if err := applyPreset(board, s.Preset); err != nil {
		return nil, err
	}

	res := &Result{Name: s.Name}
	for _, cmd := range cmds {
		res.Outcomes = append(res.Outcomes, board.Apply(cmd))
	}
	res.Final = board.Snapshot()

	if s.Expect != nil {
		res.Failures = check(s.Expect, res)
	}
	return res, nil
}

func applyPreset(b *tetris.Board, rows []string) error {
	top := b.Height() - len(rows)
	for i, row := range rows {
		cells, err := parseRow(row, b.Width())
		if err != nil {
			return fmt.Errorf("%w: preset row %d: %v", ErrInvalidScript, i, err)
		}
		for x, c := range cells {
			if c == tetris.CellEmpty {
				continue
			}
			if err := b.SetCell(x, top+i, c); err != nil {
				return fmt.Errorf("script: preset (%d, %d): %w", x, top+i, err)
			}
		}
	}
	return nil
}

func check(e *Expect, res *Result) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if e.Lines != nil && res.Final.Stats.Lines != *e.Lines {
		fail("lines: got %d, want %d", res.Final.Stats.Lines, *e.Lines)
	}
	if e.Pieces != nil && res.Final.Stats.Pieces != *e.Pieces {
		fail("pieces: got %d, want %d", res.Final.Stats.Pieces, *e.Pieces)
	}
	if e.GameOver != nil {
		over := res.Final.State == tetris.StateGameOver
		if over != *e.GameOver {
			fail("game over: got %t, want %t", over, *e.GameOver)
		}
	}
	if e.Piece != nil {
		p := res.Final.Piece
		if p.X != e.Piece.X || p.Y != e.Piece.Y {
			fail("piece: got (%d, %d), want (%d, %d)", p.X, p.Y, e.Piece.X, e.Piece.Y)
		}
	}

	if len(e.Outcomes) > 0 {
		if len(e.Outcomes) != len(res.Outcomes) {
			fail("outcomes: got %d, want %d", len(res.Outcomes), len(e.Outcomes))
		}
		for i := range min(len(e.Outcomes), len(res.Outcomes)) {
			if got := res.Outcomes[i].String(); !strings.EqualFold(got, e.Outcomes[i]) {
				fail("outcome %d: got %s, want %s", i, got, e.Outcomes[i])
			}
		}
	}

	if len(e.Rows) > 0 {
		rows := res.Final.Rows()
		offset := len(rows) - len(e.Rows)
		if offset < 0 {
			fail("rows: expected %d rows on a board %d high", len(e.Rows), len(rows))
			return failures
		}
		for i, want := range e.Rows {
			got := unshadow(rows[offset+i])
			if got != unshadow(want) {
				fail("row %d: got %s, want %s", offset+i, got, want)
			}
		}
	}
	return failures
}

func unshadow(row string) string {
	return strings.ReplaceAll(row, ":", ".")
}

// Render formats the final grid with row numbers for terminal output.
func (r *Result) Render() string {
	var sb strings.Builder
	for y, row := range r.Final.Rows() {
		fmt.Fprintf(&sb, "%3d %s\n", y, row)
	}
	return sb.String()
}
