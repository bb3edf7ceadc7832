package tetris

import "strings"

// Snapshot is a detached copy of the board for readers such as renderers,
// determinism tests and replay output. Later commands do not change it.
type Snapshot struct {
	Width   int
	Height  int
	Cells   []Cell // row-major
	Piece   Piece
	ShadowY int
	State   State
	Stats   Stats
}

// Snapshot captures the current board state.
func (b *Board) Snapshot() Snapshot {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return Snapshot{
		Width:   b.width,
		Height:  b.height,
		Cells:   cells,
		Piece:   b.cur,
		ShadowY: b.landingY(),
		State:   b.state,
		Stats:   b.stats,
	}
}

// At returns the cell at (x, y), or CellOutOfRange outside the grid.
func (s Snapshot) At(x, y int) Cell {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return CellOutOfRange
	}
	return s.Cells[y*s.Width+x]
}

// Rows returns one glyph string per row, top first.
func (s Snapshot) Rows() []string {
	rows := make([]string, s.Height)
	var sb strings.Builder
	for y := range s.Height {
		sb.Reset()
		for x := range s.Width {
			sb.WriteRune(s.At(x, y).Rune())
		}
		rows[y] = sb.String()
	}
	return rows
}

// Count returns how many cells hold state c.
func (s Snapshot) Count(c Cell) int {
	n := 0
	for _, cell := range s.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// GameStateType is the coarse state of a Game.
type GameStateType string

const (
	GameStatePlaying     GameStateType = "playing"
	GameStatePaused      GameStateType = "paused"
	GameStatePausedSmall GameStateType = "paused_small_window"
	GameStateOver        GameStateType = "game_over"
)

// GameSnapshot captures a game for determinism tests and run history.
type GameSnapshot struct {
	Variant string
	Seed    int64
	Ticks   int
	Level   int
	State   GameStateType
	Board   Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() GameSnapshot {
	state := GameStatePlaying
	switch {
	case g.board.GameOver():
		state = GameStateOver
	case g.tooSmall:
		state = GameStatePausedSmall
	case g.paused:
		state = GameStatePaused
	}

	return GameSnapshot{
		Variant: g.variant.ID,
		Seed:    g.runtime.Seed,
		Ticks:   g.ticks,
		Level:   g.level(),
		State:   state,
		Board:   g.board.Snapshot(),
	}
}
