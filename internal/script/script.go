// Package script runs a board headlessly from a YAML command script and
// checks the result against expectations. It backs the replay command and
// doubles as a fixture format for tests.
package script

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

// ErrInvalidScript is wrapped by every parse and validation failure.
var ErrInvalidScript = errors.New("script: invalid")

// maxCommands bounds the expanded command list, repeats included.
const maxCommands = 100000

// Script is the YAML document.
type Script struct {
	Name           string   `yaml:"name"`
	Board          Board    `yaml:"board"`
	Seed           int64    `yaml:"seed"`
	Library        string   `yaml:"library"` // "classic" (default) or "t-only"
	LockOnHardDrop bool     `yaml:"lock_on_hard_drop"`
	Preset         []string `yaml:"preset"` // terrain rows, bottom-aligned
	Spawn          *Spawn   `yaml:"spawn"`
	Commands       []string `yaml:"commands"`
	Expect         *Expect  `yaml:"expect"`
}

// Board sets the grid size. Zero values mean the reference 10x19.
type Board struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Spawn forces the first piece instead of the seeded random one.
type Spawn struct {
	Kind  string `yaml:"kind"`
	Turns int    `yaml:"turns"`
}

// Expect lists checks applied after the last command. Unset fields are not checked.
type Expect struct {
	Lines    *int     `yaml:"lines"`
	Pieces   *int     `yaml:"pieces"`
	GameOver *bool    `yaml:"game_over"`
	Outcomes []string `yaml:"outcomes"`
	Rows     []string `yaml:"rows"` // bottom-aligned; shadow reads as empty
	Piece    *Point   `yaml:"piece"`
}

// Point is an expected piece reference position.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: cannot read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks everything that can be checked without running.
func (s *Script) Validate() error {
	w, h := s.size()
	if w < tetris.MinWidth || h < tetris.MinHeight {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidScript, w, h)
	}
	if _, err := s.library(); err != nil {
		return err
	}
	if len(s.Preset) > h {
		return fmt.Errorf("%w: %d preset rows on a board %d high", ErrInvalidScript, len(s.Preset), h)
	}
	for i, row := range s.Preset {
		if _, err := parseRow(row, w); err != nil {
			return fmt.Errorf("%w: preset row %d: %v", ErrInvalidScript, i, err)
		}
	}
	if s.Spawn != nil {
		if _, err := tetris.ParseKind(s.Spawn.Kind); err != nil {
			return fmt.Errorf("%w: spawn: %v", ErrInvalidScript, err)
		}
	}
	if _, err := s.expand(); err != nil {
		return err
	}
	return nil
}

func (s *Script) size() (int, int) {
	w, h := s.Board.Width, s.Board.Height
	if w == 0 {
		w = tetris.DefaultWidth
	}
	if h == 0 {
		h = tetris.DefaultHeight
	}
	return w, h
}

func (s *Script) library() (tetris.Library, error) {
	switch s.Library {
	case "", "classic":
		return tetris.ClassicLibrary(), nil
	case "t-only", "t_only", "t":
		return tetris.TOnlyLibrary(), nil
	}
	return tetris.Library{}, fmt.Errorf("%w: unknown library %q", ErrInvalidScript, s.Library)
}

// expand parses the command list. "tick*5" repeats a command five times.
func (s *Script) expand() ([]tetris.Command, error) {
	var cmds []tetris.Command
	for i, raw := range s.Commands {
		name, count := raw, 1
		if before, after, ok := strings.Cut(raw, "*"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(after))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: command %d: bad repeat in %q", ErrInvalidScript, i, raw)
			}
			name, count = before, n
		}
		if count > maxCommands-len(cmds) {
			return nil, fmt.Errorf("%w: command %d: more than %d commands", ErrInvalidScript, i, maxCommands)
		}
		cmd, err := tetris.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("%w: command %d: %v", ErrInvalidScript, i, err)
		}
		for range count {
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func parseRow(row string, width int) ([]tetris.Cell, error) {
	cells := make([]tetris.Cell, 0, width)
	for _, r := range row {
		c, ok := tetris.CellFromRune(r)
		if !ok {
			return nil, fmt.Errorf("unknown cell %q", r)
		}
		if c == tetris.CellShadow {
			return nil, errors.New("shadow cells cannot be preset")
		}
		cells = append(cells, c)
	}
	if len(cells) != width {
		return nil, fmt.Errorf("row %q has %d cells, want %d", row, len(cells), width)
	}
	return cells, nil
}
