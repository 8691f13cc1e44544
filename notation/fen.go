// Package notation provides position and move text formats layered on
// top of engine: FEN parsing/formatting and UCI move-list replay. It
// exists so callers outside the engine package (the UCI command, tests,
// tooling) go through one stable, documented surface rather than poking
// at engine internals directly.
package notation

import (
	"fmt"
	"strings"

	"github.com/corvidchess/corvid/engine"
)

// StartposFEN is the FEN of the standard starting position.
const StartposFEN = engine.FENStartPos

// ParseFEN parses a FEN string into a Position.
func ParseFEN(fen string) (engine.Position, error) {
	return engine.PositionFromFEN(fen)
}

// FormatFEN formats pos as FEN.
func FormatFEN(pos engine.Position) string {
	return pos.String()
}

// ReplayUCI applies a sequence of UCI-notation moves (e.g. "e2e4") to
// pos in order, returning the resulting position. It stops and reports
// an error at the first move that isn't legal in the position reached so
// far.
func ReplayUCI(pos engine.Position, moves []string) (engine.Position, error) {
	for _, s := range moves {
		m, err := engine.ParseUCIMove(&pos, s)
		if err != nil {
			return pos, fmt.Errorf("replaying %q: %w", s, err)
		}
		pos = pos.Apply(m)
	}
	return pos, nil
}

// FormatUCI joins a move sequence into a space-separated UCI move list,
// as sent after "position ... moves ...".
func FormatUCI(moves []engine.Move) string {
	s := make([]string, len(moves))
	for i, m := range moves {
		s[i] = m.UCI()
	}
	return strings.Join(s, " ")
}
