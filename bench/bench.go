// Command bench replays a handful of well-known games move by move and
// searches each resulting position to a fixed depth, reporting the total
// node count. It exists to catch gross performance regressions (a sudden
// 10x node-count jump suggests broken pruning or move ordering) rather
// than to assert an exact count, since that count depends on the tuned
// details of search and evaluation and isn't a correctness property.
package main

import (
	"flag"
	"fmt"

	"github.com/corvidchess/corvid/engine"
)

var depth = flag.Int("depth", 4, "search depth for each position")

// game is a list of moves in UCI notation (from the starting position)
// through which every intermediate position is benchmarked.
type game struct {
	name  string
	moves []string
}

var games = []game{
	{
		name: "scholars-mate",
		moves: []string{
			"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7",
		},
	},
	{
		name: "italian-game",
		moves: []string{
			"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5", "e1g1",
			"g8f6", "d2d3", "d7d6",
		},
	},
	{
		name: "queens-gambit-declined",
		moves: []string{
			"d2d4", "d7d5", "c2c4", "e7e6", "b1c3", "g8f6", "c1g5",
			"f8e7", "e2e3", "e8g8",
		},
	},
}

func evalAll(searchDepth int) (int64, error) {
	var total int64
	for _, g := range games {
		pos := engine.NewPosition()
		h := engine.NewHeuristics(16)
		rep := engine.NewRepetitionTracker()
		for _, mv := range g.moves {
			m, err := engine.ParseUCIMove(&pos, mv)
			if err != nil {
				return 0, fmt.Errorf("game %s: %w", g.name, err)
			}
			next := pos.Apply(m)
			rep.Push(next.Zobrist(), m, m.Moved.Figure() == engine.Pawn)
			pos = next

			s := engine.NewSearch(h, rep)
			result := s.Run(pos, searchDepth, 0, func() bool { return false })
			total += result.Stats.Nodes
		}
	}
	return total, nil
}

func main() {
	flag.Parse()
	nodes, err := evalAll(*depth)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("depth %d: %d nodes\n", *depth, nodes)
}
