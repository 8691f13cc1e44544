package engine

import (
	"errors"
	"time"

	"github.com/op/go-logging"
)

// maxSearchPly bounds recursion depth for fixed-size, ply-indexed search
// state (killer moves, mate-score shifting); no legal chess game can meaningfully search deeper than this
// without the position having long since been decided by the 50-move
// rule or repetition.
const maxSearchPly = 128

// ErrStopped is returned up the call stack the instant a search notices
// its stop predicate has returned true. It is not a real
// error: callers use the partial result accumulated so far (the last
// completed iterative-deepening depth), exactly like a timeout in any
// cooperative-cancellation design.
var ErrStopped = errors.New("search stopped")

// futilityMargin[depth] is how far below alpha a node's static eval must
// already be before futility pruning gives up on finding a quiet move
// that closes the gap; indexed by remaining depth, only used near the
// leaves (see futilityMaxDepth).
var futilityMargin = [4]Score{0, 150, 300, 500}

const futilityMaxDepth = 1

// deltaMargin is the safety allowance added on top of material value
// when delta-pruning in quiescence, both for the whole-node stand-pat
// prune (stand_pat + queen value + deltaMargin) and the per-move prune
// (captured value [+ promotion bonus] + deltaMargin): a position that
// can't reach alpha even with this much positional compensation is
// treated as lost regardless of the tactics actually on the board.
const deltaMargin = 500

// quiescenceDepthFloor bounds how many plies quiescence can extend
// before a position that is not in check is judged by the static
// evaluation without searching its captures; positions in check are
// always searched with all legal replies, whatever the depth.
const quiescenceDepthFloor = -8

// nullMoveReduction is how much shallower the null-move verification
// search goes relative to the node it's pruning from.
const nullMoveReduction = 2

// Stats accumulates counters over one search, reported via UCI "info"
// lines and useful for regression testing against known positions.
type Stats struct {
	Nodes     int64
	QNodes    int64
	TTHits    int64
	Cutoffs   int64
	StartTime time.Time
}

// Search runs iterative-deepening alpha-beta search rooted at a Position,
// sharing a Heuristics set (transposition table, killers, history) across
// the whole "go" command. It is not safe for concurrent use by more than
// one goroutine.
type Search struct {
	Heuristics *Heuristics
	Logger     *logging.Logger // optional; nil disables debug logging

	stop     func() bool
	rep      *RepetitionTracker
	stats    Stats
	nodeMask int64
	budget   time.Duration // 0 means unbounded: always use the full check interval
}

// NewSearch builds a Search sharing h's transposition table and
// move-ordering heuristics, tracking repetitions against rep (normally
// the Engine's running game history).
func NewSearch(h *Heuristics, rep *RepetitionTracker) *Search {
	return &Search{Heuristics: h, rep: rep}
}

func (s *Search) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Debugf(format, args...)
	}
}

// Result is the outcome of one completed (or cancelled) iterative
// deepening search.
type Result struct {
	BestMove Move
	Score    Score
	Depth    int
	Stats    Stats
	PV       []Move
}

// Run performs iterative deepening from pos until stop() returns true or
// maxDepth plies have been completed (maxDepth <= 0 means unbounded).
// stop is polled every few thousand nodes, not on every node, so it
// should be cheap but does not need to be free.
func (s *Search) Run(pos Position, maxDepth int, budget time.Duration, stop func() bool) Result {
	s.stop = stop
	s.budget = budget
	s.stats = Stats{StartTime: time.Now()}
	s.Heuristics.NewSearch()

	var best Result
	var rootMoves MoveList
	GenerateMoves(&pos, AllMoves, &rootMoves)
	if rootMoves.N > 0 {
		best.BestMove = rootMoves.Moves[0] // returned if no iteration completes
	}
	for depth := 1; maxDepth <= 0 || depth <= maxDepth; depth++ {
		if depth > maxSearchPly {
			break
		}
		score, move, err := s.searchRoot(pos, depth)
		if err != nil {
			break
		}
		best = Result{BestMove: move, Score: score, Depth: depth, Stats: s.stats, PV: s.extractPV(pos, depth)}
		s.logf("depth %d score %d nodes %d bestmove %s", depth, score, s.stats.Nodes, move)
		if score >= MateScore-Score(maxSearchPly) || score <= -MateScore+Score(maxSearchPly) {
			break // a forced mate has been found; deepening further is wasted work
		}
		if stop() {
			break
		}
	}
	return best
}

func (s *Search) searchRoot(pos Position, depth int) (Score, Move, error) {
	var ml MoveList
	GenerateMoves(&pos, AllMoves, &ml)
	if ml.N == 0 {
		if pos.IsInCheck(pos.SideToMove) {
			return -MateScore, NullMove, nil
		}
		return 0, NullMove, nil
	}

	hashMove := NullMove
	if e, ok := s.Heuristics.TT.Probe(pos.Zobrist()); ok {
		hashMove = e.move
	}
	orderMoves(&ml, pos.SideToMove, hashMove, s.Heuristics, 0)

	alpha, beta := -InfScore, InfScore
	best := ml.Moves[0]
	for i := 0; i < ml.N; i++ {
		m := ml.Moves[i]
		child := pos.Apply(m)
		s.rep.Push(child.Zobrist(), m, m.Moved.Figure() == Pawn)
		score, err := s.negamax(child, depth-1, 1, -beta, -alpha)
		s.rep.Pop()
		if err != nil {
			return 0, NullMove, err
		}
		score = -score
		if score > alpha {
			alpha = score
			best = m
		}
	}
	s.Heuristics.TT.Store(pos.Zobrist(), best, mateIn(alpha, 0), depth, Exact)
	return alpha, best, nil
}

// negamax searches pos to the given remaining depth, returning a score
// relative to the side to move. ply counts plies from the search root,
// used for mate-distance scoring and killer-move indexing.
func (s *Search) negamax(pos Position, depth, ply int, alpha, beta Score) (Score, error) {
	debugAssert(alpha < beta, "negamax called with an empty alpha-beta window")
	s.stats.Nodes++
	if s.nodeMask++; s.nodeMask >= int64(s.currentCheckInterval()) {
		s.nodeMask = 0
		if s.stop() {
			return 0, ErrStopped
		}
	}

	if pos.HalfMoveClock >= 100 || s.rep.IsRepetition(pos.Zobrist()) {
		return 0, nil
	}

	inCheck := pos.IsInCheck(pos.SideToMove)
	if depth <= 0 {
		if inCheck {
			depth = 1 // never evaluate statically while in check; at least try one more ply
		} else {
			return s.quiescence(pos, ply, 0, alpha, beta)
		}
	}

	origAlpha := alpha
	if e, ok := s.Heuristics.TT.Probe(pos.Zobrist()); ok && e.depth >= depth {
		s.stats.TTHits++
		score := mateOut(e.score, ply)
		switch e.bound {
		case Exact:
			return score, nil
		case LowerBound:
			if score > alpha {
				alpha = score
			}
		case UpperBound:
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			return score, nil
		}
	}

	staticEval := Evaluate(&pos)

	// Null-move pruning: if skipping a move entirely still produces a
	// cutoff, the real position is even better and almost certainly
	// doesn't need a full search. Disabled in check (no legal null move),
	// with only pawns left (zugzwang risk: skipping can look falsely safe
	// when any real move would worsen the position), when beta is already
	// a winning/mate score (the verification search's own mate-distance
	// math gets unreliable that close to mate), and unless the static
	// eval already meets beta (otherwise the reduced search is unlikely to
	// prove anything a full search wouldn't already refute).
	if !inCheck && depth >= 3 && beta < KnownWinScore && staticEval >= beta &&
		pos.HasNonPawnMaterial(pos.SideToMove) {
		child := pos.ApplyNull()
		score, err := s.negamax(child, depth-1-nullMoveReduction, ply+1, -beta, -beta+1)
		if err != nil {
			return 0, err
		}
		if -score >= beta {
			return beta, nil
		}
	}

	var ml MoveList
	GenerateMoves(&pos, AllMoves, &ml)
	if ml.N == 0 {
		if inCheck {
			return -MateScore + Score(ply), nil
		}
		return 0, nil
	}

	futile := !inCheck && depth <= futilityMaxDepth && staticEval+futilityMargin[depth] <= alpha

	hashMove := NullMove
	if e, ok := s.Heuristics.TT.Probe(pos.Zobrist()); ok {
		hashMove = e.move
	}
	orderMoves(&ml, pos.SideToMove, hashMove, s.Heuristics, ply)

	best := Score(-InfScore)
	bestMove := NullMove
	var triedQuiet []Move
	for i := 0; i < ml.N; i++ {
		m := ml.Moves[i]
		if futile && m.IsQuiet() && i > 0 {
			continue // keep at least one move so the node never reports "no moves"
		}
		child := pos.Apply(m)
		s.rep.Push(child.Zobrist(), m, m.Moved.Figure() == Pawn)
		score, err := s.negamax(child, depth-1, ply+1, -beta, -alpha)
		s.rep.Pop()
		if err != nil {
			return 0, err
		}
		score = -score

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if m.IsQuiet() {
			triedQuiet = append(triedQuiet, m)
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			if m.IsQuiet() {
				s.Heuristics.Killers.add(ply, m)
				s.Heuristics.History.add(pos.SideToMove, m, depth, triedQuiet)
			}
			break
		}
	}

	bound := Exact
	if best <= origAlpha {
		bound = UpperBound
	} else if best >= beta {
		bound = LowerBound
	}
	s.Heuristics.TT.Store(pos.Zobrist(), bestMove, mateIn(best, ply), depth, bound)
	return best, nil
}

// quiescence extends search along tactical lines past the nominal depth
// limit, so the static evaluation never judges a position in the middle
// of a capture sequence or while in check. qdepth counts plies of
// quiescence extension, starting at 0 and decreasing; once it reaches
// quiescenceDepthFloor, a position not in check returns its static
// evaluation (see quiescenceDepthFloor).
func (s *Search) quiescence(pos Position, ply, qdepth int, alpha, beta Score) (Score, error) {
	s.stats.Nodes++
	s.stats.QNodes++
	if s.nodeMask++; s.nodeMask >= int64(s.currentCheckInterval()) {
		s.nodeMask = 0
		if s.stop() {
			return 0, ErrStopped
		}
	}

	inCheck := pos.IsInCheck(pos.SideToMove)
	if !inCheck && qdepth <= quiescenceDepthFloor {
		return Evaluate(&pos), nil
	}

	var standPat Score
	if !inCheck {
		standPat = Evaluate(&pos)
		if standPat >= beta {
			return beta, nil
		}
		if standPat+figureValue[Queen]+deltaMargin <= alpha {
			return alpha, nil // position can't recover even by winning a queen outright
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var ml MoveList
	kind := ViolentMoves
	if inCheck {
		kind = AllMoves
	}
	GenerateMoves(&pos, kind, &ml)
	if ml.N == 0 {
		if inCheck {
			return -MateScore + Score(ply), nil
		}
		if !HasAnyLegalMove(&pos) {
			return 0, nil
		}
		return alpha, nil
	}
	orderCaptures(&ml)

	for i := 0; i < ml.N; i++ {
		m := ml.Moves[i]
		if !inCheck && m.Capture != NoPiece {
			margin := figureValue[m.Capture.Figure()]
			if m.MoveType == Promotion {
				margin += figureValue[m.Promotion.Figure()] - figureValue[Pawn]
			}
			if standPat+margin+deltaMargin <= alpha {
				continue // even winning this capture outright can't reach alpha
			}
		}
		child := pos.Apply(m)
		score, err := s.quiescence(child, ply+1, qdepth-1, -beta, -alpha)
		if err != nil {
			return 0, err
		}
		score = -score
		if score >= beta {
			return beta, nil
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha, nil
}

func (s *Search) currentCheckInterval() int {
	if s.budget <= 0 {
		return baseCheckInterval
	}
	return checkInterval(time.Since(s.stats.StartTime), s.budget)
}

// extractPV walks the transposition table's best moves from pos forward
// to reconstruct the principal variation found at depth, rather than
// maintaining a separate PV table: the table's exact-bound entries along
// the best line already contain this information.
func (s *Search) extractPV(pos Position, maxLen int) []Move {
	var pv []Move
	seen := map[uint64]bool{}
	for i := 0; i < maxLen; i++ {
		e, ok := s.Heuristics.TT.Probe(pos.Zobrist())
		if !ok || e.move == NullMove || seen[pos.Zobrist()] {
			break
		}
		seen[pos.Zobrist()] = true
		pv = append(pv, e.move)
		pos = pos.Apply(e.move)
	}
	return pv
}
