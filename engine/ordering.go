package engine

// Move-ordering priority bands. A move's score only needs to fall in the
// right band; ties within a band are broken by the finer-grained term
// added on top (MVV/LVA for captures, history success ratio for quiet
// moves).
const (
	hashMoveScore      = 1_000_000
	captureBaseScore   = 400_000
	promotionBaseScore = 300_000
	killerScore        = 200_000
	killer2Score       = 199_999
)

// orderMoves assigns each move in ml a priority and selection-sorts the
// slice in place: the transposition table's move first, then captures
// ranked by MVV/LVA, then promotions, then the two killer moves for this
// ply, then quiet moves ranked by history score. Selection sort (rather
// than sort.Slice) avoids the allocation and interface-dispatch cost of
// a generic sort on a list that rarely has more than a few dozen moves
// and is usually only partially consumed before a cutoff.
func orderMoves(ml *MoveList, us Color, hashMove Move, h *Heuristics, ply int) {
	var scores [maxMoves]int
	k1, k2 := h.Killers.primary(ply), h.Killers.secondary(ply)

	for i := 0; i < ml.N; i++ {
		m := ml.Moves[i]
		switch {
		case m == hashMove:
			scores[i] = hashMoveScore
		case m.Capture != NoPiece:
			scores[i] = captureBaseScore + int(figureValue[m.Capture.Figure()])*8 - int(figureValue[m.Moved.Figure()])
		case m.MoveType == Promotion:
			scores[i] = promotionBaseScore + int(figureValue[m.Promotion.Figure()])
		case m == k1:
			scores[i] = killerScore
		case m == k2:
			scores[i] = killer2Score
		default:
			scores[i] = h.History.get(us, m)
		}
	}

	for i := 0; i < ml.N; i++ {
		best := i
		for j := i + 1; j < ml.N; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			ml.Moves[i], ml.Moves[best] = ml.Moves[best], ml.Moves[i]
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

// orderCaptures ranks ml by MVV/LVA only (plus promotion value), with no
// hash-move, killer, or history influence — quiescence search only ever
// looks at captures and promotions (or, in check, every legal reply), so
// none of the quiet-move heuristics apply.
func orderCaptures(ml *MoveList) {
	var scores [maxMoves]int
	for i := 0; i < ml.N; i++ {
		m := ml.Moves[i]
		switch {
		case m.Capture != NoPiece:
			scores[i] = captureBaseScore + int(figureValue[m.Capture.Figure()])*8 - int(figureValue[m.Moved.Figure()])
		case m.MoveType == Promotion:
			scores[i] = promotionBaseScore + int(figureValue[m.Promotion.Figure()])
		default:
			scores[i] = 0
		}
	}

	for i := 0; i < ml.N; i++ {
		best := i
		for j := i + 1; j < ml.N; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			ml.Moves[i], ml.Moves[best] = ml.Moves[best], ml.Moves[i]
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}
