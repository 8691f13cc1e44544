package engine

// RepetitionTracker detects threefold repetition by keeping a stack of
// every hash seen since the last irreversible move (capture, pawn move,
// or castle), with a "fence" marking each such move: positions cannot
// repeat across a fence, so the backward scan for a repeat stops there
// instead of walking the whole game history.
type RepetitionTracker struct {
	hashes []uint64
	fences []int // stack indices that are fences; hashes before the top fence are unreachable
}

// NewRepetitionTracker returns an empty tracker; the caller pushes the
// positions it wants tracked.
func NewRepetitionTracker() *RepetitionTracker {
	return &RepetitionTracker{}
}

// Reset empties the tracker, used on "ucinewgame".
func (rt *RepetitionTracker) Reset() {
	rt.hashes = rt.hashes[:0]
	rt.fences = rt.fences[:0]
}

// Push records the position reached after playing m, whose hash is
// `after`; irreversible moves place a fence at the new top of the stack.
func (rt *RepetitionTracker) Push(after uint64, m Move, movedFigureWasPawn bool) {
	rt.hashes = append(rt.hashes, after)
	if m.Capture != NoPiece || movedFigureWasPawn || m.MoveType == Castling {
		rt.fences = append(rt.fences, len(rt.hashes)-1)
	}
}

// Pop undoes the most recent Push, used when the search backtracks past
// a move it tried. Must be called in exact LIFO order with Push.
func (rt *RepetitionTracker) Pop() {
	if len(rt.fences) > 0 && rt.fences[len(rt.fences)-1] == len(rt.hashes)-1 {
		rt.fences = rt.fences[:len(rt.fences)-1]
	}
	rt.hashes = rt.hashes[:len(rt.hashes)-1]
}

// lastFence returns the stack index of the most recent fence, or -1 if
// there is none (the whole stack is reachable).
func (rt *RepetitionTracker) lastFence() int {
	if len(rt.fences) == 0 {
		return -1
	}
	return rt.fences[len(rt.fences)-1]
}

// Count returns how many times hash has occurred since the last
// irreversible move, including the occurrence just pushed. Positions
// repeat every other half-move (the same side must be on move), so the
// scan strides by 2.
func (rt *RepetitionTracker) Count(hash uint64) int {
	n := 0
	stop := rt.lastFence()
	if stop < 0 {
		stop = 0
	}
	for i := len(rt.hashes) - 1; i >= stop; i -= 2 {
		if rt.hashes[i] == hash {
			n++
		}
	}
	return n
}

// IsRepetition reports whether hash has now occurred at least three times
// since the last irreversible move, i.e. this is a genuine threefold
// repetition and the search can treat the position as a draw without
// waiting for the arbiter-facing claim. Count includes the occurrence
// just pushed, so the threshold is 3, not 2.
func (rt *RepetitionTracker) IsRepetition(hash uint64) bool {
	return rt.Count(hash) >= 3
}
