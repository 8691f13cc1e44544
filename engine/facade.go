package engine

import (
	"sync"
	"time"

	"github.com/op/go-logging"
)

// DefaultHashTableSizeMB is the transposition table size used when a UCI
// client never sends a "setoption name Hash" command.
const DefaultHashTableSizeMB = 64

// Engine is the UCI-facing facade around Search: it owns the current
// game position, the shared move-ordering heuristics, and the
// busy/idle gate that lets "stop" and a new "position"/"go" pair run
// from a different goroutine than an in-progress search.
//
// Only one search runs at a time; Engine serializes access with a mutex
// rather than exposing Search directly, mirroring the teacher shell's
// idle-channel gating but without a ponder channel (pondering is out of
// scope).
type Engine struct {
	Logger *logging.Logger

	mu       sync.Mutex
	pos      Position
	h        *Heuristics
	rep      *RepetitionTracker
	stopping bool
	running  bool
}

// NewEngine returns an Engine at the standard starting position with a
// fresh transposition table of the given size.
func NewEngine(ttSizeMB int) *Engine {
	return &Engine{
		pos: NewPosition(),
		h:   NewHeuristics(ttSizeMB),
		rep: NewRepetitionTracker(),
	}
}

// SetPosition replaces the current game position and clears repetition
// history (a new "position" command always supplies the full move list
// from its base FEN, so history before it is irrelevant).
func (e *Engine) SetPosition(pos Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pos = pos
	e.rep.Reset()
}

// Position returns a copy of the current position.
func (e *Engine) Position() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// DoMove applies m to the current game position, recording it for
// repetition detection. Used to replay the "moves" list following
// "position ... moves ...".
func (e *Engine) DoMove(m Move) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.pos.Apply(m)
	e.rep.Push(next.Zobrist(), m, m.Moved.Figure() == Pawn)
	e.pos = next
}

// NewGame resets heuristics and repetition history for a new game,
// handling UCI's "ucinewgame".
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.h.NewGame()
	e.rep.Reset()
}

// SetHashSizeMB replaces the transposition table, handling
// "setoption name Hash value N".
func (e *Engine) SetHashSizeMB(mb int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.h = NewHeuristics(mb)
}

// ClearHash empties the transposition table without discarding killers
// or history, handling "setoption name Clear Hash".
func (e *Engine) ClearHash() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.h.TT.Clear()
}

// Stop requests that a running Go call return as soon as it next polls,
// and is a no-op if nothing is running.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopping = true
	e.mu.Unlock()
}

// IsRunning reports whether a search is currently in progress.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Go runs a search synchronously under tc, returning once it completes
// or Stop is called. Callers that want UCI's asynchronous behavior
// (accepting further "stop"/"isready" while searching) should invoke Go
// from its own goroutine, as the corvid command does.
func (e *Engine) Go(tc TimeControl) Result {
	e.mu.Lock()
	e.stopping = false
	e.running = true
	pos := e.pos
	search := NewSearch(e.h, e.rep)
	search.Logger = e.Logger
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	start := time.Now()
	deadline, fixedDepth, infinite := tc.Deadline(start, pos.SideToMove)
	budget := time.Duration(0)
	if !infinite && !deadline.IsZero() {
		budget = deadline.Sub(start)
	}

	stop := func() bool {
		e.mu.Lock()
		stopping := e.stopping
		e.mu.Unlock()
		if stopping {
			return true
		}
		return !infinite && !deadline.IsZero() && time.Now().After(deadline)
	}

	return search.Run(pos, fixedDepth, budget, stop)
}
