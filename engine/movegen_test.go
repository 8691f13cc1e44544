package engine

import "testing"

func perftCount(pos Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	GenerateMoves(&pos, AllMoves, &ml)
	var n int64
	for i := 0; i < ml.N; i++ {
		n += perftCount(pos.Apply(ml.Moves[i]), depth-1)
	}
	return n
}

func mustFEN(t *testing.T, fen string) Position {
	t.Helper()
	pos, err := PositionFromFEN(fen)
	if err != nil {
		t.Fatalf("invalid FEN %q: %v", fen, err)
	}
	return pos
}

func TestPerftStartpos(t *testing.T) {
	pos := NewPosition()
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		if got := perftCount(pos, c.depth); got != c.want {
			t.Errorf("depth %d: got %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	cases := []struct {
		depth int
		want  int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		if got := perftCount(pos, c.depth); got != c.want {
			t.Errorf("depth %d: got %d, want %d", c.depth, got, c.want)
		}
	}
}

// Position with a pinned rook (white rook on d2 pinned by black rook on
// d8 against the white king on d1): the pinned rook may only move along
// the d-file, never sideways.
func TestPinnedPieceRestrictedToPinLine(t *testing.T) {
	pos := mustFEN(t, "3r4/8/8/8/8/8/3R4/3K4 w - - 0 1")
	var ml MoveList
	GenerateMoves(&pos, AllMoves, &ml)
	for i := 0; i < ml.N; i++ {
		m := ml.Moves[i]
		if m.Moved.Figure() == Rook && m.To.File() != 3 {
			t.Errorf("pinned rook made an off-file move: %v", m)
		}
	}
}

// In double check, only king moves are legal.
func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king on e1, attacked by a black knight on d3 and a black
	// rook on e8 simultaneously.
	pos := mustFEN(t, "4r3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	var ml MoveList
	GenerateMoves(&pos, AllMoves, &ml)
	for i := 0; i < ml.N; i++ {
		if ml.Moves[i].Moved.Figure() != King {
			t.Fatalf("non-king move generated under double check: %v", ml.Moves[i])
		}
	}
	if ml.N == 0 {
		t.Fatal("expected at least one legal king move")
	}
}

// The en passant capture that would expose the king to a rank attack
// must not be generated.
func TestEnpassantExposesKingIsIllegal(t *testing.T) {
	// White king h5, white pawn d5, black pawn just played e7-e5, black
	// rook on a5 pins along the 5th rank: capturing en passant (d5xe6)
	// would remove both the d5 and e5 pawns and reveal the rook's attack
	// on the king.
	pos := mustFEN(t, "8/8/8/r2Pp2K/8/8/8/8 w - e6 0 1")
	var ml MoveList
	GenerateMoves(&pos, AllMoves, &ml)
	for i := 0; i < ml.N; i++ {
		if ml.Moves[i].MoveType == Enpassant {
			t.Fatalf("illegal en passant generated: %v", ml.Moves[i])
		}
	}
}

func TestHasAnyLegalMoveStalemate(t *testing.T) {
	// Classic stalemate: black king a8, white king c7, white queen b6 —
	// black to move has no legal move and is not in check.
	pos := mustFEN(t, "k7/2K5/1Q6/8/8/8/8/8 b - - 0 1")
	if HasAnyLegalMove(&pos) {
		t.Fatal("expected no legal moves (stalemate)")
	}
	if pos.IsInCheck(Black) {
		t.Fatal("stalemate position should not be check")
	}
}

func TestParseUCIMovePromotion(t *testing.T) {
	pos := mustFEN(t, "8/P7/8/8/8/8/8/k6K w - - 0 1")
	m, err := ParseUCIMove(&pos, "a7a8q")
	if err != nil {
		t.Fatal(err)
	}
	if m.MoveType != Promotion || m.Promotion.Figure() != Queen {
		t.Fatalf("expected queen promotion, got %+v", m)
	}
}
