package engine

import "testing"

func TestPositionFromFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Errorf("%q: %v", fen, err)
			continue
		}
		if got := pos.String(); got != fen {
			t.Errorf("round trip: got %q, want %q", got, fen)
		}
	}
}

func TestApplyPawnMoveResetsHalfMoveClock(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 3 1")
	m, err := ParseUCIMove(&pos, "d7d5")
	if err != nil {
		t.Fatal(err)
	}
	next := pos.Apply(m)
	if next.HalfMoveClock != 0 {
		t.Errorf("expected half-move clock reset after pawn move, got %d", next.HalfMoveClock)
	}
}

func TestApplyCastlingMovesRookToo(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := ParseUCIMove(&pos, "e1g1")
	if err != nil {
		t.Fatal(err)
	}
	next := pos.Apply(m)
	if next.Get(SquareF1) != ColorFigure(White, Rook) {
		t.Errorf("expected rook on f1 after kingside castle, got %v", next.Get(SquareF1))
	}
	if next.Get(SquareH1) != NoPiece {
		t.Errorf("expected h1 empty after castle, got %v", next.Get(SquareH1))
	}
	if next.CastleRights&(WhiteOO|WhiteOOO) != 0 {
		t.Errorf("expected white to lose all castle rights after castling, got %v", next.CastleRights)
	}
}

func TestApplyRookMoveLosesCastleRightOnThatSide(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := ParseUCIMove(&pos, "a1b1")
	if err != nil {
		t.Fatal(err)
	}
	next := pos.Apply(m)
	if next.CastleRights&WhiteOOO != 0 {
		t.Error("expected white queenside castle right to be lost after a1 rook moves")
	}
	if next.CastleRights&WhiteOO == 0 {
		t.Error("expected white kingside castle right to survive")
	}
}

func TestApplyEnpassantCapture(t *testing.T) {
	pos := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	m, err := ParseUCIMove(&pos, "e5d6")
	if err != nil {
		t.Fatal(err)
	}
	if m.MoveType != Enpassant {
		t.Fatalf("expected Enpassant move type, got %v", m.MoveType)
	}
	next := pos.Apply(m)
	if next.Get(SquareD5) != NoPiece {
		t.Errorf("expected captured pawn removed from d5, got %v", next.Get(SquareD5))
	}
	if next.Get(SquareD6) != WhitePawn {
		t.Errorf("expected white pawn on d6, got %v", next.Get(SquareD6))
	}
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	pos := mustFEN(t, "8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	if !pos.InsufficientMaterial() {
		t.Error("king vs king should be insufficient material")
	}
}

func TestInsufficientMaterialFalseWithRook(t *testing.T) {
	pos := mustFEN(t, "8/8/4k3/8/8/3KR3/8/8 w - - 0 1")
	if pos.InsufficientMaterial() {
		t.Error("king+rook vs king should not be insufficient material")
	}
}
