package notation

import "testing"

func TestParseFENRoundTrip(t *testing.T) {
	pos, err := ParseFEN(StartposFEN)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatFEN(pos); got != StartposFEN {
		t.Errorf("got %q, want %q", got, StartposFEN)
	}
}

func TestParseFENKiwipete(t *testing.T) {
	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := ParseFEN(kiwipete)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatFEN(pos); got != kiwipete {
		t.Errorf("got %q, want %q", got, kiwipete)
	}
}

func TestReplayUCI(t *testing.T) {
	pos, err := ParseFEN(StartposFEN)
	if err != nil {
		t.Fatal(err)
	}
	pos, err = ReplayUCI(pos, []string{"e2e4", "e7e5", "g1f3"})
	if err != nil {
		t.Fatal(err)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := FormatFEN(pos); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReplayUCIInvalidMove(t *testing.T) {
	pos, err := ParseFEN(StartposFEN)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReplayUCI(pos, []string{"e2e5"}); err == nil {
		t.Fatal("expected error for illegal move")
	}
}
