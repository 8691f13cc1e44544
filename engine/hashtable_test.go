package engine

import "testing"

func TestHashTableStoreProbeRoundTrip(t *testing.T) {
	ht := NewHashTable(1)
	key := uint64(0xdeadbeefcafef00d)
	m := Move{From: SquareE2, To: SquareE4, Moved: WhitePawn}
	ht.Store(key, m, 123, 5, Exact)

	e, ok := ht.Probe(key)
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if e.move != m || e.score != 123 || e.depth != 5 || e.bound != Exact {
		t.Errorf("got %+v", e)
	}
}

func TestHashTableProbeMiss(t *testing.T) {
	ht := NewHashTable(1)
	if _, ok := ht.Probe(12345); ok {
		t.Fatal("expected miss on empty table")
	}
}

func TestHashTableClear(t *testing.T) {
	ht := NewHashTable(1)
	ht.Store(42, Move{}, 1, 1, Exact)
	ht.Clear()
	if _, ok := ht.Probe(42); ok {
		t.Fatal("expected entry to be gone after Clear")
	}
}

func TestHashTableDoesNotOverwriteWithShallowerSearch(t *testing.T) {
	ht := NewHashTable(1)
	key := uint64(99)
	deep := Move{From: SquareD2, To: SquareD4, Moved: WhitePawn}
	ht.Store(key, deep, 50, 10, Exact)
	shallow := Move{From: SquareE2, To: SquareE4, Moved: WhitePawn}
	ht.Store(key, shallow, -50, 2, Exact)

	e, ok := ht.Probe(key)
	if !ok {
		t.Fatal("expected entry present")
	}
	if e.depth != 10 || e.move != deep {
		t.Errorf("shallower search overwrote deeper entry: %+v", e)
	}
}

func TestMateInOutRoundTrip(t *testing.T) {
	stored := mateIn(MateScore-3, 5)
	if got := mateOut(stored, 5); got != MateScore-3 {
		t.Errorf("mateOut(mateIn(x)) = %v, want %v", got, MateScore-3)
	}
}
