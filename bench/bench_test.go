package main

import "testing"

// These are not correctness assertions: the exact node count is a
// function of move ordering and pruning tuning, which changes often and
// legitimately. They're logged so a PR that 10x's the node count for the
// same depth gets noticed in review.
func TestShallowBenchRuns(t *testing.T) {
	nodes, err := evalAll(3)
	if err != nil {
		t.Fatal(err)
	}
	if nodes <= 0 {
		t.Fatalf("expected positive node count, got %d", nodes)
	}
	t.Logf("depth 3: %d nodes across %d games", nodes, len(games))
}

func TestDeepBenchRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deeper bench run in short mode")
	}
	nodes, err := evalAll(5)
	if err != nil {
		t.Fatal(err)
	}
	if nodes <= 0 {
		t.Fatalf("expected positive node count, got %d", nodes)
	}
	t.Logf("depth 5: %d nodes across %d games", nodes, len(games))
}
