package engine

import (
	"os"
	"testing"
)

// TestMain flips AssertionsEnabled on for the whole package's test run, so
// a broken invariant in movegen/search/hashtable fails a test instead of
// silently passing.
func TestMain(m *testing.M) {
	AssertionsEnabled = true
	os.Exit(m.Run())
}
