package sequence

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// goldenFile mirrors the document written by cmd/generate-golden.
type goldenFile struct {
	WidthBits     int     `json:"width_bits"`
	MaxIndex      int     `json:"max_index"`
	OverflowIndex int     `json:"overflow_index"`
	Values        []int64 `json:"values"`
}

func loadGolden(t *testing.T) goldenFile {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "sequence.golden.json"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var g goldenFile
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("decoding golden file: %v", err)
	}
	return g
}

func TestCache_MatchesGolden(t *testing.T) {
	t.Parallel()
	golden := loadGolden(t)

	if golden.MaxIndex != MaxIndex {
		t.Fatalf("golden max_index = %d, MaxIndex = %d", golden.MaxIndex, MaxIndex)
	}

	c := NewCache()
	if _, err := c.ValueAt(golden.MaxIndex); err != nil {
		t.Fatalf("ValueAt(%d): %v", golden.MaxIndex, err)
	}
	if diff := cmp.Diff(golden.Values, c.Values()); diff != "" {
		t.Errorf("cache differs from golden file (-want +got):\n%s", diff)
	}

	_, err := c.ValueAt(golden.OverflowIndex)
	var oe *OverflowError
	if !errors.As(err, &oe) || oe.Index != golden.OverflowIndex {
		t.Errorf("ValueAt(%d) error = %v, want overflow at %d", golden.OverflowIndex, err, golden.OverflowIndex)
	}
}

// TestOverflowBoundaryStable repeats the boundary search on fresh caches.
func TestOverflowBoundaryStable(t *testing.T) {
	t.Parallel()
	for run := 0; run < 10; run++ {
		c := NewCache()
		first := -1
		for n := 0; n < 200; n++ {
			if _, err := c.ValueAt(n); err != nil {
				first = n
				break
			}
		}
		if first != MaxIndex+1 {
			t.Fatalf("run %d: first overflowing index = %d, want %d", run, first, MaxIndex+1)
		}
	}
}
