package main

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFibBig(t *testing.T) {
	tests := []struct {
		name     string
		n        uint64
		expected string
	}{
		{"F(0) base case", 0, "0"},
		{"F(1) base case", 1, "1"},
		{"F(2)", 2, "1"},
		{"F(10)", 10, "55"},
		{"F(20)", 20, "6765"},
		{"F(50)", 50, "12586269025"},
		{"F(92) largest int64 Fibonacci", 92, "7540113804746346429"},
		{"F(93) exceeds int64", 93, "12200160415121876738"},
		{"F(100)", 100, "354224848179261915075"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fibBig(tt.n).String(); got != tt.expected {
				t.Errorf("fibBig(%d) = %s, want %s", tt.n, got, tt.expected)
			}
		})
	}
}

func TestFibBig_Recurrence(t *testing.T) {
	for n := uint64(0); n < 100; n++ {
		sum := new(big.Int).Add(fibBig(n), fibBig(n+1))
		if sum.Cmp(fibBig(n+2)) != 0 {
			t.Fatalf("F(%d) + F(%d) != F(%d)", n, n+1, n+2)
		}
	}
}

func TestBuildGolden(t *testing.T) {
	g := buildGolden()

	if g.MaxIndex != 91 || g.OverflowIndex != 92 {
		t.Errorf("max/overflow index = %d/%d, want 91/92", g.MaxIndex, g.OverflowIndex)
	}
	if len(g.Values) != 92 {
		t.Fatalf("len(values) = %d, want 92", len(g.Values))
	}
	if diff := cmp.Diff([]int64{1, 1, 2, 3, 5, 8}, g.Values[:6]); diff != "" {
		t.Errorf("leading values differ (-want +got):\n%s", diff)
	}
	if g.Values[91] != 7540113804746346429 {
		t.Errorf("values[91] = %d", g.Values[91])
	}
}

// TestCommittedGoldenIsCurrent fails when testdata was edited by hand or the
// generator changed without regenerating the file.
func TestCommittedGoldenIsCurrent(t *testing.T) {
	committed, err := os.ReadFile(filepath.Join("..", "..", "internal", "sequence", "testdata", "sequence.golden.json"))
	if err != nil {
		t.Fatalf("reading committed golden file: %v", err)
	}
	var want golden
	if err := json.Unmarshal(committed, &want); err != nil {
		t.Fatalf("decoding committed golden file: %v", err)
	}

	var buf bytes.Buffer
	if err := writeGolden(&buf, buildGolden()); err != nil {
		t.Fatalf("writeGolden: %v", err)
	}
	var got golden
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decoding generated output: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generated golden differs from committed file (-committed +generated):\n%s", diff)
	}
}
