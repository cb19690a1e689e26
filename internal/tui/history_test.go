package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_Wraps(t *testing.T) {
	h := newHistory(3)
	if h.last() != 0 || len(h.samples()) != 0 {
		t.Fatal("new history should be empty")
	}
	for _, v := range []float64{1, 2, 3, 4} {
		h.push(v)
	}
	if diff := cmp.Diff([]float64{2, 3, 4}, h.samples()); diff != "" {
		t.Errorf("samples differ (-want +got):\n%s", diff)
	}
	if h.last() != 4 {
		t.Errorf("last = %v, want 4", h.last())
	}
}

func TestHistory_ZeroCapacity(t *testing.T) {
	h := newHistory(0)
	h.push(5)
	h.push(6)
	if diff := cmp.Diff([]float64{6}, h.samples()); diff != "" {
		t.Errorf("samples differ (-want +got):\n%s", diff)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		in   []float64
		want string
	}{
		{nil, ""},
		{[]float64{0, 100}, "▁█"},
		{[]float64{-5, 150}, "▁█"},
		{[]float64{50}, "▄"},
	}
	for _, tt := range tests {
		if got := sparkline(tt.in); got != tt.want {
			t.Errorf("sparkline(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
