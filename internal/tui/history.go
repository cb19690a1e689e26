package tui

// sparkRunes maps levels 0..7 to block elements.
var sparkRunes = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// history keeps the most recent percentage samples in a fixed-size ring.
type history struct {
	data  []float64
	head  int
	count int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = 1
	}
	return &history{data: make([]float64, capacity)}
}

// push adds a sample, overwriting the oldest when full.
func (h *history) push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// last returns the newest sample, or 0 when empty.
func (h *history) last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.data[(h.head-1+len(h.data))%len(h.data)]
}

// samples returns the samples oldest first.
func (h *history) samples() []float64 {
	out := make([]float64, h.count)
	start := h.head - h.count + len(h.data)
	for i := range out {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// sparkline renders percentages (clamped to 0..100) as block characters.
func sparkline(values []float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		v = max(0, min(v, 100))
		runes[i] = sparkRunes[min(int(v/100*7), 7)]
	}
	return string(runes)
}
