package debugui

// FrameHistory is a ring of frame times in milliseconds
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

func (h *FrameHistory) Push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean of the recorded samples, 0 when empty
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := range h.filled {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}

// Samples returns the ring in chronological order
func (h *FrameHistory) Samples() []float32 {
	out := make([]float32, 0, h.filled)
	start := 0
	if h.filled == len(h.samples) {
		start = h.next
	}
	for i := range h.filled {
		out = append(out, h.samples[(start+i)%len(h.samples)])
	}
	return out
}

func (h *FrameHistory) Len() int {
	return h.filled
}
