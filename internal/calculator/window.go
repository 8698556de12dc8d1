package calculator

import "math"

// window is a fixed-size sliding accumulator over a float stream. It keeps
// running sums so each push is O(1) instead of rescanning the whole window.
type window struct {
	size  int
	vals  []float64
	head  int
	count int
	sum   float64
	sumSq float64
}

func newWindow(size int) *window {
	return &window{size: size, vals: make([]float64, 0, size)}
}

func (w *window) push(v float64) {
	if w.count == w.size {
		old := w.vals[w.head]
		w.sum -= old
		w.sumSq -= old * old
		w.vals[w.head] = v
		w.head = (w.head + 1) % w.size
	} else {
		w.vals = append(w.vals, v)
		w.count++
	}
	w.sum += v
	w.sumSq += v * v
}

func (w *window) full() bool { return w.count == w.size }

func (w *window) mean() float64 {
	if w.count == 0 {
		return 0
	}
	return w.sum / float64(w.count)
}

// sampleStd returns the sample standard deviation (N-1 divisor) of the
// current window contents. Running sums can drift a hair below zero for
// constant inputs, so negative variance clamps to zero.
func (w *window) sampleStd() float64 {
	if w.count < 2 {
		return 0
	}
	n := float64(w.count)
	variance := (w.sumSq - w.sum*w.sum/n) / (n - 1)
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}
