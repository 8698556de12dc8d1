package calculator

import (
	"math"
	"testing"
)

func TestWindow_SlidingMean(t *testing.T) {
	w := newWindow(3)
	w.push(1)
	if w.full() {
		t.Fatal("window should not be full after one push")
	}
	w.push(2)
	w.push(3)
	if !w.full() {
		t.Fatal("window should be full after three pushes")
	}
	if got := w.mean(); got != 2 {
		t.Errorf("mean = %v, want 2", got)
	}

	w.push(7) // evicts 1, window is now {2,3,7}
	if got := w.mean(); got != 4 {
		t.Errorf("mean after slide = %v, want 4", got)
	}
}

func TestWindow_SampleStd(t *testing.T) {
	w := newWindow(3)
	for _, v := range []float64{1, 2, 3} {
		w.push(v)
	}
	// Sample variance of {1,2,3} is 1 (N-1 divisor).
	if got := w.sampleStd(); math.Abs(got-1) > 1e-12 {
		t.Errorf("sample std = %v, want 1", got)
	}
}

func TestWindow_ConstantStdIsZero(t *testing.T) {
	w := newWindow(20)
	for i := 0; i < 100; i++ {
		w.push(42.5)
	}
	if got := w.sampleStd(); got != 0 {
		t.Errorf("std of constant stream = %v, want exactly 0", got)
	}
}
