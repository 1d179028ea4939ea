package core

import (
	"math"
	"testing"
)

func TestMetrics_Average(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	if math.Abs(m.FrameTime()-16) > 1e-9 {
		t.Errorf("FrameTime() = %v, want 16", m.FrameTime())
	}
	// a second window must not accumulate on top of the first
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.010)
	}
	if math.Abs(m.FrameTime()-10) > 1e-9 {
		t.Errorf("FrameTime() = %v, want 10", m.FrameTime())
	}
}

func TestMetrics_FPS(t *testing.T) {
	m := NewMetrics()
	// 15.625ms frames, exactly 64 of them per second
	for i := 0; i < 65; i++ {
		m.Update(0.015625)
	}
	// the 65th frame pushes the accumulator over one second
	if m.FPS() != 64 {
		t.Errorf("FPS() = %v, want 64", m.FPS())
	}
}
