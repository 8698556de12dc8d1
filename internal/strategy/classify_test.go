package strategy

import (
	"testing"

	"SectorPulse/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		rsi      float64
		percentB float64
		want     model.Status
	}{
		{"rsi at overheat threshold", 70, 0.5, model.StatusOverheated},
		{"band breakout only", 69.9, 1.01, model.StatusOverheated},
		{"rsi at oversold threshold", 30, 0.5, model.StatusOversold},
		{"band breakdown", 30, -0.1, model.StatusOversold},
		{"mid range", 50, 0.5, model.StatusNormal},
		{"overheated wins over oversold", 70, -5, model.StatusOverheated},
		{"band exactly 1.0 is not a breakout", 50, 1.0, model.StatusNormal},
		{"band exactly 0.0 is not a breakdown", 50, 0.0, model.StatusNormal},
		{"extreme low rsi", 0, 0.5, model.StatusOversold},
		{"extreme high rsi", 100, 0.5, model.StatusOverheated},
	}
	for _, tt := range tests {
		if got := Classify(tt.rsi, tt.percentB); got != tt.want {
			t.Errorf("%s: Classify(%v, %v) = %v, want %v", tt.name, tt.rsi, tt.percentB, got, tt.want)
		}
	}
}
