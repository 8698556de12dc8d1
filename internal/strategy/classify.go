package strategy

import "SectorPulse/internal/model"

// Classification thresholds: RSI(14) bounds and Bollinger %B band limits.
const (
	rsiOverheated = 70.0
	rsiOversold   = 30.0
	bandUpper     = 1.0
	bandLower     = 0.0
)

// Classify maps an instrument's RSI and Bollinger %B to a discrete status.
// Overheated is checked first and wins when both conditions would apply
// (e.g. RSI 70 with %B below the lower band). Pure function, total over all
// real inputs.
func Classify(rsi, percentB float64) model.Status {
	switch {
	case rsi >= rsiOverheated || percentB > bandUpper:
		return model.StatusOverheated
	case rsi <= rsiOversold || percentB < bandLower:
		return model.StatusOversold
	default:
		return model.StatusNormal
	}
}
