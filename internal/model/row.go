package model

import "time"

// IndicatorRow holds the full computed indicator set for one instrument
// on one trading date. Rows are immutable once emitted; a row only exists
// when every component could be computed from the trailing history.
type IndicatorRow struct {
	Code        string
	Name        string
	Date        time.Time
	Close       float64
	ChangePct   float64 // previous-day close change, percent
	DiffShort   float64 // deviation from 5-day MA, percent
	DiffMid     float64 // deviation from 25-day MA, percent
	DiffLong    float64 // deviation from 75-day MA, percent
	RSI         float64 // RSI(14), 0-100
	PercentB    float64 // Bollinger %B(20, 2σ)
	VolumeRatio float64 // volume vs trailing 5-day average volume
}

// Status classifies an instrument's short-term condition.
type Status string

const (
	StatusOverheated Status = "OVERHEATED"
	StatusOversold   Status = "OVERSOLD"
	StatusNormal     Status = "NORMAL"
)
