package model

import "time"

// Bar represents one trading day of raw history for one instrument.
type Bar struct {
	Date   time.Time
	Close  float64
	Volume float64
}
