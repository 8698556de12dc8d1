package calculator

import (
	"math"

	"SectorPulse/internal/model"
)

// Indicator window lengths. The longest window gates row emission: no row
// exists until 75 bars of trailing history are available.
const (
	maShortWindow = 5
	maMidWindow   = 25
	maLongWindow  = 75
	rsiWindow     = 14
	bbWindow      = 20
	volWindow     = 5

	// maxRows caps the emitted series to the most recent trading days,
	// which bounds both the snapshot lookback and the chart basis.
	maxRows = 300
)

// Compute derives the full indicator series for one instrument from its
// ordered daily bars. A row is emitted only when every indicator is defined;
// incomplete rows are dropped, not padded. The result is capped to the most
// recent 300 rows.
func Compute(code, name string, bars []model.Bar) []model.IndicatorRow {
	if len(bars) < maLongWindow {
		return nil
	}

	maShort := newWindow(maShortWindow)
	maMid := newWindow(maMidWindow)
	maLong := newWindow(maLongWindow)
	bb := newWindow(bbWindow)
	vol := newWindow(volWindow)
	gains := newWindow(rsiWindow)
	losses := newWindow(rsiWindow)

	rows := make([]model.IndicatorRow, 0, len(bars)-maLongWindow+1)

	for i, bar := range bars {
		maShort.push(bar.Close)
		maMid.push(bar.Close)
		maLong.push(bar.Close)
		bb.push(bar.Close)
		vol.push(bar.Volume)

		if i > 0 {
			delta := bar.Close - bars[i-1].Close
			gains.push(math.Max(delta, 0))
			losses.push(math.Max(-delta, 0))
		}

		if !maLong.full() || !gains.full() {
			continue
		}

		rsi, ok := rsiValue(gains.mean(), losses.mean())
		if !ok {
			continue
		}

		diffShort, ok := deviation(bar.Close, maShort.mean())
		if !ok {
			continue
		}
		diffMid, ok := deviation(bar.Close, maMid.mean())
		if !ok {
			continue
		}
		diffLong, ok := deviation(bar.Close, maLong.mean())
		if !ok {
			continue
		}

		prevClose := bars[i-1].Close
		if prevClose == 0 {
			continue
		}

		rows = append(rows, model.IndicatorRow{
			Code:        code,
			Name:        name,
			Date:        bar.Date,
			Close:       round(bar.Close, 2),
			ChangePct:   round((bar.Close-prevClose)/prevClose*100, 2),
			DiffShort:   round(diffShort, 2),
			DiffMid:     round(diffMid, 2),
			DiffLong:    round(diffLong, 2),
			RSI:         round(rsi, 1),
			PercentB:    round(percentB(bar.Close, bb.mean(), bb.sampleStd()), 2),
			VolumeRatio: round(volumeRatio(bar.Volume, vol.mean()), 2),
		})
	}

	if len(rows) > maxRows {
		rows = rows[len(rows)-maxRows:]
	}
	return rows
}

// deviation returns the percent deviation of close from ma. A zero ma leaves
// the deviation undefined.
func deviation(close, ma float64) (float64, bool) {
	if ma == 0 {
		return 0, false
	}
	return (close - ma) / ma * 100, true
}

// rsiValue computes RSI from average gain/loss. A zero average loss with a
// positive average gain pins RSI at 100; both zero means the oscillator is
// undefined and the row must be dropped. The division is guarded explicitly
// rather than relying on Inf propagating through the formula.
func rsiValue(avgGain, avgLoss float64) (float64, bool) {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 0, false
		}
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// percentB returns the position of close within the Bollinger band. A zero
// band range yields exactly 0.
func percentB(close, ma, std float64) float64 {
	upper := ma + 2*std
	lower := ma - 2*std
	if upper == lower {
		return 0
	}
	return (close - lower) / (upper - lower)
}

// volumeRatio compares volume against its trailing average. A zero average
// yields exactly 0.
func volumeRatio(volume, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	return volume / avg
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
