package aggregator

import (
	"math"
	"sort"
	"time"

	"SectorPulse/internal/model"
	"SectorPulse/internal/strategy"
	"SectorPulse/internal/universe"
)

// maxOverheated caps the trending-overheated shortlist.
const maxOverheated = 3

// OverheatedEntry is one line of the overheated ranking: an instrument
// currently classified OVERHEATED, its latest normalized index value and RSI.
type OverheatedEntry struct {
	Name       string
	IndexValue float64
	RSI        float64
}

// Column is one instrument's normalized value series, aligned to the shared
// date index. A nil value marks a date before the instrument's first row;
// interior gaps are forward-filled, leading gaps are never backfilled.
type Column struct {
	Name   string
	Values []*float64
}

// NormalizedSeries is the base-100 performance table: a shared date index
// with one column per instrument display name, columns ordered by name.
type NormalizedSeries struct {
	Dates   []time.Time
	Columns []Column
}

// Empty reports whether the series holds no data.
func (s NormalizedSeries) Empty() bool {
	return len(s.Dates) == 0 || len(s.Columns) == 0
}

// Last returns the most recent value of the named column, or 0 when the
// column is absent or holds no values at all.
func (s NormalizedSeries) Last(name string) float64 {
	for _, col := range s.Columns {
		if col.Name != name {
			continue
		}
		for i := len(col.Values) - 1; i >= 0; i-- {
			if col.Values[i] != nil {
				return *col.Values[i]
			}
		}
		return 0
	}
	return 0
}

// Result bundles everything the aggregation stage produces.
type Result struct {
	Panel      []model.IndicatorRow
	Series     NormalizedSeries
	Overheated []OverheatedEntry
}

// Aggregate merges all instruments' indicator rows and derives the snapshot
// panel, the base-100 normalized series and the overheated ranking. It is a
// pure function of its input; empty input yields an empty (non-error) result.
func Aggregate(rows []model.IndicatorRow, u universe.Universe) Result {
	merged := Merge(rows)
	if len(merged) == 0 {
		return Result{}
	}
	panel := Snapshot(merged, u)
	series := Normalize(merged)
	return Result{
		Panel:      panel,
		Series:     series,
		Overheated: RankOverheated(panel, series),
	}
}

// Merge sorts rows by (date, code) and drops duplicate (date, code) pairs,
// keeping the last occurrence in sort order. Running Merge on its own output
// returns an identical dataset.
func Merge(rows []model.IndicatorRow) []model.IndicatorRow {
	if len(rows) == 0 {
		return nil
	}
	sorted := make([]model.IndicatorRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Code < sorted[j].Code
	})

	merged := make([]model.IndicatorRow, 0, len(sorted))
	for _, row := range sorted {
		if n := len(merged); n > 0 &&
			merged[n-1].Date.Equal(row.Date) && merged[n-1].Code == row.Code {
			merged[n-1] = row // duplicate key: last occurrence wins
			continue
		}
		merged = append(merged, row)
	}
	return merged
}

// Snapshot extracts the latest row per instrument and orders the panel by
// declared universe position. Codes outside the universe sort after every
// declared one, keeping their relative (code-ascending) order.
func Snapshot(merged []model.IndicatorRow, u universe.Universe) []model.IndicatorRow {
	latest := make(map[string]model.IndicatorRow, u.Len())
	var order []string
	for _, row := range merged {
		if _, seen := latest[row.Code]; !seen {
			order = append(order, row.Code)
		}
		// merged is date-ascending, so the last write is the newest.
		latest[row.Code] = row
	}

	sort.Strings(order)
	panel := make([]model.IndicatorRow, 0, len(order))
	for _, code := range order {
		panel = append(panel, latest[code])
	}
	sort.SliceStable(panel, func(i, j int) bool {
		return u.Rank(panel[i].Code) < u.Rank(panel[j].Code)
	})
	return panel
}

// Normalize pivots the merged dataset into a date × instrument close table
// and rebases every column to 100 at the earliest date of the shared index.
// An instrument with no close at the basis date has no defined basis and is
// omitted entirely. Interior gaps are forward-filled per column.
func Normalize(merged []model.IndicatorRow) NormalizedSeries {
	if len(merged) == 0 {
		return NormalizedSeries{}
	}

	// merged is already date-ascending with unique (date, code) keys.
	var dates []time.Time
	closes := map[string]map[time.Time]float64{}
	var names []string
	for _, row := range merged {
		if len(dates) == 0 || !dates[len(dates)-1].Equal(row.Date) {
			dates = append(dates, row.Date)
		}
		byDate, ok := closes[row.Name]
		if !ok {
			byDate = map[time.Time]float64{}
			closes[row.Name] = byDate
			names = append(names, row.Name)
		}
		byDate[row.Date] = row.Close
	}
	sort.Strings(names)

	basis := dates[0]
	columns := make([]Column, 0, len(names))
	for _, name := range names {
		byDate := closes[name]
		base, ok := byDate[basis]
		if !ok || base == 0 {
			continue // no basis value, column omitted
		}
		values := make([]*float64, len(dates))
		var last *float64
		for i, d := range dates {
			if close, ok := byDate[d]; ok {
				v := round2(close / base * 100)
				values[i] = &v
				last = &v
			} else if last != nil {
				v := *last
				values[i] = &v
			}
		}
		columns = append(columns, Column{Name: name, Values: values})
	}

	return NormalizedSeries{Dates: dates, Columns: columns}
}

// RankOverheated filters the panel down to instruments currently classified
// OVERHEATED, ranks them by RSI descending (ties keep panel order) and keeps
// the top 3.
func RankOverheated(panel []model.IndicatorRow, series NormalizedSeries) []OverheatedEntry {
	var entries []OverheatedEntry
	for _, row := range panel {
		if strategy.Classify(row.RSI, row.PercentB) != model.StatusOverheated {
			continue
		}
		entries = append(entries, OverheatedEntry{
			Name:       row.Name,
			IndexValue: series.Last(row.Name),
			RSI:        row.RSI,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RSI > entries[j].RSI
	})
	if len(entries) > maxOverheated {
		entries = entries[:maxOverheated]
	}
	return entries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
