package aggregator

import (
	"reflect"
	"testing"
	"time"

	"SectorPulse/internal/calculator"
	"SectorPulse/internal/model"
	"SectorPulse/internal/universe"
)

var testUniverse = universe.New([]universe.Entry{
	{Code: "XLK", Name: "Technology"},
	{Code: "XLE", Name: "Energy"},
	{Code: "XLF", Name: "Financials"},
})

func day(n int) time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func row(code, name string, d int, close float64) model.IndicatorRow {
	return model.IndicatorRow{
		Code: code, Name: name, Date: day(d), Close: close,
		RSI: 50, PercentB: 0.5, VolumeRatio: 1,
	}
}

func TestMerge_SortsAndDeduplicates(t *testing.T) {
	dup := row("XLK", "Technology", 1, 100)
	dupNewer := row("XLK", "Technology", 1, 101) // same key, later occurrence

	merged := Merge([]model.IndicatorRow{
		row("XLE", "Energy", 2, 50),
		dup,
		row("XLE", "Energy", 1, 49),
		dupNewer,
	})

	if len(merged) != 3 {
		t.Fatalf("expected 3 rows after dedupe, got %d", len(merged))
	}
	// Sorted by (date, code): (d1,XLE), (d1,XLK), (d2,XLE)
	if merged[0].Code != "XLE" || !merged[0].Date.Equal(day(1)) {
		t.Errorf("merged[0] = %s@%v, want XLE@day1", merged[0].Code, merged[0].Date)
	}
	if merged[1].Code != "XLK" || merged[1].Close != 101 {
		t.Errorf("dedupe must keep the last occurrence, got close %v", merged[1].Close)
	}
	if merged[2].Code != "XLE" || !merged[2].Date.Equal(day(2)) {
		t.Errorf("merged[2] = %s@%v, want XLE@day2", merged[2].Code, merged[2].Date)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	rows := []model.IndicatorRow{
		row("XLK", "Technology", 2, 102),
		row("XLE", "Energy", 1, 50),
		row("XLK", "Technology", 1, 100),
	}
	once := Merge(rows)
	twice := Merge(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Merge is not idempotent:\n once: %v\ntwice: %v", once, twice)
	}
}

func TestSnapshot_LatestRowPerInstrumentInUniverseOrder(t *testing.T) {
	merged := Merge([]model.IndicatorRow{
		row("XLE", "Energy", 1, 50),
		row("XLE", "Energy", 3, 52),
		row("XLK", "Technology", 1, 100),
		row("XLK", "Technology", 2, 101),
		row("ZZZ", "Mystery", 3, 10), // not in the universe
	})

	panel := Snapshot(merged, testUniverse)
	if len(panel) != 3 {
		t.Fatalf("expected 3 panel rows, got %d", len(panel))
	}
	if panel[0].Code != "XLK" || panel[0].Close != 101 {
		t.Errorf("panel[0] = %s close %v, want XLK 101", panel[0].Code, panel[0].Close)
	}
	if panel[1].Code != "XLE" || panel[1].Close != 52 {
		t.Errorf("panel[1] = %s close %v, want XLE 52", panel[1].Code, panel[1].Close)
	}
	if panel[2].Code != "ZZZ" {
		t.Errorf("unknown instruments must sort last, got %s", panel[2].Code)
	}
}

func TestNormalize_BasisIs100(t *testing.T) {
	merged := Merge([]model.IndicatorRow{
		row("XLK", "Technology", 0, 200),
		row("XLK", "Technology", 1, 210),
		row("XLE", "Energy", 0, 50),
		row("XLE", "Energy", 1, 49),
	})

	series := Normalize(merged)
	if len(series.Dates) != 2 || len(series.Columns) != 2 {
		t.Fatalf("expected 2 dates x 2 columns, got %d x %d", len(series.Dates), len(series.Columns))
	}
	for _, col := range series.Columns {
		if col.Values[0] == nil || *col.Values[0] != 100.00 {
			t.Errorf("column %s: basis value = %v, want exactly 100.00", col.Name, col.Values[0])
		}
	}
	// 210/200*100 = 105.00, 49/50*100 = 98.00 (columns sorted by name).
	if got := *series.Columns[0].Values[1]; got != 98.00 {
		t.Errorf("Energy day1 = %v, want 98.00", got)
	}
	if got := *series.Columns[1].Values[1]; got != 105.00 {
		t.Errorf("Technology day1 = %v, want 105.00", got)
	}
}

func TestNormalize_MissingBasisOmitsColumn(t *testing.T) {
	merged := Merge([]model.IndicatorRow{
		row("XLK", "Technology", 0, 200),
		row("XLK", "Technology", 1, 210),
		row("XLE", "Energy", 1, 50), // first appears after the basis date
	})

	series := Normalize(merged)
	if len(series.Columns) != 1 {
		t.Fatalf("expected the late column to be omitted, got %d columns", len(series.Columns))
	}
	if series.Columns[0].Name != "Technology" {
		t.Errorf("surviving column = %s, want Technology", series.Columns[0].Name)
	}
}

func TestNormalize_ForwardFillsGaps(t *testing.T) {
	merged := Merge([]model.IndicatorRow{
		row("XLK", "Technology", 0, 200),
		row("XLK", "Technology", 1, 210),
		row("XLK", "Technology", 2, 220),
		row("XLE", "Energy", 0, 50),
		// Energy missing on day 1
		row("XLE", "Energy", 2, 55),
	})

	series := Normalize(merged)
	var energy Column
	for _, col := range series.Columns {
		if col.Name == "Energy" {
			energy = col
		}
	}
	if energy.Name == "" {
		t.Fatal("Energy column missing")
	}
	if energy.Values[1] == nil || *energy.Values[1] != 100.00 {
		t.Errorf("gap must forward-fill from day 0 (100.00), got %v", energy.Values[1])
	}
	if *energy.Values[2] != 110.00 {
		t.Errorf("Energy day2 = %v, want 110.00", *energy.Values[2])
	}
}

func TestRankOverheated_DescendingRSIStableTies(t *testing.T) {
	overheat := func(code, name string, rsi float64) model.IndicatorRow {
		r := row(code, name, 5, 100)
		r.RSI = rsi
		r.PercentB = 1.2
		return r
	}
	panel := []model.IndicatorRow{
		overheat("A", "Alpha", 95),
		overheat("B", "Beta", 80),
		overheat("C", "Gamma", 95),
		overheat("D", "Delta", 75),
	}

	ranked := RankOverheated(panel, NormalizedSeries{})
	if len(ranked) != 3 {
		t.Fatalf("expected top-3 truncation, got %d entries", len(ranked))
	}
	want := []string{"Alpha", "Gamma", "Beta"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Name, name)
		}
	}
	// No normalized column for these instruments: index value defaults to 0.
	if ranked[0].IndexValue != 0 {
		t.Errorf("missing column should yield index value 0, got %v", ranked[0].IndexValue)
	}
}

func TestRankOverheated_SkipsNormalAndOversold(t *testing.T) {
	cool := row("XLF", "Financials", 5, 100)
	cold := row("XLE", "Energy", 5, 100)
	cold.RSI = 20
	hot := row("XLK", "Technology", 5, 100)
	hot.RSI = 85

	ranked := RankOverheated([]model.IndicatorRow{hot, cool, cold}, NormalizedSeries{})
	if len(ranked) != 1 || ranked[0].Name != "Technology" {
		t.Fatalf("expected only the overheated instrument, got %v", ranked)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	res := Aggregate(nil, testUniverse)
	if len(res.Panel) != 0 || !res.Series.Empty() || len(res.Overheated) != 0 {
		t.Errorf("empty input must yield an empty result, got %+v", res)
	}
}

func TestAggregate_EndToEnd(t *testing.T) {
	u := universe.New([]universe.Entry{
		{Code: "XLK", Name: "Technology"},
		{Code: "XLE", Name: "Energy"},
	})

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mkBars := func(base float64) []model.Bar {
		bars := make([]model.Bar, 300)
		for i := range bars {
			bars[i] = model.Bar{
				Date:   start.AddDate(0, 0, i),
				Close:  base + float64(i%2), // alternating keeps RSI defined
				Volume: 1000,
			}
		}
		return bars
	}

	var rows []model.IndicatorRow
	rows = append(rows, calculator.Compute("XLE", "Energy", mkBars(50))...)
	rows = append(rows, calculator.Compute("XLK", "Technology", mkBars(200))...)

	res := Aggregate(rows, u)

	if len(res.Panel) != 2 {
		t.Fatalf("expected 2 panel rows, got %d", len(res.Panel))
	}
	if res.Panel[0].Code != "XLK" || res.Panel[1].Code != "XLE" {
		t.Errorf("panel order = [%s %s], want declared universe order [XLK XLE]",
			res.Panel[0].Code, res.Panel[1].Code)
	}
	if len(res.Series.Columns) != 2 {
		t.Fatalf("expected 2 normalized columns, got %d", len(res.Series.Columns))
	}
	for _, col := range res.Series.Columns {
		if col.Values[0] == nil || *col.Values[0] != 100.00 {
			t.Errorf("column %s: first normalized value = %v, want 100.00", col.Name, col.Values[0])
		}
	}
}
