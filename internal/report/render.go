package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math/rand"
	"strings"

	"SectorPulse/internal/aggregator"
	"SectorPulse/internal/model"
	"SectorPulse/internal/strategy"
)

// chartPalette assigns each normalized-series column a stable color by
// column index.
var chartPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf", "#393b79",
}

// card is one snapshot-panel tile.
type card struct {
	Name        string
	Change      string
	ChangeColor template.CSS
	StatusText  string
	StatusStyle template.CSS
	CardStyle   template.CSS
	RSI         float64
	PercentB    float64
}

// topItem is one overheated-ranking line.
type topItem struct {
	Name       string
	IndexValue float64
	RSI        float64
}

type pageData struct {
	UpdatedAt string
	Cards     []card
	Top       []topItem
	ChartID   string
	Labels    template.JS
	Datasets  template.JS
}

// chartDataset mirrors the Chart.js dataset object.
type chartDataset struct {
	Label           string     `json:"label"`
	Data            []*float64 `json:"data"`
	BorderColor     string     `json:"borderColor"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderWidth     int        `json:"borderWidth"`
	PointRadius     int        `json:"pointRadius"`
	PointHoverRad   int        `json:"pointHoverRadius"`
	Fill            bool       `json:"fill"`
	Tension         float64    `json:"tension"`
}

// Render produces the full HTML report body: snapshot card grid, overheated
// top-3 block and the base-100 Chart.js performance chart.
func Render(res aggregator.Result) (string, error) {
	if len(res.Panel) == 0 {
		return "<p>No market data available.</p>", nil
	}

	data := pageData{
		UpdatedAt: latestDate(res.Panel),
		// Random canvas id so repeated embeds on one page don't collide.
		ChartID: fmt.Sprintf("sectorChart_%d", rand.Intn(9000)+1000),
	}

	for _, row := range res.Panel {
		data.Cards = append(data.Cards, buildCard(row))
	}
	for _, e := range res.Overheated {
		data.Top = append(data.Top, topItem{Name: e.Name, IndexValue: e.IndexValue, RSI: e.RSI})
	}

	labels := make([]string, len(res.Series.Dates))
	for i, d := range res.Series.Dates {
		labels[i] = d.Format("2006/01/02")
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("marshal labels: %w", err)
	}

	datasets := make([]chartDataset, 0, len(res.Series.Columns))
	for i, col := range res.Series.Columns {
		color := chartPalette[i%len(chartPalette)]
		datasets = append(datasets, chartDataset{
			Label:           col.Name,
			Data:            col.Values,
			BorderColor:     color,
			BackgroundColor: color,
			BorderWidth:     2,
			PointRadius:     0,
			PointHoverRad:   4,
			Fill:            false,
			Tension:         0.1,
		})
	}
	datasetsJSON, err := json.Marshal(datasets)
	if err != nil {
		return "", fmt.Errorf("marshal datasets: %w", err)
	}

	data.Labels = template.JS(labelsJSON)
	data.Datasets = template.JS(datasetsJSON)

	var b strings.Builder
	if err := pageTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

func latestDate(panel []model.IndicatorRow) string {
	latest := panel[0].Date
	for _, row := range panel[1:] {
		if row.Date.After(latest) {
			latest = row.Date
		}
	}
	return latest.Format("2006-01-02")
}

func buildCard(row model.IndicatorRow) card {
	c := card{
		Name:       row.Name,
		StatusText: "Normal",
		StatusStyle: "color: #aaa; font-size: 0.7rem; background: #f7f7f7; " +
			"padding: 2px 6px; border-radius: 4px; display: inline-block;",
		CardStyle: "background: #fff; border: 1px solid #eee;",
		RSI:       row.RSI,
		PercentB:  row.PercentB,
	}

	switch strategy.Classify(row.RSI, row.PercentB) {
	case model.StatusOverheated:
		c.StatusText = "Overheated"
		c.StatusStyle = badgeStyle("#d32f2f", "rgba(211, 47, 47, 0.4)")
		c.CardStyle = "background: #ffebee; border: 2px solid #ef5350;"
	case model.StatusOversold:
		c.StatusText = "Oversold"
		c.StatusStyle = badgeStyle("#1976d2", "rgba(25, 118, 210, 0.4)")
		c.CardStyle = "background: #e3f2fd; border: 2px solid #42a5f5;"
	}

	switch {
	case row.ChangePct > 0:
		c.Change = fmt.Sprintf("+%.2f", row.ChangePct)
		c.ChangeColor = "#d32f2f"
	case row.ChangePct < 0:
		c.Change = fmt.Sprintf("%.2f", row.ChangePct)
		c.ChangeColor = "#1976d2"
	default:
		c.Change = "0.00"
		c.ChangeColor = "#333"
	}
	return c
}

func badgeStyle(bg, shadow string) template.CSS {
	return template.CSS(fmt.Sprintf(
		"color: #fff; font-weight: 900; font-size: 1.1rem; background: %s; "+
			"padding: 6px 12px; border-radius: 6px; box-shadow: 0 3px 6px %s; "+
			"display: inline-block; transform: scale(1.05);", bg, shadow))
}
