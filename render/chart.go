// Package render turns a merged registry row plus its downloaded images
// into a finished DOCX (and best-effort PDF) on disk: compliance chart,
// image re-encoding, template context and document assembly.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dalgorosas/sistema-informes-dalgoro/config"
)

// ParsePercentage reads the nivel_cumplimiento cell, tolerating "%"
// suffixes and decimal commas ("85,5 %"). Anything unparseable is 0.
func ParsePercentage(val string) float64 {
	s := strings.TrimSpace(val)
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ClampPercentage bounds a compliance value to [0, 100]. Out-of-range
// inputs are clamped, not rejected.
func ClampPercentage(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// chartValues builds the two donut segments. The percentage label rides
// the filled segment, except at 0% where the renderer drops the
// zero-valued segment entirely, so the label moves to the pending one to
// stay visible.
func chartValues(cfg *config.Settings, pct float64) []chart.Value {
	label := fmt.Sprintf("%.0f%%", pct)
	values := []chart.Value{
		{
			Value: pct,
			Label: label,
			Style: chart.Style{FillColor: drawing.ColorFromHex(strings.TrimPrefix(cfg.ColorFilled, "#"))},
		},
		{
			Value: 100 - pct,
			Style: chart.Style{FillColor: drawing.ColorFromHex(strings.TrimPrefix(cfg.ColorPending, "#"))},
		},
	}
	if pct == 0 {
		values[0].Label = ""
		values[1].Label = label
	}
	return values
}

// ComplianceChart renders the two-segment donut (filled = percentage,
// pending = remainder) as a PNG under the output directory and returns
// its path. The file name encodes the base token and the truncated
// percentage; every call writes a fresh file.
func ComplianceChart(cfg *config.Settings, percentage float64, baseName string) (string, error) {
	pct := ClampPercentage(percentage)
	values := chartValues(cfg, pct)

	bg := drawing.ColorWhite
	if cfg.ChartBackground != "" && cfg.ChartBackground != "white" {
		bg = drawing.ColorFromHex(strings.TrimPrefix(cfg.ChartBackground, "#"))
	}
	donut := chart.DonutChart{
		Width:      480,
		Height:     480,
		Background: chart.Style{FillColor: bg},
		Canvas:     chart.Style{FillColor: bg},
		Values:     values,
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create output dir: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%d.png", baseName, int(pct)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create chart file: %w", err)
	}
	defer f.Close()

	if err := donut.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("could not render compliance chart: %w", err)
	}
	return path, nil
}
