// Package plot renders observed yields and fitted curve models to PNG with
// go-charts.
package plot

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/vicanso/go-charts/v2"

	"github.com/meenmo/yieldcurve/curve"
	"github.com/meenmo/yieldcurve/model"
)

// Options controls rendering.
type Options struct {
	Title  string // chart title; defaults to "US Treasury Yield Curve"
	Points int    // model grid density; defaults to 300
}

const defaultPoints = 300

// Render draws the observed curve plus any non-nil fitted models over the
// observed maturity range and returns PNG bytes. Observed yields appear only
// at their node positions; the models are drawn on a dense grid.
func Render(c curve.Curve, splineModel, nssModel model.Model, opt Options) ([]byte, error) {
	nodes, obs, err := c.Points()
	if err != nil {
		return nil, fmt.Errorf("plot.Render: %w", err)
	}
	if len(nodes) < 2 {
		return nil, fmt.Errorf("plot.Render: need at least 2 observed points, got %d", len(nodes))
	}

	num := opt.Points
	if num < 2 {
		num = defaultPoints
	}
	title := opt.Title
	if title == "" {
		title = "US Treasury Yield Curve"
	}

	grid := buildGrid(nodes, num)

	null := charts.GetNullValue()
	observed := make([]float64, len(grid))
	for i := range observed {
		observed[i] = null
	}
	for i, t := range nodes {
		observed[indexOf(grid, t)] = obs[i]
	}

	values := [][]float64{observed}
	names := []string{"Observed"}

	for _, m := range []struct {
		name  string
		model model.Model
	}{
		{"Cubic Spline", splineModel},
		{"NSS", nssModel},
	} {
		if m.model == nil {
			continue
		}
		ys, err := m.model.EvaluateAll(grid)
		if err != nil {
			return nil, fmt.Errorf("plot.Render: %s: %w", m.name, err)
		}
		values = append(values, ys)
		names = append(names, m.name)
	}

	labels := make([]string, len(grid))
	for i, t := range grid {
		labels[i] = fmt.Sprintf("%.1f", t)
	}

	yMin, yMax := yRange(values, null)

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title, fmt.Sprintf("%d observed maturities", len(nodes))),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        labels,
			BoundaryGap: charts.FalseFlag(),
			SplitNumber: 10,
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("plot.Render: %w", err)
	}
	img, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("plot.Render: %w", err)
	}
	return img, nil
}

// Save renders the chart and writes it to path.
func Save(path string, c curve.Curve, splineModel, nssModel model.Model, opt Options) error {
	img, err := Render(c, splineModel, nssModel, opt)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("plot.Save: %w", err)
	}
	return nil
}

// buildGrid merges num evenly spaced maturities over the node range with the
// node maturities themselves, so observed points land exactly on the axis.
func buildGrid(nodes []float64, num int) []float64 {
	lo, hi := nodes[0], nodes[len(nodes)-1]
	grid := make([]float64, 0, num+len(nodes))
	step := (hi - lo) / float64(num-1)
	for i := 0; i < num; i++ {
		grid = append(grid, lo+step*float64(i))
	}
	grid = append(grid, nodes...)
	sort.Float64s(grid)

	uniq := grid[:1]
	for _, t := range grid[1:] {
		if t > uniq[len(uniq)-1] {
			uniq = append(uniq, t)
		}
	}
	return uniq
}

func indexOf(grid []float64, t float64) int {
	i := sort.SearchFloat64s(grid, t)
	if i == len(grid) {
		return len(grid) - 1
	}
	return i
}

func yRange(values [][]float64, null float64) (float64, float64) {
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, series := range values {
		for _, v := range series {
			if v == null {
				continue
			}
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 0.1
	}
	return yMin - pad, yMax + pad
}
