package main

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type HeatmapChartArgs struct {
	CommonArgs
	XField      string  `json:"x_field" jsonschema:"description=Field holding the column categories,required"`
	YField      string  `json:"y_field" jsonschema:"description=Field holding the row categories,required"`
	ValueField  string  `json:"value_field" jsonschema:"description=Numeric field aggregated into each cell,required"`
	Aggregation string  `json:"aggregation,omitempty" jsonschema:"description=Cell aggregation,enum=mean,enum=sum,enum=min,enum=max,enum=count"`
	ColorMap    string  `json:"color_map,omitempty" jsonschema:"description=Colormap for the cells (default viridis)"`
	Annotate    *bool   `json:"annotate,omitempty" jsonschema:"description=Write the cell value inside each cell (default true)"`
	Fmt         string  `json:"fmt,omitempty" jsonschema:"description=Annotation number format such as .2f (default .2f)"`
	LineWidths  float64 `json:"linewidths,omitempty" jsonschema:"description=Cell border width in points (default 0.5),minimum=0"`
	LineColor   string  `json:"linecolor,omitempty" jsonschema:"description=Cell border color (default white)"`
	XLabel      string  `json:"x_label,omitempty" jsonschema:"description=X axis label (defaults to x_field)"`
	YLabel      string  `json:"y_label,omitempty" jsonschema:"description=Y axis label (defaults to y_field)"`

	// accepted for compatibility, has no colorbar to configure
	CbarKws map[string]any `json:"cbar_kws,omitempty" jsonschema:"description=Colorbar options (accepted for compatibility)"`
}

func (a *HeatmapChartArgs) applyDefaults() {
	a.CommonArgs.applyDefaults(10, 8)
	if a.Aggregation == "" {
		a.Aggregation = "mean"
	}
	if a.ColorMap == "" {
		a.ColorMap = "viridis"
	}
	if a.Fmt == "" {
		a.Fmt = ".2f"
	}
	if a.LineWidths == 0 {
		a.LineWidths = 0.5
	}
	if a.LineColor == "" {
		a.LineColor = "white"
	}
	if a.XLabel == "" {
		a.XLabel = a.XField
	}
	if a.YLabel == "" {
		a.YLabel = a.YField
	}
}

// colorMapByName maps the familiar matplotlib colormap names onto the
// perceptually uniform maps gonum ships.
func colorMapByName(name string) (palette.ColorMap, bool) {
	switch strings.ToLower(name) {
	case "viridis", "kindlmann":
		return moreland.ExtendedKindlmann(), true
	case "plasma":
		return moreland.Kindlmann(), true
	case "coolwarm", "bwr", "rdbu":
		return moreland.SmoothBlueRed(), true
	case "hot", "inferno":
		return moreland.ExtendedBlackBody(), true
	case "magma":
		return moreland.BlackBody(), true
	}
	return nil, false
}

var aggregations = map[string]func([]float64) float64{
	"mean": func(vs []float64) float64 {
		var sum float64
		for _, v := range vs {
			sum += v
		}
		return sum / float64(len(vs))
	},
	"sum": func(vs []float64) float64 {
		var sum float64
		for _, v := range vs {
			sum += v
		}
		return sum
	},
	"min": func(vs []float64) float64 {
		lo, _ := minMax(vs)
		return lo
	},
	"max": func(vs []float64) float64 {
		_, hi := minMax(vs)
		return hi
	},
	"count": func(vs []float64) float64 {
		return float64(len(vs))
	},
}

func validateHeatmapChart(args *HeatmapChartArgs, env renderEnv) error {
	var v ValidationErrors
	validateCommon(&v, &args.CommonArgs, plotFormats, env)
	if args.XField == "" {
		v.add("x_field", "required")
	}
	if args.YField == "" {
		v.add("y_field", "required")
	}
	if args.ValueField == "" {
		v.add("value_field", "required")
	}
	checkDataFields(&v, args.Data, "x_field", args.XField)
	checkDataFields(&v, args.Data, "y_field", args.YField)
	checkDataFields(&v, args.Data, "value_field", args.ValueField)
	checkNumericField(&v, args.Data, "value_field", args.ValueField)
	if _, ok := aggregations[args.Aggregation]; !ok {
		v.add("aggregation", "unknown aggregation %q, supported: mean, sum, min, max, count", args.Aggregation)
	}
	if _, ok := colorMapByName(args.ColorMap); !ok {
		v.add("color_map", "unknown colormap %q", args.ColorMap)
	}
	checkColors(&v, "linecolor", []string{args.LineColor})
	if args.LineWidths < 0 {
		v.add("linewidths", "must be >= 0, got %g", args.LineWidths)
	}
	return v.errOrNil()
}

// heatGrid is a dense pivot of the aggregated cells, addressed by category
// index on both axes.
type heatGrid struct {
	cols, rows []string
	vals       [][]float64 // [row][col]
}

func (g heatGrid) Dims() (c, r int)   { return len(g.cols), len(g.rows) }
func (g heatGrid) Z(c, r int) float64 { return g.vals[r][c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(r) }

// pivotGrid groups rows by (x, y) category pair and aggregates the value
// column into each cell. Categories keep their order of first appearance;
// absent combinations become zero cells.
func pivotGrid(data []Row, xField, yField, valueField, aggregation string) heatGrid {
	colIdx := map[string]int{}
	rowIdx := map[string]int{}
	var cols, rows []string
	cells := map[[2]int][]float64{}

	for _, row := range data {
		cx := fieldString(row, xField)
		cy := fieldString(row, yField)
		ci, ok := colIdx[cx]
		if !ok {
			ci = len(cols)
			colIdx[cx] = ci
			cols = append(cols, cx)
		}
		ri, ok := rowIdx[cy]
		if !ok {
			ri = len(rows)
			rowIdx[cy] = ri
			rows = append(rows, cy)
		}
		v, _ := fieldNumber(row, valueField)
		key := [2]int{ri, ci}
		cells[key] = append(cells[key], v)
	}

	agg := aggregations[aggregation]
	vals := make([][]float64, len(rows))
	for ri := range vals {
		vals[ri] = make([]float64, len(cols))
		for ci := range vals[ri] {
			if vs := cells[[2]int{ri, ci}]; len(vs) > 0 {
				vals[ri][ci] = agg(vs)
			}
		}
	}
	return heatGrid{cols: cols, rows: rows, vals: vals}
}

func renderHeatmapChart(env renderEnv, args HeatmapChartArgs) (string, error) {
	args.applyDefaults()
	if err := validateHeatmapChart(&args, env); err != nil {
		return "", err
	}

	th, _ := themeByName(args.Theme)
	p := newThemedPlot(env, args.CommonArgs, th, args.XLabel, args.YLabel)

	grid := pivotGrid(args.Data, args.XField, args.YField, args.ValueField, args.Aggregation)
	cm, _ := colorMapByName(args.ColorMap)
	cm.SetMin(0)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(grid, cm.Palette(255))
	if hm.Max == hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	p.X.Tick.Marker = categoryTicks(grid.cols)
	p.Y.Tick.Marker = categoryTicks(grid.rows)

	if err := addCellBorders(p, grid, args.LineColor, args.LineWidths); err != nil {
		return "", err
	}
	if args.Annotate == nil || *args.Annotate {
		labels, err := cellLabels(env, grid, args.Fmt, th)
		if err != nil {
			return "", err
		}
		p.Add(labels)
	}

	return savePlot(p, args.CommonArgs)
}

// addCellBorders separates the cells with thin lines at every category
// boundary, the way seaborn's linewidths option does.
func addCellBorders(p *plot.Plot, grid heatGrid, lineColor string, width float64) error {
	if width <= 0 {
		return nil
	}
	c, _ := parseColor(lineColor)
	style := draw.LineStyle{Color: c, Width: vg.Points(width)}

	nc, nr := grid.Dims()
	left, right := -0.5, float64(nc)-0.5
	bottom, top := -0.5, float64(nr)-0.5
	for i := 0; i <= nc; i++ {
		x := float64(i) - 0.5
		l, err := plotter.NewLine(plotter.XYs{{X: x, Y: bottom}, {X: x, Y: top}})
		if err != nil {
			return err
		}
		l.LineStyle = style
		p.Add(l)
	}
	for i := 0; i <= nr; i++ {
		y := float64(i) - 0.5
		l, err := plotter.NewLine(plotter.XYs{{X: left, Y: y}, {X: right, Y: y}})
		if err != nil {
			return err
		}
		l.LineStyle = style
		p.Add(l)
	}
	return nil
}

// cellLabels builds the per-cell value annotations. numFmt is a printf verb
// body such as ".2f". Labels take the theme's text color so they stay
// readable on dark backgrounds.
func cellLabels(env renderEnv, grid heatGrid, numFmt string, th Theme) (*plotter.Labels, error) {
	format := "%" + strings.TrimPrefix(numFmt, "%")
	if !strings.ContainsAny(format, "efg") {
		format = "%.2f"
	}
	nc, nr := grid.Dims()
	xyl := plotter.XYLabels{}
	for ri := 0; ri < nr; ri++ {
		for ci := 0; ci < nc; ci++ {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(ci), Y: float64(ri)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf(format, grid.Z(ci, ri)))
		}
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Typeface = env.fonts.Plot.Typeface
		labels.TextStyle[i].Color = th.Text
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}
