package main

import (
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type BarChartArgs struct {
	CommonArgs
	XField     string    `json:"x_field" jsonschema:"description=Field holding the category labels,required"`
	YFields    FieldList `json:"y_fields" jsonschema:"description=Field(s) holding the bar heights as an array or comma-separated string,required"`
	XLabel     string    `json:"x_label,omitempty" jsonschema:"description=X axis label (defaults to x_field)"`
	YLabel     string    `json:"y_label,omitempty" jsonschema:"description=Y axis label (defaults to the single y field)"`
	Colors     []string  `json:"colors,omitempty" jsonschema:"description=One color per series as hex or name"`
	BarWidth   float64   `json:"bar_width,omitempty" jsonschema:"description=Bar width as a fraction of the category slot (default 0.8),minimum=0,maximum=1"`
	EdgeColor  string    `json:"edge_color,omitempty" jsonschema:"description=Bar outline color (default black)"`
	EdgeWidth  float64   `json:"edge_width,omitempty" jsonschema:"description=Bar outline width in points (default 0.5),minimum=0"`
	Stacked    bool      `json:"stack,omitempty" jsonschema:"description=Stack the series instead of grouping them"`
	Horizontal bool      `json:"horizontal,omitempty" jsonschema:"description=Draw horizontal bars"`
	Grid       *bool     `json:"grid,omitempty" jsonschema:"description=Draw grid lines (default true)"`
}

func (a *BarChartArgs) applyDefaults() {
	a.CommonArgs.applyDefaults(10, 6)
	if a.XLabel == "" {
		a.XLabel = a.XField
	}
	if a.BarWidth == 0 {
		a.BarWidth = 0.8
	}
	if a.EdgeColor == "" {
		a.EdgeColor = "black"
	}
	if a.EdgeWidth == 0 {
		a.EdgeWidth = 0.5
	}
	if a.YLabel == "" && len(a.YFields) == 1 {
		a.YLabel = a.YFields[0]
	}
}

func validateBarChart(args *BarChartArgs, env renderEnv) error {
	var v ValidationErrors
	validateCommon(&v, &args.CommonArgs, plotFormats, env)
	if args.XField == "" {
		v.add("x_field", "required")
	}
	if len(args.YFields) == 0 {
		v.add("y_fields", "required")
	}
	checkDataFields(&v, args.Data, "x_field", args.XField)
	checkDataFields(&v, args.Data, "y_fields", args.YFields...)
	for _, f := range args.YFields {
		checkNumericField(&v, args.Data, "y_fields", f)
	}
	checkColors(&v, "colors", args.Colors)
	checkColors(&v, "edge_color", []string{args.EdgeColor})
	if args.BarWidth < 0 || args.BarWidth > 1 {
		v.add("bar_width", "must be between 0 and 1, got %g", args.BarWidth)
	}
	if args.EdgeWidth < 0 {
		v.add("edge_width", "must be >= 0, got %g", args.EdgeWidth)
	}
	return v.errOrNil()
}

func renderBarChart(env renderEnv, args BarChartArgs) (string, error) {
	args.applyDefaults()
	if err := validateBarChart(&args, env); err != nil {
		return "", err
	}

	th, _ := themeByName(args.Theme)
	xLabel, yLabel := args.XLabel, args.YLabel
	if args.Horizontal {
		// the category axis moves to Y, so the labels swap with it
		xLabel, yLabel = args.YLabel, args.XLabel
	}
	p := newThemedPlot(env, args.CommonArgs, th, xLabel, yLabel)
	if gridOn(args.Grid) {
		addGrid(p, th)
	}

	labels := make([]string, len(args.Data))
	for i, row := range args.Data {
		labels[i] = fieldString(row, args.XField)
	}

	edge, _ := parseColor(args.EdgeColor)
	colors := seriesColors(args.Colors, th, len(args.YFields))

	// the category slot gonum gives each group is roughly one glyph box
	// wide; split it between the series when grouping
	slot := vg.Points(40) * vg.Length(args.BarWidth)
	barW := slot
	if !args.Stacked && len(args.YFields) > 1 {
		barW = slot / vg.Length(len(args.YFields))
	}

	var prev *plotter.BarChart
	for si, field := range args.YFields {
		values := make(plotter.Values, len(args.Data))
		for i, row := range args.Data {
			values[i], _ = fieldNumber(row, field)
		}
		b, err := plotter.NewBarChart(values, barW)
		if err != nil {
			return "", err
		}
		b.Color = colors[si]
		b.LineStyle.Color = edge
		b.LineStyle.Width = vg.Points(args.EdgeWidth)
		b.Horizontal = args.Horizontal
		if args.Stacked {
			if prev != nil {
				b.StackOn(prev)
			}
		} else {
			// center the group of bars on the category tick
			b.Offset = barW*vg.Length(si) - slot/2 + barW/2
		}
		p.Add(b)
		p.Legend.Add(field, b)
		prev = b
	}

	if args.Horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}

	return savePlot(p, args.CommonArgs)
}
