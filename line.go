package main

import (
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type LineChartArgs struct {
	CommonArgs
	XField     string    `json:"x_field" jsonschema:"description=Field holding the x values,required"`
	YFields    FieldList `json:"y_fields" jsonschema:"description=Field(s) holding the y values as an array or comma-separated string,required"`
	XLabel     string    `json:"x_label,omitempty" jsonschema:"description=X axis label (defaults to x_field)"`
	YLabel     string    `json:"y_label,omitempty" jsonschema:"description=Y axis label"`
	Colors     []string  `json:"colors,omitempty" jsonschema:"description=One color per series as hex or name"`
	LineStyles []string  `json:"line_styles,omitempty" jsonschema:"description=One style per series: - -- -. : solid dashed dashdot dotted or None"`
	Markers    []string  `json:"markers,omitempty" jsonschema:"description=One marker per series: o s ^ D x * + or none"`
	LineWidths []float64 `json:"line_widths,omitempty" jsonschema:"description=One width in points per series (default 2)"`
	Grid       *bool     `json:"grid,omitempty" jsonschema:"description=Draw grid lines (default true)"`
}

func (a *LineChartArgs) applyDefaults() {
	a.CommonArgs.applyDefaults(10, 6)
	if a.XLabel == "" {
		a.XLabel = a.XField
	}
	if a.YLabel == "" && len(a.YFields) == 1 {
		a.YLabel = a.YFields[0]
	}
}

// line styles accept both the shorthand and the spelled-out matplotlib
// names; "None" and blank mean markers only.
var lineStyleNames = map[string]string{
	"solid": "-", "dashed": "--", "dashdot": "-.", "dotted": ":",
	"-": "-", "--": "--", "-.": "-.", ":": ":",
	"none": "none", "": "none", " ": "none",
}

var lineDashes = map[string][]vg.Length{
	"-":  nil,
	"--": {vg.Points(6), vg.Points(3)},
	"-.": {vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)},
	":":  {vg.Points(1), vg.Points(2)},
}

func normalizeLineStyle(s string) (string, bool) {
	if canon, ok := lineStyleNames[s]; ok {
		return canon, true
	}
	canon, ok := lineStyleNames[strings.ToLower(s)]
	return canon, ok
}

var markerGlyphs = map[string]draw.GlyphDrawer{
	"o": draw.CircleGlyph{},
	"s": draw.BoxGlyph{},
	"^": draw.PyramidGlyph{},
	"D": draw.BoxGlyph{},
	"x": draw.CrossGlyph{},
	"*": draw.CrossGlyph{},
	"+": draw.PlusGlyph{},
}

func markerAllowed(m string) bool {
	if _, ok := markerGlyphs[m]; ok {
		return true
	}
	switch strings.ToLower(m) {
	case "", "none":
		return true
	}
	return false
}

// pick returns the i-th per-series option, or def past the end of the list.
func pick[T any](list []T, i int, def T) T {
	if i < len(list) {
		return list[i]
	}
	return def
}

func validateLineChart(args *LineChartArgs, env renderEnv) error {
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
	for _, s := range args.LineStyles {
		if _, ok := normalizeLineStyle(s); !ok {
			v.add("line_styles", "unknown style %q, supported: -, --, -., :, solid, dashed, dashdot, dotted, None", s)
		}
	}
	for _, m := range args.Markers {
		if !markerAllowed(m) {
			v.add("markers", "unknown marker %q, supported: o, s, ^, D, x, *, +, none", m)
		}
	}
	for _, w := range args.LineWidths {
		if w <= 0 {
			v.add("line_widths", "widths must be > 0, got %g", w)
		}
	}
	return v.errOrNil()
}

func renderLineChart(env renderEnv, args LineChartArgs) (string, error) {
	args.applyDefaults()
	if err := validateLineChart(&args, env); err != nil {
		return "", err
	}

	th, _ := themeByName(args.Theme)
	p := newThemedPlot(env, args.CommonArgs, th, args.XLabel, args.YLabel)
	if gridOn(args.Grid) {
		addGrid(p, th)
	}

	// string x values become evenly spaced categories
	numericX := allNumeric(args.Data, args.XField)
	if !numericX {
		labels := make([]string, len(args.Data))
		for i, row := range args.Data {
			labels[i] = fieldString(row, args.XField)
		}
		p.X.Tick.Marker = categoryTicks(labels)
	}

	colors := seriesColors(args.Colors, th, len(args.YFields))
	for si, field := range args.YFields {
		xys := make(plotter.XYs, len(args.Data))
		for i, row := range args.Data {
			if numericX {
				xys[i].X, _ = fieldNumber(row, args.XField)
			} else {
				xys[i].X = float64(i)
			}
			xys[i].Y, _ = fieldNumber(row, field)
		}

		style, _ := normalizeLineStyle(pick(args.LineStyles, si, "-"))
		if style != "none" {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return "", err
			}
			l.LineStyle.Width = vg.Points(pick(args.LineWidths, si, 2))
			l.LineStyle.Color = colors[si]
			l.LineStyle.Dashes = lineDashes[style]
			p.Add(l)
			p.Legend.Add(field, l)
		}

		if glyph, ok := markerGlyphs[pick(args.Markers, si, "o")]; ok {
			pts, err := plotter.NewScatter(xys)
			if err != nil {
				return "", err
			}
			pts.GlyphStyle = draw.GlyphStyle{
				Color:  colors[si],
				Radius: vg.Points(3),
				Shape:  glyph,
			}
			p.Add(pts)
			if style == "none" {
				p.Legend.Add(field, pts)
			}
		}
	}

	return savePlot(p, args.CommonArgs)
}
