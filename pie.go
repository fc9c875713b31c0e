package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

type PieChartArgs struct {
	CommonArgs
	NameField     string    `json:"name_field" jsonschema:"description=Field holding the slice names,required"`
	ValueField    string    `json:"value_field" jsonschema:"description=Numeric field holding the slice sizes,required"`
	Colors        []string  `json:"colors,omitempty" jsonschema:"description=One color per slice as hex or name"`
	AutoPct       string    `json:"autopct,omitempty" jsonschema:"description=Percentage format appended to each label (default %1.1f%%)"`
	Explode       []float64 `json:"explode,omitempty" jsonschema:"description=Per-slice offset fractions each >= 0 (accepted for compatibility)"`
	StartAngle    float64   `json:"startangle,omitempty" jsonschema:"description=Starting angle in degrees (default 90, accepted for compatibility)"`
	Shadow        bool      `json:"shadow,omitempty" jsonschema:"description=Drop shadow (accepted for compatibility)"`
	LabelDistance float64   `json:"labeldistance,omitempty" jsonschema:"description=Label distance factor (default 1.1, accepted for compatibility)"`
}

func (a *PieChartArgs) applyDefaults() {
	a.CommonArgs.applyDefaults(8, 8)
	if a.AutoPct == "" {
		a.AutoPct = "%1.1f%%"
	}
	if a.StartAngle == 0 {
		a.StartAngle = 90
	}
	if a.LabelDistance == 0 {
		a.LabelDistance = 1.1
	}
}

func validatePieChart(args *PieChartArgs, env renderEnv) error {
	var v ValidationErrors
	validateCommon(&v, &args.CommonArgs, pieFormats, env)
	if args.NameField == "" {
		v.add("name_field", "required")
	}
	if args.ValueField == "" {
		v.add("value_field", "required")
	}
	checkDataFields(&v, args.Data, "name_field", args.NameField)
	checkDataFields(&v, args.Data, "value_field", args.ValueField)
	checkNumericField(&v, args.Data, "value_field", args.ValueField)
	checkColors(&v, "colors", args.Colors)

	// per-slice offsets are independent; they may sum to anything
	for i, e := range args.Explode {
		if e < 0 {
			v.add("explode", "offsets must be >= 0, entry %d is %g", i, e)
		}
	}
	if args.LabelDistance < 0 {
		v.add("labeldistance", "must be >= 0, got %g", args.LabelDistance)
	}

	var sum float64
	for i, row := range args.Data {
		val, ok := fieldNumber(row, args.ValueField)
		if !ok {
			continue
		}
		if val < 0 {
			v.add("value_field", "slice values must be >= 0, row %d is %g", i, val)
		}
		sum += val
	}
	if len(args.Data) > 0 && sum <= 0 {
		v.add("value_field", "slice values must sum to more than zero")
	}
	return v.errOrNil()
}

// pctLabel renders the autopct format against a percentage. Formats without
// a float verb fall back to the matplotlib default.
func pctLabel(autopct string, pct float64) string {
	if !strings.Contains(autopct, "%") || !strings.ContainsAny(autopct, "efg") {
		autopct = "%1.1f%%"
	}
	return fmt.Sprintf(autopct, pct)
}

func renderPieChart(env renderEnv, args PieChartArgs) (string, error) {
	args.applyDefaults()
	if err := validatePieChart(&args, env); err != nil {
		return "", err
	}

	th, _ := themeByName(args.Theme)
	colors := seriesColors(args.Colors, th, len(args.Data))

	var total float64
	for _, row := range args.Data {
		v, _ := fieldNumber(row, args.ValueField)
		total += v
	}

	fnt := env.fonts.TrueType
	if fnt == nil {
		var err error
		fnt, err = chart.GetDefaultFont()
		if err != nil {
			return "", fmt.Errorf("load default font: %w", err)
		}
	}

	values := make([]chart.Value, 0, len(args.Data))
	for i, row := range args.Data {
		v, _ := fieldNumber(row, args.ValueField)
		if v == 0 {
			continue
		}
		label := fieldString(row, args.NameField)
		label += " " + pctLabel(args.AutoPct, v/total*100)
		values = append(values, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{
				FillColor: drawingColor(colors[i]),
				FontColor: drawingColor(th.Text),
				FontSize:  12,
				Font:      fnt,
			},
		})
	}

	pc := chart.PieChart{
		Title: args.Title,
		TitleStyle: chart.Style{
			FontColor: drawingColor(th.Text),
			FontSize:  18,
			Font:      fnt,
		},
		Width:      int(args.FigSize[0] * float64(args.DPI)),
		Height:     int(args.FigSize[1] * float64(args.DPI)),
		Background: chart.Style{FillColor: drawingColor(th.Background)},
		Canvas:     chart.Style{FillColor: drawingColor(th.Background)},
		Font:       fnt,
		Values:     values,
	}

	var buf bytes.Buffer
	renderas := chart.PNG
	if fileExt(args.SavePath) == "svg" {
		renderas = chart.SVG
	}
	if err := pc.Render(renderas, &buf); err != nil {
		return "", fmt.Errorf("render pie chart: %w", err)
	}
	if err := os.WriteFile(args.SavePath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", args.SavePath, err)
	}
	return args.SavePath, nil
}
