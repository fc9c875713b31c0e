package main

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Row is one record of the caller-supplied data set. Field values may be
// numbers or strings depending on how the chart uses them.
type Row map[string]any

// CommonArgs holds the fields shared by every chart tool except mermaid.
type CommonArgs struct {
	SavePath string    `json:"save_path" jsonschema:"description=Absolute path to write the chart to. Supported formats: png jpg jpeg svg pdf,required"`
	Data     []Row     `json:"data" jsonschema:"description=Data rows e.g. [{\"x\": 1, \"y\": 2}],required,minItems=1"`
	Title    string    `json:"title,omitempty" jsonschema:"description=Chart title (default 图表标题)"`
	FigSize  []float64 `json:"figsize,omitempty" jsonschema:"description=Figure size in inches as [width, height],minItems=2,maxItems=2"`
	DPI      int       `json:"dpi,omitempty" jsonschema:"description=Resolution for raster output (default 100),minimum=1"`
	Theme    string    `json:"theme,omitempty" jsonschema:"description=Visual theme,enum=default,enum=classic,enum=dark_background,enum=seaborn,enum=ggplot"`
}

func (a *CommonArgs) applyDefaults(width, height float64) {
	if a.Title == "" {
		a.Title = "图表标题"
	}
	if len(a.FigSize) == 0 {
		a.FigSize = []float64{width, height}
	}
	if a.DPI == 0 {
		a.DPI = 100
	}
	if a.Theme == "" {
		a.Theme = "default"
	}
}

// FieldList accepts either a JSON array of field names or a single
// comma-separated string, matching how clients tend to pass y_fields.
type FieldList []string

func (f *FieldList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*f = out
		return nil
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	*f = arr
	return nil
}

// fieldNumber coerces a row value to a finite float64. JSON decoding gives
// float64 for numbers, but values relayed through other tools can arrive as
// ints or quoted numbers. Anything else, nil cells included, is not numeric.
func fieldNumber(row Row, field string) (float64, bool) {
	v, ok := row[field]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

func fieldString(row Row, field string) string {
	v, ok := row[field]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		b, _ := json.Marshal(v)
		return strings.Trim(string(b), `"`)
	}
}

// allNumeric reports whether every row carries a finite number under field.
func allNumeric(data []Row, field string) bool {
	for _, row := range data {
		if _, ok := fieldNumber(row, field); !ok {
			return false
		}
	}
	return true
}

func gridOn(g *bool) bool {
	return g == nil || *g
}

// RenderOutcome is the tool result payload for a successful render.
type RenderOutcome struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	SavePath string `json:"save_path,omitempty"`
}
