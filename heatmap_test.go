package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heatData() []Row {
	return []Row{
		{"day": "Mon", "hour": "09", "visits": 10.0},
		{"day": "Mon", "hour": "10", "visits": 20.0},
		{"day": "Tue", "hour": "09", "visits": 30.0},
		{"day": "Tue", "hour": "10", "visits": 40.0},
		{"day": "Tue", "hour": "10", "visits": 60.0},
	}
}

func TestColorMapByName(t *testing.T) {
	for _, name := range []string{"viridis", "plasma", "coolwarm", "hot", "magma", "RdBu"} {
		t.Run(name, func(t *testing.T) {
			cm, ok := colorMapByName(name)
			require.True(t, ok)
			cm.SetMin(0)
			cm.SetMax(1)
			pal := cm.Palette(16)
			assert.Len(t, pal.Colors(), 16)
		})
	}
	_, ok := colorMapByName("jet")
	assert.False(t, ok)
}

func TestCellLabelsUseThemeTextColor(t *testing.T) {
	env := testEnv(t)
	th, _ := themeByName("dark_background")
	g := pivotGrid(heatData(), "day", "hour", "visits", "mean")
	labels, err := cellLabels(env, g, ".1f", th)
	require.NoError(t, err)
	require.NotEmpty(t, labels.TextStyle)
	for _, st := range labels.TextStyle {
		assert.Equal(t, th.Text, st.Color)
	}
	assert.Equal(t, "50.0", labels.Labels[len(labels.Labels)-1])
}

func TestPivotGrid(t *testing.T) {
	tests := []struct {
		agg  string
		want float64 // Tue/10 cell, which has two samples
	}{
		{"mean", 50},
		{"sum", 100},
		{"min", 40},
		{"max", 60},
		{"count", 2},
	}
	for _, tt := range tests {
		t.Run(tt.agg, func(t *testing.T) {
			g := pivotGrid(heatData(), "day", "hour", "visits", tt.agg)
			c, r := g.Dims()
			assert.Equal(t, 2, c)
			assert.Equal(t, 2, r)
			assert.Equal(t, []string{"Mon", "Tue"}, g.cols)
			assert.Equal(t, []string{"09", "10"}, g.rows)
			assert.Equal(t, tt.want, g.Z(1, 1))
		})
	}
}

func TestPivotGridMissingCellsAreZero(t *testing.T) {
	data := []Row{
		{"a": "x", "b": "p", "v": 1.0},
		{"a": "y", "b": "q", "v": 2.0},
	}
	g := pivotGrid(data, "a", "b", "v", "sum")
	assert.Equal(t, 0.0, g.Z(1, 0))
	assert.Equal(t, 0.0, g.Z(0, 1))
}

func TestRenderHeatmapChart(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "heat.png")
	_, err := renderHeatmapChart(env, HeatmapChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: heatData(), Title: "访问热力图"},
		XField:     "day",
		YField:     "hour",
		ValueField: "visits",
	})
	require.NoError(t, err)
	fi, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestRenderHeatmapChartNoAnnotations(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "heat.svg")
	off := false
	_, err := renderHeatmapChart(env, HeatmapChartArgs{
		CommonArgs:  CommonArgs{SavePath: out, Data: heatData()},
		XField:      "day",
		YField:      "hour",
		ValueField:  "visits",
		Aggregation: "sum",
		ColorMap:    "magma",
		Annotate:    &off,
	})
	require.NoError(t, err)
}

func TestRenderHeatmapChartValidation(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "heat.png")

	_, err := renderHeatmapChart(env, HeatmapChartArgs{
		CommonArgs:  CommonArgs{SavePath: out, Data: heatData()},
		XField:      "day",
		YField:      "hour",
		ValueField:  "visits",
		Aggregation: "median",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregation")

	_, err = renderHeatmapChart(env, HeatmapChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: heatData()},
		XField:     "day",
		YField:     "hour",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value_field")
}
