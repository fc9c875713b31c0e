package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBarChartGrouped(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "bar.png")
	_, err := renderBarChart(env, BarChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: lineData()},
		XField:     "month",
		YFields:    FieldList{"sales", "profit"},
		Colors:     []string{"steelblue", "#ff7f0e"},
	})
	require.NoError(t, err)
	fi, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestRenderBarChartStacked(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "stacked.svg")
	_, err := renderBarChart(env, BarChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: lineData(), Theme: "dark_background"},
		XField:     "month",
		YFields:    FieldList{"sales", "profit"},
		Stacked:    true,
	})
	require.NoError(t, err)
}

func TestRenderBarChartHorizontal(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "hbar.png")
	_, err := renderBarChart(env, BarChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: lineData()},
		XField:     "month",
		YFields:    FieldList{"sales"},
		Horizontal: true,
	})
	require.NoError(t, err)
}

func TestRenderBarChartValidation(t *testing.T) {
	env := testEnv(t)
	out := filepath.Join(t.TempDir(), "bar.png")

	_, err := renderBarChart(env, BarChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: lineData()},
		XField:     "month",
		YFields:    FieldList{"sales"},
		BarWidth:   1.5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bar_width")

	_, err = renderBarChart(env, BarChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: lineData()},
		XField:     "month",
		YFields:    FieldList{"sales"},
		EdgeColor:  "notacolor",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edge_color")

	// string-valued series are rejected, not coerced to zero
	data := []Row{{"month": "Jan", "sales": "many"}}
	_, err = renderBarChart(env, BarChartArgs{
		CommonArgs: CommonArgs{SavePath: out, Data: data},
		XField:     "month",
		YFields:    FieldList{"sales"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "y_fields")
}
