package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

// testEnv builds a render environment that skips the system font walk.
func testEnv(t *testing.T) renderEnv {
	t.Helper()
	return renderEnv{
		fonts: &FontConfig{Plot: plot.DefaultFont},
	}
}

func TestFieldListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FieldList
	}{
		{"array", `["a","b"]`, FieldList{"a", "b"}},
		{"comma string", `"sales, profit"`, FieldList{"sales", "profit"}},
		{"single string", `"sales"`, FieldList{"sales"}},
		{"trailing comma", `"a,b,"`, FieldList{"a", "b"}},
		{"empty string", `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FieldList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &f))
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestFieldNumber(t *testing.T) {
	tests := []struct {
		name   string
		val    any
		want   float64
		wantOK bool
	}{
		{"float", 3.5, 3.5, true},
		{"int", 7, 7, true},
		{"quoted number", "42", 42, true},
		{"quoted float", " 3.5 ", 3.5, true},
		{"word", "abc", 0, false},
		{"quoted inf", "Inf", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fieldNumber(Row{"v": tt.val}, "v")
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
	_, ok := fieldNumber(Row{}, "missing")
	assert.False(t, ok)
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "Jan", fieldString(Row{"m": "Jan"}, "m"))
	assert.Equal(t, "3", fieldString(Row{"m": 3.0}, "m"))
	assert.Equal(t, "", fieldString(Row{}, "m"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"#1f77b4", false},
		{"#abc", false},
		{"#1f77b480", false},
		{"steelblue", false},
		{"RED", false},
		{"k", false},
		{"", true},
		{"#12345", true},
		{"notacolor", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := parseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeriesColorsCyclesPalette(t *testing.T) {
	th, _ := themeByName("default")
	got := seriesColors([]string{"#ff0000"}, th, 12)
	require.Len(t, got, 12)
	assert.Equal(t, got[0], mustHex("#ff0000"))
	// past the user colors, the palette cycles
	assert.Equal(t, th.Palette[1], got[1])
	assert.Equal(t, th.Palette[1], got[11])
}

func TestThemeNames(t *testing.T) {
	names := themeNames()
	assert.Contains(t, names, "default")
	assert.Contains(t, names, "dark_background")
	for _, n := range names {
		_, ok := themeByName(n)
		assert.True(t, ok)
	}
}
