package main

import (
	"bytes"
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// newThemedPlot builds a gonum plot with the theme and font configuration
// applied to every text element. Axis labels are set by the caller since
// they differ per chart kind.
func newThemedPlot(env renderEnv, args CommonArgs, th Theme, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = args.Title
	p.BackgroundColor = th.Background
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	applyTextStyle(&p.Title.TextStyle, env.fonts.Plot, th)
	applyTextStyle(&p.X.Label.TextStyle, env.fonts.Plot, th)
	applyTextStyle(&p.Y.Label.TextStyle, env.fonts.Plot, th)
	applyTextStyle(&p.X.Tick.Label, env.fonts.Plot, th)
	applyTextStyle(&p.Y.Tick.Label, env.fonts.Plot, th)
	applyTextStyle(&p.Legend.TextStyle, env.fonts.Plot, th)

	p.X.LineStyle.Color = th.Text
	p.Y.LineStyle.Color = th.Text
	p.X.Tick.LineStyle.Color = th.Text
	p.Y.Tick.LineStyle.Color = th.Text
	p.Legend.Top = true

	return p
}

// applyTextStyle swaps the typeface while keeping the element's default
// size and weight.
func applyTextStyle(style *text.Style, f font.Font, th Theme) {
	style.Font.Typeface = f.Typeface
	style.Font.Variant = f.Variant
	style.Color = th.Text
}

func addGrid(p *plot.Plot, th Theme) {
	g := plotter.NewGrid()
	g.Vertical.Color = th.Grid
	g.Horizontal.Color = th.Grid
	g.Vertical.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	g.Horizontal.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(g)
}

// categoryTicks places one labelled tick per category index.
func categoryTicks(labels []string) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	return plot.ConstantTicks(ticks)
}

// savePlot draws the plot into an in-memory canvas honoring figsize and dpi,
// then writes the requested file in one step. Nothing is written when
// drawing fails, so an error never leaves partial output behind.
func savePlot(p *plot.Plot, args CommonArgs) (string, error) {
	w := vg.Length(args.FigSize[0]) * vg.Inch
	h := vg.Length(args.FigSize[1]) * vg.Inch

	var buf bytes.Buffer
	switch ext := fileExt(args.SavePath); ext {
	case "png", "jpg", "jpeg":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(args.DPI))
		p.Draw(draw.New(c))
		var err error
		if ext == "png" {
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(&buf)
		} else {
			_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(&buf)
		}
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", ext, err)
		}
	case "svg":
		c := vgsvg.New(w, h)
		p.Draw(draw.New(c))
		if _, err := c.WriteTo(&buf); err != nil {
			return "", fmt.Errorf("encode svg: %w", err)
		}
	case "pdf":
		c := vgpdf.New(w, h)
		p.Draw(draw.New(c))
		if _, err := c.WriteTo(&buf); err != nil {
			return "", fmt.Errorf("encode pdf: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported format %q", ext)
	}

	if err := os.WriteFile(args.SavePath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", args.SavePath, err)
	}
	return args.SavePath, nil
}
