// Package render draws dashboard panels as PNG images.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

// Image sizes.
var (
	ChartWidth  = 10 * vg.Inch
	ChartHeight = 5 * vg.Inch
	MapSize     = 6 * vg.Inch
)

// Chart draws a bar, line or scatter chart config as PNG into w.
func Chart(w io.Writer, cfg *model.ChartConfig) error {
	if cfg == nil || len(cfg.Series) == 0 {
		return fmt.Errorf("render: empty chart")
	}
	p := plot.New()
	p.Title.Text = cfg.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = cfg.XAxis
	p.Y.Label.Text = cfg.YAxis
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var err error
	switch cfg.ChartType {
	case "bar":
		err = addBars(p, cfg)
	case "line":
		err = addLines(p, cfg)
	case "scatter":
		err = addScatter(p, cfg)
	default:
		err = fmt.Errorf("render: unknown chart type %q", cfg.ChartType)
	}
	if err != nil {
		return err
	}
	if len(cfg.YTicks) > 0 {
		p.Y.Tick.Marker = constantTicks(cfg.YTicks)
	}
	return save(w, p, ChartWidth, ChartHeight)
}

func addBars(p *plot.Plot, cfg *model.ChartConfig) error {
	labels := make([]string, 0, len(cfg.Series))
	for i, s := range cfg.Series {
		if len(s.Points) == 0 {
			continue
		}
		pt := s.Points[0]
		bars, err := plotter.NewBarChart(plotter.Values{pt.Y}, vg.Points(18))
		if err != nil {
			return fmt.Errorf("bar %s: %w", s.Name, err)
		}
		bars.XMin = float64(i)
		bars.Color = parseHex(s.Color)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
		labels = append(labels, pt.Label)

		if pt.Text != "" {
			l, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    []plotter.XY{{X: float64(i), Y: pt.Y}},
				Labels: []string{pt.Text},
			})
			if err == nil {
				l.Offset = vg.Point{Y: vg.Points(4)}
				l.TextStyle[0].XAlign = draw.XCenter
				p.Add(l)
			}
		}
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0
	return nil
}

func addLines(p *plot.Plot, cfg *model.ChartConfig) error {
	years := map[float64]bool{}
	for _, s := range cfg.Series {
		xys := make(plotter.XYs, len(s.Points))
		var texts []string
		for i, pt := range s.Points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
			years[pt.X] = true
			if pt.Text != "" {
				texts = append(texts, pt.Text)
			}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("line %s: %w", s.Name, err)
		}
		c := parseHex(s.Color)
		line.Color = c
		line.Width = vg.Points(1.5)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)

		if len(texts) == len(xys) {
			l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
			if err == nil {
				l.Offset = vg.Point{Y: vg.Points(5)}
				p.Add(l)
			}
		}
	}

	ticks := make([]plot.Tick, 0, len(years))
	for y := range years {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	return nil
}

func addScatter(p *plot.Plot, cfg *model.ChartConfig) error {
	for _, s := range cfg.Series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		c := parseHex(s.Color)
		if s.Mode == "lines" {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("fit line: %w", err)
			}
			line.Color = c
			line.Width = vg.Points(2)
			p.Add(line)
			p.Legend.Add(s.Name, line)
			continue
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter %s: %w", s.Name, err)
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	return nil
}

// Choropleth fills each state with a shade of blue proportional to its value
// and labels it at its centroid.
func Choropleth(w io.Writer, ch *model.Choropleth) error {
	if ch == nil || ch.Features == nil || len(ch.Features.Features) == 0 {
		return fmt.Errorf("render: empty map")
	}
	p := plot.New()
	p.Title.Text = ch.Title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.HideAxes()

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range ch.Values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	var (
		centers plotter.XYs
		labels  []string
	)
	for _, f := range ch.Features.Features {
		state := f.ID
		fill := Blues(scale(ch.Values[state], lo, hi))
		for _, ring := range geo.Rings(f.Geometry) {
			xys := make(plotter.XYs, len(ring))
			for i, c := range ring {
				xys[i].X, xys[i].Y = c[0], c[1]
			}
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return fmt.Errorf("polygon %s: %w", state, err)
			}
			poly.Color = fill
			poly.LineStyle.Color = color.White
			poly.LineStyle.Width = vg.Points(0.5)
			p.Add(poly)
		}
		if x, y, ok := geo.LabelPoint(f.Geometry); ok {
			centers = append(centers, plotter.XY{X: x, Y: y})
			labels = append(labels, ch.Labels[state])
		}
	}
	if len(centers) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: centers, Labels: labels})
		if err == nil {
			for i := range l.TextStyle {
				l.TextStyle[i].Font.Size = vg.Points(7)
				l.TextStyle[i].XAlign = draw.XCenter
			}
			p.Add(l)
		}
	}
	if len(ch.Bounds) == 4 {
		p.X.Min, p.Y.Min, p.X.Max, p.Y.Max = ch.Bounds[0], ch.Bounds[1], ch.Bounds[2], ch.Bounds[3]
	}
	return save(w, p, MapSize, MapSize)
}

func save(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func constantTicks(ticks []model.Tick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		out[i] = plot.Tick{Value: t.Value, Label: t.Text}
	}
	return out
}

func scale(v, lo, hi float64) float64 {
	if hi <= lo {
		return 1
	}
	return (v - lo) / (hi - lo)
}

// Blues maps t in [0, 1] from light to dark blue.
func Blues(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	light := color.RGBA{R: 0xde, G: 0xeb, B: 0xf7, A: 0xff}
	dark := color.RGBA{R: 0x08, G: 0x30, B: 0x6b, A: 0xff}
	mix := func(a, b uint8) uint8 { return uint8(math.Round(float64(a) + t*(float64(b)-float64(a)))) }
	return color.RGBA{R: mix(light.R, dark.R), G: mix(light.G, dark.G), B: mix(light.B, dark.B), A: 0xff}
}

// parseHex reads "#RRGGBB", falling back to black.
func parseHex(s string) color.RGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
