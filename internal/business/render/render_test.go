package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestChartTypes(t *testing.T) {
	series := []model.ChartSeries{
		{Name: "Bahia — 55,00%", Color: "#4F46E5", Points: []model.ChartPoint{{X: 2018, Y: 50, Label: "Bahia", Text: "50,00%"}, {X: 2019, Y: 60, Label: "Bahia", Text: "60,00%"}}},
		{Name: "São Paulo — 82,50%", Color: "#10B981", Points: []model.ChartPoint{{X: 2018, Y: 80, Label: "São Paulo"}, {X: 2019, Y: 85, Label: "São Paulo"}}},
	}
	ticks := []model.Tick{{Value: 50, Text: "50%"}, {Value: 80, Text: "80%"}}

	for _, typ := range []string{"bar", "line", "scatter"} {
		t.Run(typ, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &model.ChartConfig{ChartType: typ, Title: "Teste", Series: series, YTicks: ticks}
			if err := Chart(&buf, cfg); err != nil {
				t.Fatalf("Chart: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Fatal("output is not a PNG")
			}
		})
	}
}

func TestChartRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, nil); err == nil {
		t.Error("expected error for nil config")
	}
	cfg := &model.ChartConfig{ChartType: "pie", Series: []model.ChartSeries{{Points: []model.ChartPoint{{X: 1, Y: 1}}}}}
	if err := Chart(&buf, cfg); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestChoropleth(t *testing.T) {
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}})
	other := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{{2, 0}, {3, 0}, {3, 1}, {2, 1}, {2, 0}}})
	ch := &model.Choropleth{
		Title: "Mapa",
		Features: &geojson.FeatureCollection{Features: []*geojson.Feature{
			{ID: "Bahia", Geometry: poly},
			{ID: "Sergipe", Geometry: other},
		}},
		Values: map[string]float64{"Bahia": 55, "Sergipe": 70},
		Labels: map[string]string{"Bahia": "55,00%", "Sergipe": "70,00%"},
		Bounds: []float64{0, 0, 3, 1},
	}
	var buf bytes.Buffer
	if err := Choropleth(&buf, ch); err != nil {
		t.Fatalf("Choropleth: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatal("output is not a PNG")
	}
	if err := Choropleth(&buf, &model.Choropleth{}); err == nil {
		t.Error("expected error for empty map")
	}
}

func TestBluesAndHex(t *testing.T) {
	if Blues(0) != (color.RGBA{R: 0xde, G: 0xeb, B: 0xf7, A: 0xff}) {
		t.Errorf("Blues(0) = %v", Blues(0))
	}
	if Blues(2) != Blues(1) {
		t.Error("Blues must clamp above 1")
	}
	if parseHex("#4F46E5") != (color.RGBA{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff}) {
		t.Errorf("parseHex = %v", parseHex("#4F46E5"))
	}
	if parseHex("oops") != (color.RGBA{A: 0xff}) {
		t.Error("bad hex should fall back to black")
	}
}
