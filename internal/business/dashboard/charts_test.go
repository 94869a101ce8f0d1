package dashboard

import (
	"strings"
	"testing"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

func TestBarChartAscendingWithLegend(t *testing.T) {
	cfg, err := BarChart(Aggregate(sampleJoined()), "(média de 2018 a 2019)")
	if err != nil {
		t.Fatalf("BarChart: %v", err)
	}
	if cfg.Title != "Percentual de acesso à internet por estado (média de 2018 a 2019)" {
		t.Errorf("Title = %q", cfg.Title)
	}
	names := []string{"Bahia — 55,00%", "Espírito Santo — 72,00%", "São Paulo — 82,50%"}
	if len(cfg.Series) != len(names) {
		t.Fatalf("expected %d series, got %d", len(names), len(cfg.Series))
	}
	for i, want := range names {
		if cfg.Series[i].Name != want {
			t.Errorf("series %d = %q, want %q", i, cfg.Series[i].Name, want)
		}
	}
	if len(cfg.YTicks) == 0 || !strings.HasSuffix(cfg.YTicks[0].Text, "%") {
		t.Errorf("expected percent ticks, got %v", cfg.YTicks)
	}
}

func TestLineChartsLabelsToggle(t *testing.T) {
	rows := sampleJoined()
	plain, err := LineCharts(rows, false)
	if err != nil {
		t.Fatalf("LineCharts: %v", err)
	}
	if len(plain) != 4 {
		t.Fatalf("expected 4 charts, got %d", len(plain))
	}
	income := plain[3]
	if income.Title != "Renda Média Domiciliar (R$)" || len(income.Series) != 3 {
		t.Fatalf("unexpected income chart %+v", income)
	}
	pts := income.Series[0].Points
	if len(pts) != 2 || pts[0].X != 2018 || pts[1].X != 2019 || pts[0].Text != "" {
		t.Errorf("unexpected points %+v", pts)
	}
	if !strings.Contains(pts[0].Hover, "R$ 2.000,00") {
		t.Errorf("hover = %q", pts[0].Hover)
	}
	for _, tick := range income.YTicks {
		if !strings.HasPrefix(tick.Text, "R$ ") {
			t.Errorf("income tick %q should be currency", tick.Text)
		}
	}

	labelled, err := LineCharts(rows, true)
	if err != nil {
		t.Fatal(err)
	}
	p := labelled[0].Series[0].Points[0]
	if p.Text != "50,00%" || labelled[0].Series[0].Mode != "lines+markers+text" {
		t.Errorf("labelled point = %+v mode %s", p, labelled[0].Series[0].Mode)
	}
}

func TestScatterChartWithFit(t *testing.T) {
	rows := sampleJoined()
	m, err := FitRegression(rows)
	if err != nil {
		t.Fatalf("FitRegression: %v", err)
	}
	cfg, err := ScatterChart(rows, m)
	if err != nil {
		t.Fatalf("ScatterChart: %v", err)
	}
	last := cfg.Series[len(cfg.Series)-1]
	if last.Name != "Ajuste linear" || last.Mode != "lines" || len(last.Points) != 6 {
		t.Fatalf("unexpected fit series %+v", last)
	}
	if len(cfg.Series) != 4 {
		t.Errorf("expected 3 states plus the fit, got %d series", len(cfg.Series))
	}

	noFit, err := ScatterChart(rows, nil)
	if err != nil || len(noFit.Series) != 3 {
		t.Fatalf("scatter without model: %v, %d series", err, len(noFit.Series))
	}
}

func TestChoroplethInput(t *testing.T) {
	rows := Filter(sampleJoined(), model.Selection{Region: "Sudeste"})
	ch, err := ChoroplethInput(rows, Aggregate(rows), "")
	if err != nil {
		t.Fatalf("ChoroplethInput: %v", err)
	}
	if ch.Title != "Mapa de acesso à Internet" {
		t.Errorf("Title = %q", ch.Title)
	}
	if len(ch.Features.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(ch.Features.Features))
	}
	if ch.Labels["Espírito Santo"] != "72,00%" || ch.Values["São Paulo"] != 82.5 {
		t.Errorf("values/labels = %v %v", ch.Values, ch.Labels)
	}
	want := []float64{2, 0, 5, 1}
	for i := range want {
		if ch.Bounds[i] != want[i] {
			t.Fatalf("Bounds = %v, want %v", ch.Bounds, want)
		}
	}
}

func TestChartsOnEmptySelection(t *testing.T) {
	if _, err := BarChart(nil, ""); err != ErrEmptySelection {
		t.Errorf("BarChart: %v", err)
	}
	if _, err := LineCharts(nil, false); err != ErrEmptySelection {
		t.Errorf("LineCharts: %v", err)
	}
	if _, err := ScatterChart(nil, nil); err != ErrEmptySelection {
		t.Errorf("ScatterChart: %v", err)
	}
	if _, err := ChoroplethInput(nil, nil, ""); err != ErrEmptySelection {
		t.Errorf("ChoroplethInput: %v", err)
	}
}

func TestTicks(t *testing.T) {
	ticks := Ticks(0, 100, util.KindPercent)
	if len(ticks) == 0 {
		t.Fatal("expected ticks")
	}
	for _, tk := range ticks {
		if tk.Value < 0 || tk.Value > 100 {
			t.Errorf("tick %v outside range", tk.Value)
		}
		if !strings.HasSuffix(tk.Text, "%") || strings.Contains(tk.Text, ".") {
			t.Errorf("tick text %q", tk.Text)
		}
	}
	if flat := Ticks(5, 5, util.KindPlain); len(flat) == 0 {
		t.Error("flat range should still produce ticks")
	}
}
