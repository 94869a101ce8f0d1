package dashboard

import (
	"math"
	"sort"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gonum.org/v1/plot"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Series colors, cycled by state order.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Chart keys, also used as panel names and PNG routes.
const (
	ChartMap     = "map"
	ChartBar     = "bar"
	ChartScatter = "scatter"
)

func colorAt(i int) string { return defaultColors[i%len(defaultColors)] }

// BarChart ranks states by internet access, lowest first. Each state is its
// own series so each legend entry pairs the state with its formatted value.
func BarChart(aggs []model.StateAggregate, note string) (*model.ChartConfig, error) {
	if len(aggs) == 0 {
		return nil, ErrEmptySelection
	}
	ranked := append([]model.StateAggregate(nil), aggs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Internet != ranked[j].Internet {
			return ranked[i].Internet < ranked[j].Internet
		}
		return ranked[i].State < ranked[j].State
	})

	cfg := &model.ChartConfig{
		Key:        ChartBar,
		ChartType:  "bar",
		Title:      titled("Percentual de acesso à internet por estado", note),
		XAxis:      "Estados",
		YAxis:      "Acesso Internet",
		Unit:       string(util.KindPercent),
		ShowLegend: true,
	}
	var lo, hi float64
	for i, a := range ranked {
		text := Internet.Format(a.Internet)
		cfg.Series = append(cfg.Series, model.ChartSeries{
			Name:  a.State + " — " + text,
			Color: colorAt(i),
			Points: []model.ChartPoint{{
				X: float64(i), Y: a.Internet, Label: a.State, Text: text,
				Hover: a.State + "<br>" + text,
			}},
		})
		if i == 0 || a.Internet < lo {
			lo = a.Internet
		}
		if i == 0 || a.Internet > hi {
			hi = a.Internet
		}
	}
	cfg.YTicks = Ticks(math.Min(0, lo), hi, Internet.Kind)
	return cfg, nil
}

// LineCharts builds one time series chart per indicator with a series per
// state. Point labels are filled only when showLabels is set.
func LineCharts(rows []model.JoinedRecord, showLabels bool) ([]model.ChartConfig, error) {
	byState := make(map[string][]model.IndicatorRecord)
	for _, r := range rows {
		if r.Indicator != nil {
			byState[r.Indicator.State] = append(byState[r.Indicator.State], *r.Indicator)
		}
	}
	if len(byState) == 0 {
		return nil, ErrEmptySelection
	}
	states := make([]string, 0, len(byState))
	for s, recs := range byState {
		states = append(states, s)
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].Year < recs[j].Year })
	}
	sort.Strings(states)

	mode := "lines+markers"
	if showLabels {
		mode = "lines+markers+text"
	}

	out := make([]model.ChartConfig, 0, len(Indicators))
	for _, ind := range Indicators {
		cfg := model.ChartConfig{
			Key:        ind.Key,
			ChartType:  "line",
			Title:      ind.Label,
			XAxis:      "Ano",
			YAxis:      "Valor",
			Unit:       string(ind.Kind),
			ShowLegend: true,
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for i, s := range states {
			series := model.ChartSeries{Name: s, Color: colorAt(i), Mode: mode}
			for _, rec := range byState[s] {
				v := ind.Of(rec)
				p := model.ChartPoint{X: float64(rec.Year), Y: v, Label: s, Hover: s + "<br>" + ind.Format(v)}
				if showLabels {
					p.Text = ind.Format(v)
				}
				series.Points = append(series.Points, p)
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
			cfg.Series = append(cfg.Series, series)
		}
		cfg.YTicks = Ticks(lo, hi, ind.Kind)
		out = append(out, cfg)
	}
	return out, nil
}

// ScatterChart plots income against internet access per state and overlays
// the fitted line when m is not nil.
func ScatterChart(rows []model.JoinedRecord, m *model.RegressionModel) (*model.ChartConfig, error) {
	recs := usable(rows)
	if len(recs) == 0 {
		return nil, ErrEmptySelection
	}
	byState := make(map[string][]model.IndicatorRecord)
	var states []string
	for _, r := range recs {
		if _, ok := byState[r.State]; !ok {
			states = append(states, r.State)
		}
		byState[r.State] = append(byState[r.State], r)
	}
	sort.Strings(states)

	cfg := &model.ChartConfig{
		Key:        ChartScatter,
		ChartType:  "scatter",
		Title:      "Renda Média Familiar x Acesso a Internet",
		XAxis:      "Renda Média Familiar",
		YAxis:      "Acesso a Internet",
		Unit:       string(util.KindPercent),
		ShowLegend: true,
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range states {
		series := model.ChartSeries{Name: s, Color: colorAt(i), Mode: "markers"}
		for _, r := range byState[s] {
			series.Points = append(series.Points, model.ChartPoint{
				X: r.Income, Y: r.Internet, Label: s,
				Hover: "Estado: " + s +
					"<br>Renda Média: " + Income.Format(r.Income) +
					"<br>Acesso à Internet: " + Internet.Format(r.Internet) +
					"<br>Taxa de Alfabetização: " + Literacy.Format(r.Literacy) +
					"<br>Ensino Superior: " + HigherEducation.Format(r.HigherEducation),
			})
			lo, hi = math.Min(lo, r.Internet), math.Max(hi, r.Internet)
		}
		cfg.Series = append(cfg.Series, series)
	}
	if m != nil {
		cfg.Series = append(cfg.Series, model.ChartSeries{
			Name:   "Ajuste linear",
			Color:  "#111827",
			Mode:   "lines",
			Points: FittedLine(m, rows),
		})
	}
	cfg.YTicks = Ticks(lo, hi, util.KindPercent)
	return cfg, nil
}

// ChoroplethInput colors each aggregated state by its mean internet access.
// The boundary comes from the first row seen for the state.
func ChoroplethInput(rows []model.JoinedRecord, aggs []model.StateAggregate, note string) (*model.Choropleth, error) {
	if len(aggs) == 0 {
		return nil, ErrEmptySelection
	}
	shapes := make(map[string]geom.T)
	for _, r := range rows {
		if r.Indicator == nil || r.Geometry == nil {
			continue
		}
		if _, ok := shapes[r.Indicator.State]; !ok {
			shapes[r.Indicator.State] = r.Geometry
		}
	}

	ch := &model.Choropleth{
		Title:    titled("Mapa de acesso à Internet", note),
		Features: &geojson.FeatureCollection{},
		Values:   make(map[string]float64, len(aggs)),
		Labels:   make(map[string]string, len(aggs)),
	}
	var drawn []geom.T
	for _, a := range aggs {
		g, ok := shapes[a.State]
		if !ok {
			continue
		}
		label := Internet.Format(a.Internet)
		ch.Values[a.State] = a.Internet
		ch.Labels[a.State] = label
		ch.Features.Features = append(ch.Features.Features, &geojson.Feature{
			ID:       a.State,
			Geometry: g,
			Properties: map[string]interface{}{
				"ESTADO":          a.State,
				"name_region":     a.Region,
				"value":           a.Internet,
				"Acesso Internet": label,
			},
		})
		drawn = append(drawn, g)
	}
	if len(drawn) == 0 {
		return nil, ErrEmptySelection
	}
	ch.Bounds = geo.Bounds(drawn)
	return ch, nil
}

// Ticks picks axis ticks for [lo, hi] and labels them in pt-BR.
func Ticks(lo, hi float64, kind util.Kind) []model.Tick {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	var out []model.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.Label == "" {
			continue
		}
		decimals := 0
		if t.Value != math.Trunc(t.Value) {
			decimals = 2
		}
		out = append(out, model.Tick{Value: t.Value, Text: util.DisplayBR(t.Value, kind, decimals)})
	}
	return out
}
