package model

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// IndicatorRecord is one row of the input file: a state in a given year.
type IndicatorRecord struct {
	Year            int     `json:"year"`
	State           string  `json:"state"`
	Internet        float64 `json:"internet"`        // PERCENTUAL_COM_ACESSO_INTERNET
	Literacy        float64 `json:"literacy"`        // TAXA_ALFABETIZACAO
	HigherEducation float64 `json:"higherEducation"` // PERCENTUAL_COM_ENSINO_SUPERIOR
	Income          float64 `json:"income"`          // RENDA_MEDIA_DOMICILIAR
}

// StateGeometry is a state boundary as delivered by a geometry provider.
type StateGeometry struct {
	Name     string `json:"name_state"`
	Region   string `json:"name_region"`
	Code     string `json:"code_state,omitempty"`
	Abbrev   string `json:"abbrev_state,omitempty"`
	Geometry geom.T `json:"-"`
}

// StateGeometryDoc is the Firestore representation of a StateGeometry.
// The boundary is kept as a GeoJSON geometry string.
type StateGeometryDoc struct {
	Name    string `json:"name_state" firestore:"name_state"`
	Region  string `json:"name_region" firestore:"name_region"`
	Code    string `json:"code_state,omitempty" firestore:"code_state,omitempty"`
	Abbrev  string `json:"abbrev_state,omitempty" firestore:"abbrev_state,omitempty"`
	GeoJSON string `json:"geojson" firestore:"geojson"`
	Source  string `json:"source,omitempty" firestore:"source,omitempty"`
}

// JoinedRecord is a geometry row augmented with the indicator row of one year.
// Indicator is nil when the state has no data in the indicator file.
type JoinedRecord struct {
	Key       string           `json:"key"`
	GeoName   string           `json:"geoName"`
	Region    string           `json:"region"`
	Geometry  geom.T           `json:"-"`
	Indicator *IndicatorRecord `json:"indicator,omitempty"`
}

// State returns the indicator-side state label, or "" for geometry-only rows.
func (r JoinedRecord) State() string {
	if r.Indicator == nil {
		return ""
	}
	return r.Indicator.State
}

// Selection holds the user's filter choices. Empty fields mean "all".
type Selection struct {
	Region string `json:"region,omitempty"`
	Year   int    `json:"year,omitempty"`
	State  string `json:"state,omitempty"`
}

// MultiYear reports whether the dashboard shows averages over several years.
func (s Selection) MultiYear() bool {
	return s.Year == 0
}

// StateAggregate holds per-state means over the filtered years.
type StateAggregate struct {
	State           string  `json:"state"`
	Region          string  `json:"region"`
	Years           int     `json:"years"`
	Internet        float64 `json:"internet"`
	Literacy        float64 `json:"literacy"`
	HigherEducation float64 `json:"higherEducation"`
	Income          float64 `json:"income"`
}

// Extreme is the best and worst state for one indicator.
type Extreme struct {
	Indicator string  `json:"indicator"`
	MaxState  string  `json:"maxState"`
	MaxValue  float64 `json:"maxValue"`
	MaxLabel  string  `json:"maxLabel"`
	MinState  string  `json:"minState"`
	MinValue  float64 `json:"minValue"`
	MinLabel  string  `json:"minLabel"`
}

// Metric is a headline number with its pt-BR display string.
type Metric struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
	Valid bool    `json:"valid"`
}

// RegressionModel is an OLS fit of internet access on income and higher education.
type RegressionModel struct {
	Intercept     float64 `json:"intercept"`
	CoefIncome    float64 `json:"coefIncome"`
	CoefEducation float64 `json:"coefEducation"`
	Samples       int     `json:"samples"`
}

// Predict evaluates the fitted linear formula. No clipping is applied.
func (m RegressionModel) Predict(income, education float64) float64 {
	return m.Intercept + m.CoefIncome*income + m.CoefEducation*education
}

// ChartPoint is a single labelled value.
type ChartPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
	Text  string  `json:"text,omitempty"`
	Hover string  `json:"hover,omitempty"`
}

// ChartSeries is one named trace.
type ChartSeries struct {
	Name   string       `json:"name"`
	Color  string       `json:"color,omitempty"`
	Mode   string       `json:"mode,omitempty"`
	Points []ChartPoint `json:"points"`
}

// Tick is an axis tick with pt-BR text.
type Tick struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// ChartConfig describes a chart for the presentation layer.
type ChartConfig struct {
	Key        string        `json:"key"`
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Unit       string        `json:"unit,omitempty"`
	YTicks     []Tick        `json:"yTicks,omitempty"`
	Series     []ChartSeries `json:"series"`
	ShowLegend bool          `json:"showLegend"`
}

// Choropleth is the map panel: one feature per state with its value.
type Choropleth struct {
	Title    string                     `json:"title"`
	Features *geojson.FeatureCollection `json:"features"`
	Values   map[string]float64         `json:"values"`
	Labels   map[string]string          `json:"labels"`
	Bounds   []float64                  `json:"bounds,omitempty"` // minX, minY, maxX, maxY
}

// Prediction is the predictor panel.
type Prediction struct {
	Income    float64 `json:"income"`
	Education float64 `json:"education"`
	Value     float64 `json:"value"`
	Text      string  `json:"text"`
}

// RegressionPanel holds the fitted model and its text lines. Model and
// Prediction are nil when the fit failed; the scatter is still drawn.
type RegressionPanel struct {
	Model      *RegressionModel `json:"model,omitempty"`
	Lines      []string         `json:"lines,omitempty"`
	Prediction *Prediction      `json:"prediction,omitempty"`
	Scatter    *ChartConfig     `json:"scatter,omitempty"`
	Note       string           `json:"note"`
}

// Dashboard is everything one render pass produces.
// Panels that failed are nil and have an entry in Errors.
type Dashboard struct {
	Selection  Selection         `json:"selection"`
	AvgNote    string            `json:"avgNote,omitempty"`
	Rows       int               `json:"rows"`
	Metrics    []Metric          `json:"metrics"`
	Extremes   []Extreme         `json:"extremes"`
	Aggregates []StateAggregate  `json:"aggregates"`
	Map        *Choropleth       `json:"map,omitempty"`
	Bar        *ChartConfig      `json:"bar,omitempty"`
	Lines      []ChartConfig     `json:"lines,omitempty"`
	Regression *RegressionPanel  `json:"regression,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// FilterOptions are the values offered by the selectors.
type FilterOptions struct {
	Regions []string `json:"regions"`
	Years   []int    `json:"years"`
	States  []string `json:"states"`
}
