package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Panel names used as keys in Dashboard.Errors.
const (
	PanelMap        = ChartMap
	PanelBar        = ChartBar
	PanelLines      = "lines"
	PanelRegression = "regression"
)

// DatasetSource yields the current indicator dataset.
type DatasetSource interface {
	Load() (*Dataset, error)
}

// Request is one dashboard render.
type Request struct {
	Selection  model.Selection
	ShowLabels bool
	Income     float64
	Education  float64
}

// Validate checks the predictor inputs.
func (r Request) Validate() error {
	return CheckInputs(r.Income, r.Education)
}

// NewRequest returns a request for sel with the default predictor inputs.
func NewRequest(sel model.Selection) Request {
	return Request{Selection: sel, Income: DefaultIncome, Education: DefaultEducation}
}

// Service runs selection -> filtered rows -> aggregates -> chart inputs.
// The only shared state is the dataset memo, the geometry cache and the
// joined table for the current dataset fingerprint.
type Service struct {
	data     DatasetSource
	provider geo.Provider
	cache    *geo.Cache
	aliases  util.AliasTable

	mu     sync.Mutex
	joined *joinedTable
}

type joinedTable struct {
	fingerprint string
	rows        []model.JoinedRecord
	report      JoinReport
}

func NewService(data DatasetSource, provider geo.Provider, cache *geo.Cache, aliases util.AliasTable) *Service {
	if cache == nil {
		cache = geo.Shared()
	}
	if aliases == nil {
		aliases = util.DefaultStateAliases
	}
	return &Service{data: data, provider: provider, cache: cache, aliases: aliases}
}

// Joined returns the dataset joined onto the state geometry.
// Callers must not modify the returned rows.
func (s *Service) Joined(ctx context.Context) (*Dataset, []model.JoinedRecord, JoinReport, error) {
	ds, err := s.data.Load()
	if err != nil {
		return nil, nil, JoinReport{}, fmt.Errorf("load dataset: %w", err)
	}
	geoms, err := s.cache.Get(ctx, s.provider)
	if err != nil {
		return nil, nil, JoinReport{}, fmt.Errorf("load geometry from %s: %w", s.provider.ID(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.joined != nil && s.joined.fingerprint == ds.Fingerprint {
		return ds, s.joined.rows, s.joined.report, nil
	}
	rows, report := Join(geoms, ds.Records, s.aliases)
	s.joined = &joinedTable{fingerprint: ds.Fingerprint, rows: rows, report: report}
	return ds, rows, report, nil
}

// Options lists the selector values.
func (s *Service) Options(ctx context.Context) (model.FilterOptions, error) {
	_, rows, _, err := s.Joined(ctx)
	if err != nil {
		return model.FilterOptions{}, err
	}
	return Options(rows), nil
}

// Build renders every panel for req. Only a dataset or geometry load failure
// is returned as an error; a failing panel is left nil and described in
// Dashboard.Errors.
func (s *Service) Build(ctx context.Context, req Request) (*model.Dashboard, error) {
	ds, rows, _, err := s.Joined(ctx)
	if err != nil {
		return nil, err
	}

	sel := req.Selection
	filtered := Filter(rows, sel)
	aggs := Aggregate(filtered)
	note := ""
	if sel.MultiYear() {
		note = ds.AverageNote()
	}

	d := &model.Dashboard{
		Selection:  sel,
		AvgNote:    note,
		Rows:       len(filtered),
		Aggregates: aggs,
		Metrics:    Summarize(aggs),
		Extremes:   FindExtremes(aggs),
	}

	panel(d, PanelMap, func() (err error) {
		d.Map, err = ChoroplethInput(filtered, aggs, note)
		return err
	})
	panel(d, PanelBar, func() (err error) {
		d.Bar, err = BarChart(aggs, note)
		return err
	})
	panel(d, PanelLines, func() (err error) {
		d.Lines, err = LineCharts(filtered, req.ShowLabels)
		return err
	})
	panel(d, PanelRegression, func() error {
		var err error
		d.Regression, err = regressionPanel(filtered, req.Income, req.Education)
		return err
	})
	return d, nil
}

// Predict fits the model on the selection and evaluates one input pair.
func (s *Service) Predict(ctx context.Context, sel model.Selection, income, education float64) (*model.Prediction, error) {
	_, rows, _, err := s.Joined(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckInputs(income, education); err != nil {
		return nil, err
	}
	m, err := FitRegression(Filter(rows, sel))
	if err != nil {
		return nil, err
	}
	p, err := Predict(m, income, education)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// regressionPanel keeps the scatter when the fit fails and reports the fit
// error alongside it.
func regressionPanel(rows []model.JoinedRecord, income, education float64) (*model.RegressionPanel, error) {
	m, fitErr := FitRegression(rows)
	scatter, err := ScatterChart(rows, m)
	if err != nil {
		return nil, err
	}
	rp := &model.RegressionPanel{Scatter: scatter, Note: RegressionNote}
	if fitErr != nil {
		return rp, fitErr
	}
	rp.Model = m
	rp.Lines = CoefficientLines(m)
	p, err := Predict(m, income, education)
	if err != nil {
		return rp, err
	}
	rp.Prediction = &p
	return rp, nil
}

func panel(d *model.Dashboard, name string, build func() error) {
	defer func() {
		if r := recover(); r != nil {
			recordPanelError(d, name, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := build(); err != nil {
		recordPanelError(d, name, err)
	}
}

func recordPanelError(d *model.Dashboard, name string, err error) {
	if d.Errors == nil {
		d.Errors = make(map[string]string)
	}
	d.Errors[name] = err.Error()
}
