package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/anderson-asouza/dash-educacao-internet-renda/internal/business/geo"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

type staticDataset struct {
	ds  *Dataset
	err error
}

func (s staticDataset) Load() (*Dataset, error) { return s.ds, s.err }

type staticProvider struct {
	geoms []model.StateGeometry
	err   error
}

func (p staticProvider) ID() string { return "static" }

func (p staticProvider) Fetch(ctx context.Context) ([]model.StateGeometry, error) {
	return p.geoms, p.err
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	ds := &Dataset{Records: sampleRecords(), MinYear: 2018, MaxYear: 2019, Fingerprint: "fp"}
	return NewService(staticDataset{ds: ds}, staticProvider{geoms: sampleGeometry()}, geo.NewCache(), util.DefaultStateAliases)
}

func TestBuildAllYears(t *testing.T) {
	svc := newTestService(t)
	d, err := svc.Build(context.Background(), NewRequest(model.Selection{}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.AvgNote != "(média de 2018 a 2019)" {
		t.Errorf("AvgNote = %q", d.AvgNote)
	}
	if d.Rows != 7 || len(d.Aggregates) != 3 || len(d.Metrics) != 4 || len(d.Extremes) != 4 {
		t.Fatalf("unexpected dashboard sizes: rows=%d aggs=%d", d.Rows, len(d.Aggregates))
	}
	if d.Map == nil || d.Bar == nil || len(d.Lines) != 4 || d.Regression == nil {
		t.Fatalf("missing panels, errors: %v", d.Errors)
	}
	if len(d.Errors) != 0 {
		t.Errorf("unexpected panel errors: %v", d.Errors)
	}
	if d.Regression.Prediction == nil || d.Regression.Prediction.Income != DefaultIncome || len(d.Regression.Lines) != 3 {
		t.Errorf("unexpected regression panel %+v", d.Regression)
	}
}

func TestBuildSingleYearHasNoNote(t *testing.T) {
	svc := newTestService(t)
	d, err := svc.Build(context.Background(), NewRequest(model.Selection{Year: 2018}))
	if err != nil {
		t.Fatal(err)
	}
	if d.AvgNote != "" || d.Bar.Title != "Percentual de acesso à internet por estado" {
		t.Errorf("single year should not carry the note: %q / %q", d.AvgNote, d.Bar.Title)
	}
}

func TestBuildIsolatesPanelFailures(t *testing.T) {
	svc := newTestService(t)
	// Two rows of one state: map, bar and lines work, the fit cannot.
	d, err := svc.Build(context.Background(), NewRequest(model.Selection{State: "Bahia"}))
	if err != nil {
		t.Fatal(err)
	}
	if d.Map == nil || d.Bar == nil || len(d.Lines) != 4 {
		t.Fatalf("healthy panels were lost: %v", d.Errors)
	}
	if d.Errors[PanelRegression] != ErrInsufficientData.Error() {
		t.Fatalf("expected regression error, got %v", d.Errors)
	}
	if d.Regression == nil || d.Regression.Scatter == nil || d.Regression.Model != nil {
		t.Errorf("scatter should survive a failed fit: %+v", d.Regression)
	}
}

func TestBuildEmptySelection(t *testing.T) {
	svc := newTestService(t)
	d, err := svc.Build(context.Background(), NewRequest(model.Selection{Region: "Norte", Year: 2019}))
	if err != nil {
		t.Fatalf("empty selection must not fail the build: %v", err)
	}
	if len(d.Aggregates) != 0 || d.Extremes != nil {
		t.Errorf("expected empty tables, got %+v", d)
	}
	for _, name := range []string{PanelMap, PanelBar, PanelLines, PanelRegression} {
		if d.Errors[name] == "" {
			t.Errorf("panel %s should report the empty selection", name)
		}
	}
}

func TestBuildSourceFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(staticDataset{err: boom}, staticProvider{}, geo.NewCache(), nil)
	if _, err := svc.Build(context.Background(), NewRequest(model.Selection{})); !errors.Is(err, boom) {
		t.Fatalf("expected dataset error, got %v", err)
	}

	ds := &Dataset{Records: sampleRecords(), Fingerprint: "fp"}
	svc = NewService(staticDataset{ds: ds}, staticProvider{err: boom}, geo.NewCache(), nil)
	if _, err := svc.Build(context.Background(), NewRequest(model.Selection{})); !errors.Is(err, boom) {
		t.Fatalf("expected geometry error, got %v", err)
	}
}

func TestServicePredictAndOptions(t *testing.T) {
	svc := newTestService(t)
	p, err := svc.Predict(context.Background(), model.Selection{}, 3000, 12)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if p.Text == "" || p.Income != 3000 {
		t.Errorf("unexpected prediction %+v", p)
	}
	if _, err := svc.Predict(context.Background(), model.Selection{}, 3000, 1e308); !errors.Is(err, ErrPredictionRange) {
		t.Errorf("expected ErrPredictionRange, got %v", err)
	}
	opts, err := svc.Options(context.Background())
	if err != nil || len(opts.States) != 3 {
		t.Fatalf("Options = %+v, %v", opts, err)
	}
}
