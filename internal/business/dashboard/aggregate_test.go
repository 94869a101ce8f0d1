package dashboard

import (
	"testing"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

func TestAggregateMeans(t *testing.T) {
	aggs := Aggregate(sampleJoined())
	if len(aggs) != 3 {
		t.Fatalf("expected 3 states, got %d", len(aggs))
	}
	bahia := aggs[0]
	if bahia.State != "Bahia" || bahia.Region != "Nordeste" || bahia.Years != 2 {
		t.Fatalf("unexpected first aggregate %+v", bahia)
	}
	if bahia.Internet != 55 {
		t.Errorf("mean of 50 and 60 = %v, want 55", bahia.Internet)
	}
	if bahia.Income != 2200 {
		t.Errorf("income mean = %v, want 2200", bahia.Income)
	}
}

func TestAggregateSingleYearIsExact(t *testing.T) {
	one := Aggregate(Filter(sampleJoined(), model.Selection{Year: 2019, State: "Espírito Santo"}))
	if len(one) != 1 {
		t.Fatalf("expected one state, got %d", len(one))
	}
	if one[0].Internet != 74 || one[0].Literacy != 93.4 || one[0].HigherEducation != 16.5 || one[0].Income != 3300.5 {
		t.Errorf("single year mean changed the value: %+v", one[0])
	}
}

func TestEmptySelectionDegrades(t *testing.T) {
	filtered := Filter(sampleJoined(), model.Selection{Region: "Nordeste", Year: 2019, State: "São Paulo"})
	aggs := Aggregate(filtered)
	if len(aggs) != 0 {
		t.Fatalf("expected empty aggregate table, got %d", len(aggs))
	}
	if ext := FindExtremes(aggs); ext != nil {
		t.Errorf("expected no extremes, got %v", ext)
	}
	for _, m := range Summarize(aggs) {
		if m.Valid || m.Text != util.Placeholder {
			t.Errorf("metric %s should be a placeholder: %+v", m.Key, m)
		}
	}
	if _, err := FitRegression(filtered); err != ErrInsufficientData {
		t.Errorf("FitRegression on empty = %v", err)
	}
}

func TestFindExtremes(t *testing.T) {
	ext := FindExtremes(Aggregate(sampleJoined()))
	if len(ext) != 4 {
		t.Fatalf("expected 4 indicators, got %d", len(ext))
	}
	internet := ext[0]
	if internet.Indicator != "internet" || internet.MaxState != "São Paulo" || internet.MinState != "Bahia" {
		t.Fatalf("unexpected internet extremes %+v", internet)
	}
	if internet.MaxLabel != "São Paulo 82,50%" || internet.MinLabel != "Bahia 55,00%" {
		t.Errorf("labels = %q / %q", internet.MaxLabel, internet.MinLabel)
	}
	income := ext[3]
	if income.MaxLabel != "São Paulo R$ 4.700,00" {
		t.Errorf("income label = %q", income.MaxLabel)
	}
}

func TestFindExtremesTieBreakAlphabetical(t *testing.T) {
	aggs := []model.StateAggregate{
		{State: "Amapá", Internet: 70, Income: 1000},
		{State: "Goiás", Internet: 70, Income: 1000},
		{State: "Pará", Internet: 70, Income: 1000},
	}
	for _, e := range FindExtremes(aggs) {
		if e.MaxState != "Amapá" || e.MinState != "Amapá" {
			t.Errorf("%s: ties should go to the first state, got max %s min %s", e.Indicator, e.MaxState, e.MinState)
		}
	}
}

func TestSummarize(t *testing.T) {
	metrics := Summarize(Aggregate(sampleJoined()))
	if len(metrics) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(metrics))
	}
	// (55 + 72 + 82.5) / 3
	if m := metrics[0]; !m.Valid || m.Text != "69,83%" {
		t.Errorf("internet metric = %+v", m)
	}
	if m := metrics[3]; m.Label != "Renda Média Domiciliar" || m.Text[:3] != "R$ " {
		t.Errorf("income metric = %+v", m)
	}
}
