package dashboard

import (
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Input file columns.
const (
	ColumnYear            = "ANO"
	ColumnState           = "ESTADO"
	ColumnInternet        = "PERCENTUAL_COM_ACESSO_INTERNET"
	ColumnLiteracy        = "TAXA_ALFABETIZACAO"
	ColumnHigherEducation = "PERCENTUAL_COM_ENSINO_SUPERIOR"
	ColumnIncome          = "RENDA_MEDIA_DOMICILIAR"
)

// Indicator describes one of the four measured values.
type Indicator struct {
	Key    string
	Column string
	Label  string // series title, e.g. "Ensino Superior (%)"
	Metric string // headline metric label
	Kind   util.Kind

	record    func(model.IndicatorRecord) float64
	aggregate func(model.StateAggregate) float64
}

// Of reads the indicator from a record.
func (i Indicator) Of(r model.IndicatorRecord) float64 { return i.record(r) }

// OfAggregate reads the indicator mean from an aggregate.
func (i Indicator) OfAggregate(a model.StateAggregate) float64 { return i.aggregate(a) }

// Format renders v with the indicator's decoration and two decimals.
func (i Indicator) Format(v float64) string { return util.DisplayBR(v, i.Kind, 2) }

var (
	Internet = Indicator{
		Key: "internet", Column: ColumnInternet, Kind: util.KindPercent,
		Label:     "Acesso à Internet (%)",
		Metric:    "Média de Acesso à Internet",
		record:    func(r model.IndicatorRecord) float64 { return r.Internet },
		aggregate: func(a model.StateAggregate) float64 { return a.Internet },
	}
	Literacy = Indicator{
		Key: "literacy", Column: ColumnLiteracy, Kind: util.KindPercent,
		Label:     "Taxa de Alfabetização (%)",
		Metric:    "Média de Alfabetização",
		record:    func(r model.IndicatorRecord) float64 { return r.Literacy },
		aggregate: func(a model.StateAggregate) float64 { return a.Literacy },
	}
	HigherEducation = Indicator{
		Key: "higher-education", Column: ColumnHigherEducation, Kind: util.KindPercent,
		Label:     "Ensino Superior (%)",
		Metric:    "Média de Ensino Superior",
		record:    func(r model.IndicatorRecord) float64 { return r.HigherEducation },
		aggregate: func(a model.StateAggregate) float64 { return a.HigherEducation },
	}
	Income = Indicator{
		Key: "income", Column: ColumnIncome, Kind: util.KindCurrency,
		Label:     "Renda Média Domiciliar (R$)",
		Metric:    "Renda Média Domiciliar",
		record:    func(r model.IndicatorRecord) float64 { return r.Income },
		aggregate: func(a model.StateAggregate) float64 { return a.Income },
	}
)

// Indicators lists the four indicators in display order.
var Indicators = []Indicator{Internet, Literacy, HigherEducation, Income}

// IndicatorByKey looks an indicator up by its key.
func IndicatorByKey(key string) (Indicator, bool) {
	for _, ind := range Indicators {
		if ind.Key == key {
			return ind, true
		}
	}
	return Indicator{}, false
}
