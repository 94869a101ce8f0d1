package dashboard

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// maxCondition rejects designs whose predictors are collinear or constant.
const maxCondition = 1e12

// Predictor defaults and accepted input ranges.
const (
	DefaultIncome    = 3000
	DefaultEducation = 12

	MaxIncome    = 1e9
	MaxEducation = 100
)

// RegressionNote is shown under the scatter chart.
const RegressionNote = "Interpretação: As variáveis analisadas apresentam forte correlação temporal, " +
	"o que indica que evoluem em conjunto devido a condições sociais externas, " +
	"não necessariamente que uma causa a outra diretamente."

// usable returns the rows whose indicator fields are all present and finite.
func usable(rows []model.JoinedRecord) []model.IndicatorRecord {
	out := make([]model.IndicatorRecord, 0, len(rows))
	for _, r := range rows {
		if r.Indicator == nil {
			continue
		}
		rec := *r.Indicator
		if !finite(rec.Internet, rec.Literacy, rec.HigherEducation, rec.Income) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FitRegression fits internet access on income and higher education by
// ordinary least squares.
func FitRegression(rows []model.JoinedRecord) (*model.RegressionModel, error) {
	recs := usable(rows)
	if len(recs) < 3 {
		return nil, ErrInsufficientData
	}

	x := mat.NewDense(len(recs), 3, nil)
	y := mat.NewVecDense(len(recs), nil)
	for i, r := range recs {
		x.Set(i, 0, 1)
		x.Set(i, 1, r.Income)
		x.Set(i, 2, r.HigherEducation)
		y.SetVec(i, r.Internet)
	}

	if mat.Cond(x, 2) > maxCondition {
		return nil, ErrInsufficientData
	}
	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil, ErrInsufficientData
	}
	m := &model.RegressionModel{
		Intercept:     beta.AtVec(0),
		CoefIncome:    beta.AtVec(1),
		CoefEducation: beta.AtVec(2),
		Samples:       len(recs),
	}
	if !finite(m.Intercept, m.CoefIncome, m.CoefEducation) {
		return nil, ErrInsufficientData
	}
	return m, nil
}

// FittedLine evaluates m on every usable row, ordered by income.
func FittedLine(m *model.RegressionModel, rows []model.JoinedRecord) []model.ChartPoint {
	recs := usable(rows)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Income < recs[j].Income })

	out := make([]model.ChartPoint, 0, len(recs))
	for _, r := range recs {
		v := m.Predict(r.Income, r.HigherEducation)
		out = append(out, model.ChartPoint{
			X:     r.Income,
			Y:     v,
			Label: r.State,
			Hover: "Renda: " + Income.Format(r.Income) + "<br>Acesso previsto: " + Internet.Format(v),
		})
	}
	return out
}

// CoefficientLines are the three text lines describing m.
func CoefficientLines(m *model.RegressionModel) []string {
	return []string{
		"Intercepto: " + util.DisplayBR(m.Intercept, util.KindPlain, 2),
		"Coeficiente Renda: " + util.DisplayBR(m.CoefIncome, util.KindPlain, 4),
		"Coeficiente Ensino Superior: " + util.DisplayBR(m.CoefEducation, util.KindPlain, 4),
	}
}

// CheckInputs rejects predictor inputs outside [0, MaxIncome] and
// [0, MaxEducation].
func CheckInputs(income, education float64) error {
	if !(income >= 0 && income <= MaxIncome) {
		return fmt.Errorf("%w: renda %v", ErrPredictionRange, income)
	}
	if !(education >= 0 && education <= MaxEducation) {
		return fmt.Errorf("%w: ensino superior %v", ErrPredictionRange, education)
	}
	return nil
}

// Predict runs m on one input pair. The value is not clipped to [0, 100],
// but a non-finite result is an ErrPredictionRange.
func Predict(m *model.RegressionModel, income, education float64) (model.Prediction, error) {
	v := m.Predict(income, education)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return model.Prediction{}, fmt.Errorf("%w: previsão %v", ErrPredictionRange, v)
	}
	return model.Prediction{
		Income:    income,
		Education: education,
		Value:     v,
		Text:      Internet.Format(v),
	}, nil
}
