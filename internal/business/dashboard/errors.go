package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection means the filters matched no indicator rows.
	ErrEmptySelection = errors.New("nenhum dado para a seleção")
	// ErrInsufficientData means the regression could not be fitted.
	ErrInsufficientData = errors.New("dados insuficientes para a regressão")
	// ErrPredictionRange means a predictor input or the predicted value is
	// outside the range the model can report.
	ErrPredictionRange = errors.New("valor fora do intervalo para a previsão")
)

// LoadError locates a bad cell in the indicator file.
type LoadError struct {
	Line   int // 1-based file line, header is line 1
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("column %s: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
