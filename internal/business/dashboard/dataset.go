package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/util"
)

// Dataset is the parsed indicator file.
type Dataset struct {
	Records     []model.IndicatorRecord
	MinYear     int
	MaxYear     int
	Fingerprint string
}

// AverageNote is the multi-year disclaimer for this dataset.
func (d *Dataset) AverageNote() string {
	return AverageNote(d.MinYear, d.MaxYear)
}

// ParseIndicators reads the pipe-delimited indicator file. Every value must
// parse; the first bad cell aborts the load with a *LoadError.
func ParseIndicators(content []byte) ([]model.IndicatorRecord, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.WithDelimiter('|'),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read indicator file: %w", df.Err)
	}

	names := make(map[string]string, df.Ncol())
	for _, n := range df.Names() {
		names[strings.TrimSpace(n)] = n
	}
	column := func(name string) ([]string, error) {
		actual, ok := names[name]
		if !ok {
			return nil, &LoadError{Column: name, Err: errors.New("missing column")}
		}
		return df.Col(actual).Records(), nil
	}

	years, err := column(ColumnYear)
	if err != nil {
		return nil, err
	}
	states, err := column(ColumnState)
	if err != nil {
		return nil, err
	}
	values := make([][]float64, len(Indicators))
	for i, ind := range Indicators {
		raw, err := column(ind.Column)
		if err != nil {
			return nil, err
		}
		parsed, err := util.ParseBRColumn(raw)
		if err != nil {
			var colErr *util.ColumnError
			line := 0
			if errors.As(err, &colErr) {
				line = colErr.Index + 2
			}
			return nil, &LoadError{Line: line, Column: ind.Column, Err: err}
		}
		values[i] = parsed
	}

	out := make([]model.IndicatorRecord, df.Nrow())
	for row := range out {
		year, err := strconv.Atoi(strings.TrimSpace(years[row]))
		if err != nil {
			return nil, &LoadError{Line: row + 2, Column: ColumnYear, Err: err}
		}
		state := strings.TrimSpace(states[row])
		if state == "" || state == "NaN" {
			return nil, &LoadError{Line: row + 2, Column: ColumnState, Err: errors.New("empty state name")}
		}
		out[row] = model.IndicatorRecord{
			Year:            year,
			State:           state,
			Internet:        values[0][row],
			Literacy:        values[1][row],
			HigherEducation: values[2][row],
			Income:          values[3][row],
		}
	}
	return out, nil
}

// DatasetLoader memoizes the parsed file by its fingerprint, so a changed
// file is reparsed on the next Load and an unchanged one is not.
type DatasetLoader struct {
	path string

	mu      sync.Mutex
	current *Dataset
}

func NewDatasetLoader(path string) *DatasetLoader {
	return &DatasetLoader{path: path}
}

func (l *DatasetLoader) Path() string { return l.path }

func (l *DatasetLoader) Load() (*Dataset, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("stat indicator file: %w", err)
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read indicator file: %w", err)
	}
	fp := util.FileFingerprint(l.path, info.Size(), info.ModTime(), content)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil && l.current.Fingerprint == fp {
		return l.current, nil
	}

	records, err := ParseIndicators(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no indicator rows", l.path)
	}
	ds := &Dataset{Records: records, Fingerprint: fp}
	ds.MinYear, ds.MaxYear = records[0].Year, records[0].Year
	for _, r := range records[1:] {
		if r.Year < ds.MinYear {
			ds.MinYear = r.Year
		}
		if r.Year > ds.MaxYear {
			ds.MaxYear = r.Year
		}
	}
	l.current = ds
	return ds, nil
}
