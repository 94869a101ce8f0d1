// Package export writes dashboard tables as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/anderson-asouza/dash-educacao-internet-renda/pkg/model"
)

// Sheet names.
const (
	SheetStates  = "Estados"
	SheetSummary = "Resumo"
)

var stateHeaders = []string{
	"ESTADO", "REGIAO", "ANOS",
	"PERCENTUAL_COM_ACESSO_INTERNET", "TAXA_ALFABETIZACAO",
	"PERCENTUAL_COM_ENSINO_SUPERIOR", "RENDA_MEDIA_DOMICILIAR",
}

// WriteXLSX writes the per-state means and the headline metrics of d.
func WriteXLSX(w io.Writer, d *model.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetStates); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	decimal, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("number style: %w", err)
	}

	for i, h := range stateHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetStates, cell, h)
	}
	for i, a := range d.Aggregates {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(SheetStates, cell, value)
		}
		set(1, a.State)
		set(2, a.Region)
		set(3, a.Years)
		set(4, a.Internet)
		set(5, a.Literacy)
		set(6, a.HigherEducation)
		set(7, a.Income)
	}
	if n := len(d.Aggregates); n > 0 {
		from, _ := excelize.CoordinatesToCellName(4, 2)
		to, _ := excelize.CoordinatesToCellName(7, n+1)
		if err := f.SetCellStyle(SheetStates, from, to, decimal); err != nil {
			return fmt.Errorf("style values: %w", err)
		}
	}
	_ = f.SetColWidth(SheetStates, "A", "B", 22)
	_ = f.SetColWidth(SheetStates, "D", "G", 34)

	summary := [][]any{
		{"Indicador", "Valor", "Texto"},
	}
	for _, m := range d.Metrics {
		var v any = ""
		if m.Valid {
			v = m.Value
		}
		summary = append(summary, []any{m.Label, v, m.Text})
	}
	summary = append(summary,
		[]any{},
		[]any{"Região", selectionValue(d.Selection.Region)},
		[]any{"Ano", yearValue(d.Selection.Year)},
		[]any{"Estado", selectionValue(d.Selection.State)},
	)
	if d.AvgNote != "" {
		summary = append(summary, []any{"Observação", d.AvgNote})
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 30)
	_ = f.SetColWidth(SheetSummary, "C", "C", 20)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func selectionValue(v string) string {
	if v == "" {
		return "Todos"
	}
	return v
}

func yearValue(y int) any {
	if y == 0 {
		return "Todos"
	}
	return y
}
