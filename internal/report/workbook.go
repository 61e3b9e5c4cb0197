package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/fitdash/internal/dashboard"
	"github.com/KaramelBytes/fitdash/internal/dataset"
)

const (
	SheetFiltered = "filtered"
	SheetMetrics  = "metrics"
)

// Workbook builds the export workbook: the filtered rows, one sheet per rendered
// page with each chart as a small table, and every metric on a summary sheet.
func Workbook(filtered *dataset.Frame, views []*dashboard.ViewModel) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", SheetFiltered); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(wb, filtered); err != nil {
		return nil, err
	}

	metrics := []interface{}{"page", "tab", "metric", "label", "value"}
	if _, err := wb.NewSheet(SheetMetrics); err != nil {
		return nil, fmt.Errorf("add sheet %s: %w", SheetMetrics, err)
	}
	if err := wb.SetSheetRow(SheetMetrics, "A1", &metrics); err != nil {
		return nil, err
	}
	metricRow := 2

	for _, vm := range views {
		if _, err := wb.NewSheet(vm.Page); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", vm.Page, err)
		}
		row := 1
		for _, sec := range vm.Sections {
			for _, m := range sec.Metrics {
				cells := []interface{}{vm.Page, sec.ID, m.ID, m.Label, m.Value}
				if err := wb.SetSheetRow(SheetMetrics, cellName(1, metricRow), &cells); err != nil {
					return nil, err
				}
				metricRow++
			}
			for _, c := range sec.Charts {
				next, err := writeChart(wb, vm.Page, row, c)
				if err != nil {
					return nil, fmt.Errorf("chart %s: %w", c.ID, err)
				}
				row = next + 2
			}
		}
	}
	wb.SetActiveSheet(0)
	return wb, nil
}

func writeRows(wb *excelize.File, f *dataset.Frame) error {
	cols := f.Columns()
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := wb.SetSheetRow(SheetFiltered, "A1", &header); err != nil {
		return err
	}
	for r, rec := range f.Rows(-1) {
		cells := make([]interface{}, len(rec))
		for i, v := range rec {
			cells[i] = v
			if dataset.IsNumeric(cols[i]) {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cells[i] = n
				}
			}
		}
		if err := wb.SetSheetRow(SheetFiltered, cellName(1, r+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

// writeChart lays c out from row start and returns the last row written.
func writeChart(wb *excelize.File, sheet string, start int, c dashboard.Chart) (int, error) {
	title := []interface{}{c.Title, c.ID}
	if err := wb.SetSheetRow(sheet, cellName(1, start), &title); err != nil {
		return start, err
	}
	header := []interface{}{"category"}
	for _, s := range c.Series {
		header = append(header, s.Name)
	}
	if err := wb.SetSheetRow(sheet, cellName(1, start+1), &header); err != nil {
		return start, err
	}
	row := start + 1
	for i, cat := range c.Categories {
		row++
		cells := []interface{}{cat}
		for _, s := range c.Series {
			cells = append(cells, s.Values[i])
		}
		if err := wb.SetSheetRow(sheet, cellName(1, row), &cells); err != nil {
			return row, err
		}
	}
	return row, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
