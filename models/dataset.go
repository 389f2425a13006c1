package models

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Dataset is an in-memory tabular dataset: one header row plus data rows.
// Rows are padded to the header width so positional access is always safe.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

func NewDataset(name string, columns []string, rows [][]string) *Dataset {
	d := &Dataset{Name: name, Columns: columns}
	d.Rows = make([][]string, 0, len(rows))
	for _, row := range rows {
		d.Rows = append(d.Rows, padRow(row, len(columns)))
	}
	return d
}

// ReadDataset loads the first sheet of an xlsx stream. The first row is the
// header; completely empty rows are skipped.
func ReadDataset(r io.Reader, name string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s file has no sheets", name)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s file is empty", name)
	}

	columns := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		columns[i] = strings.TrimSpace(c)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		data = append(data, row)
	}
	return NewDataset(name, columns, data), nil
}

// ColumnIndex returns the position of a column by exact header match, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// MissingColumns reports which of the required columns are absent, in the
// order they were asked for.
func (d *Dataset) MissingColumns(required ...string) []string {
	var missing []string
	for _, name := range required {
		if !d.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
