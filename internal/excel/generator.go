package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a single-sheet workbook with a header row followed by the
// data rows, the layout the import side expects back.
func (g *Generator) Generate(sheet string, headers []string, rows [][]interface{}) ([]byte, error) {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	for col, header := range headers {
		name, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		set(name, header)
	}

	for rowIdx, row := range rows {
		for col, value := range row {
			name, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			set(name, value)
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads the first sheet of a workbook into loose rows keyed by the
// header row. Values stay untyped strings; mapping and coercion are the
// caller's concern.
func (g *Generator) Parse(r io.Reader) ([]map[string]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for idx, header := range rows[0] {
		headers[idx] = strings.TrimSpace(header)
	}

	result := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))
		for idx, header := range headers {
			if header == "" {
				continue
			}
			if idx < len(row) {
				record[header] = strings.TrimSpace(row[idx])
			} else {
				record[header] = ""
			}
		}
		result = append(result, record)
	}
	return result, nil
}
