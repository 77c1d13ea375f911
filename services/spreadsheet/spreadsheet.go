// Package spreadsheet turns uploaded .xlsx and .csv files into row records.
// Nothing is persisted.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"onboardu/apperror"

	"github.com/xuri/excelize/v2"
)

// Row maps a header to the typed cell value under it.
type Row map[string]interface{}

// missing cell markers read as null
var naValues = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true, "-NaN": true, "-nan": true,
	"null": true, "NULL": true, "None": true, "#N/A": true, "<NA>": true,
}

// Extract parses file by extension. The first row is the header; every
// following non-blank row becomes a Row.
func Extract(filename string, r io.Reader) ([]Row, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, apperror.Unsupported("Only submit .xlsx and .csv file!")
	}
	if err != nil {
		return nil, apperror.Validation(apperror.CodeFailed, fmt.Sprintf("Unable to read %s: %v", filepath.Base(filename), err))
	}
	return toRows(records), nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found")
	}
	return f.GetRows(sheets[0])
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func toRows(records [][]string) []Row {
	rows := []Row{}
	if len(records) == 0 {
		return rows
	}
	// xlsx rows drop trailing blank cells, the header row included
	width := 0
	for _, record := range records {
		if len(record) > width {
			width = len(record)
		}
	}
	raw := make([]string, width)
	copy(raw, records[0])
	headers := headerNames(raw)

	for _, record := range records[1:] {
		if blank(record) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			row[h] = Value(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// headerNames names blank headers "Unnamed: <i>" and suffixes repeats with
// ".1", ".2", ... skipping any suffix already taken, so every column keeps
// a distinct key.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	taken := map[string]bool{}
	suffix := map[string]int{}
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if taken[name] {
			base := name
			for taken[name] {
				suffix[base]++
				name = fmt.Sprintf("%s.%d", base, suffix[base])
			}
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Value types a raw cell: null, int64, float64, bool or the trimmed string.
func Value(cell string) interface{} {
	s := strings.TrimSpace(cell)
	if naValues[s] {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	// infinities have no JSON form and stay strings
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
