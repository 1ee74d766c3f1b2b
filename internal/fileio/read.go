// Package fileio reads and writes tabular files for the normalization
// pipeline. Reading runs an ordered list of parse attempts; the first success
// wins and a total failure reports every accumulated cause.
package fileio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"sheetnorm/internal"
	"sheetnorm/internal/util"
)

// ReadTable loads a table from path, picking parsers by extension. For
// workbooks the first sheet is used; see ReadSheet for explicit selection.
func ReadTable(path string) (*internal.Table, error) {
	return ReadSheet(path, "")
}

// ReadSheet is ReadTable with an explicit sheet name for workbook formats.
func ReadSheet(path, sheet string) (*internal.Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var attempts []func() (*internal.Table, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		attempts = csvAttempts(blob)
	case ".xlsx", ".xlsm", ".xls":
		// Workbook first, then the csv chain: misnamed delimited files
		// show up often enough in vendor exports.
		attempts = append([]func() (*internal.Table, error){
			func() (*internal.Table, error) { return parseXLSX(blob, sheet) },
		}, csvAttempts(blob)...)
	case ".html", ".htm":
		attempts = []func() (*internal.Table, error){
			func() (*internal.Table, error) { return parseHTMLTable(blob) },
		}
	default:
		// Unknown extension: a workbook misnamed as something else is
		// common enough to try both ways.
		attempts = append([]func() (*internal.Table, error){
			func() (*internal.Table, error) { return parseXLSX(blob, sheet) },
		}, csvAttempts(blob)...)
	}

	var causes []error
	for _, attempt := range attempts {
		table, err := attempt()
		if err == nil {
			return table, nil
		}
		causes = append(causes, err)
	}
	return nil, fmt.Errorf("read %s: %w", filepath.Base(path), errors.Join(causes...))
}

// SheetNames lists the sheets of a workbook so a host can offer selection.
func SheetNames(path string) ([]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func csvAttempts(blob []byte) []func() (*internal.Table, error) {
	return []func() (*internal.Table, error){
		func() (*internal.Table, error) { return parseCSVUTF8(blob) },
		func() (*internal.Table, error) { return parseCSVCharmap(blob, "latin-1", charmap.ISO8859_1) },
		func() (*internal.Table, error) { return parseCSVCharmap(blob, "cp1252", charmap.Windows1252) },
	}
}

func parseCSVUTF8(blob []byte) (*internal.Table, error) {
	if !utf8.Valid(blob) {
		return nil, errors.New("csv: not valid utf-8")
	}
	return parseCSV(blob)
}

func parseCSVCharmap(blob []byte, name string, cm *charmap.Charmap) (*internal.Table, error) {
	decoded, err := cm.NewDecoder().Bytes(blob)
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", name, err)
	}
	return parseCSV(decoded)
}

func parseCSV(blob []byte) (*internal.Table, error) {
	reader := csv.NewReader(bytes.NewReader(blob))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv: no rows")
	}
	return tableFromRecords(records), nil
}

func parseXLSX(blob []byte, sheet string) (*internal.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx sheet %q: no rows", sheet)
	}
	return tableFromRecords(rows), nil
}

// parseHTMLTable extracts the largest table of a saved page, first row as
// headers.
func parseHTMLTable(blob []byte) (*internal.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}

	var best *goquery.Selection
	bestRows := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if n := table.Find("tr").Length(); n > bestRows {
			best = table
			bestRows = n
		}
	})
	if best == nil || bestRows < 2 {
		return nil, errors.New("html: no table with data rows")
	}

	records := [][]string{}
	best.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			records = append(records, cells)
		}
	})
	if len(records) == 0 {
		return nil, errors.New("html: empty table")
	}
	return tableFromRecords(records), nil
}

func tableFromRecords(records [][]string) *internal.Table {
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	t := internal.NewTable(headers)
	t.Rows = make([][]internal.Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]internal.Cell, len(headers))
		for c := range headers {
			if c >= len(record) {
				row[c] = internal.NullCell()
				continue
			}
			row[c] = parseCell(record[c])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func parseCell(raw string) internal.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return internal.NullCell()
	}
	if n, ok := util.ParseNumber(s); ok {
		return internal.NumberCell(n)
	}
	return internal.StringCell(s)
}
