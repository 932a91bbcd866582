// Package sheets loads spreadsheet and delimited text files into roster
// tables. Every cell is read as its displayed text.
package sheets

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/rollcall"
	"github.com/agentstation/rollcall/pkg/errors"
	"github.com/agentstation/rollcall/pkg/logging"
	"github.com/agentstation/rollcall/pkg/roster"
)

// Format is a supported file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, true
	case ".csv":
		return FormatCSV, true
	case ".tsv", ".tab":
		return FormatTSV, true
	}
	return "", false
}

// Loader reads tables from the local filesystem.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ rollcall.Loader = (*Loader)(nil)

// Load reads src into a table whose first record is the header. Fully blank
// records are skipped. A missing file is an IOError wrapping os.ErrNotExist;
// any other failure is a LoadError.
func (l *Loader) Load(ctx context.Context, src rollcall.Source) (*roster.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := src.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	format, ok := DetectFormat(path)
	if !ok {
		return nil, errors.NewLoadError(path, src.Sheet,
			errors.NewValidationError("path", filepath.Ext(path), "unsupported file type"))
	}

	var (
		records [][]string
		lines   []int
		sheet   = src.Sheet
		err     error
	)
	switch format {
	case FormatXLSX:
		records, sheet, err = readWorkbook(path, sheet)
	case FormatTSV:
		records, lines, err = readDelimited(path, '\t')
	default:
		records, lines, err = readDelimited(path, ',')
	}
	if err != nil {
		return nil, errors.NewLoadError(path, sheet, err)
	}

	t := tableFrom(tableName(path, sheet), records, lines)
	logging.FromContext(ctx).Debug().
		Str("path", path).
		Str("sheet", sheet).
		Int("columns", len(t.Columns)).
		Int("rows", t.Len()).
		Msg("Read table")
	return t, nil
}

// readWorkbook returns the rows of the named sheet, or of the first sheet
// when name is empty, along with the sheet actually read.
func readWorkbook(path, name string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, name, err
	}
	defer f.Close()

	if name == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, name, errors.New("workbook has no sheets")
		}
		name = list[0]
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, name, err
	}
	return rows, name, nil
}

// readDelimited returns the records of a delimited file with the line each
// record starts on. Empty lines produce no record.
func readDelimited(path string, comma rune) ([][]string, []int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, lines, nil
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
}

// tableFrom builds a table from records, skipping blank ones. lines gives
// the source line of each record; when nil, record i sits on line i+1.
func tableFrom(name string, records [][]string, lines []int) *roster.Table {
	var (
		header []string
		body   [][]string
		at     []int
	)
	for i, rec := range records {
		if blank(rec) {
			continue
		}
		if header == nil {
			header = rec
			continue
		}
		line := i + 1
		if lines != nil {
			line = lines[i]
		}
		body = append(body, rec)
		at = append(at, line)
	}
	t := roster.NewTable(name, header, body)
	t.Lines = at
	return t
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func tableName(path, sheet string) string {
	base := filepath.Base(path)
	if sheet == "" {
		return base
	}
	return base + "#" + sheet
}
