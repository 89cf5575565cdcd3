package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/spend-insights/internal/fileutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// Loader resolves a Source into a Table.
type Loader struct {
	delimiter rune
	logger    logging.Logger
}

// NewLoader creates a loader reading CSV files with the given delimiter
// (',' when zero).
func NewLoader(delimiter rune, logger logging.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{delimiter: delimiter, logger: logging.OrNop(logger)}
}

// Load resolves src into a table. File sources are read according to their
// extension: .xlsx (first sheet) or .csv.
func (l *Loader) Load(src Source) (*Table, error) {
	switch s := src.(type) {
	case TableSource:
		if s.Table == nil {
			return &Table{Records: []Record{}}, nil
		}
		return s.Table, nil
	case RecordsSource:
		return TableFromRecords(s.Records), nil
	case FileSource:
		return l.loadFile(s.Path)
	case nil:
		return nil, errors.New("no ledger source given")
	default:
		return nil, fmt.Errorf("unsupported ledger source %T", src)
	}
}

func (l *Loader) loadFile(path string) (*Table, error) {
	var (
		table *Table
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = l.loadSpreadsheet(path)
	case ".csv", ".txt":
		table, err = l.loadCSV(path)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".xlsx or .csv",
			Msg:            "unsupported file extension",
		}
	}
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: table.Len()},
	).Debug("Loaded ledger file")

	return table, nil
}

func (l *Loader) loadSpreadsheet(path string) (*Table, error) {
	if !fileutils.FileExists(path) {
		return nil, &parsererror.FileNotFoundError{Path: path}
	}
	if fileutils.IsEmptyFile(path) {
		return &Table{Records: []Record{}}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: ".xlsx", Msg: err.Error()}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close spreadsheet")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{Records: []Record{}}, nil
	}

	// Raw values keep dates as serial numbers and amounts unformatted.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return tableFromRows(rows), nil
}

func (l *Loader) loadCSV(path string) (*Table, error) {
	file, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	table, err := ReadCSV(file, l.delimiter)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: "CSV", Msg: err.Error()}
	}
	return table, nil
}

// ReadCSV reads a delimited table with a header row.
func ReadCSV(r io.Reader, delimiter rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV data: %w", err)
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{Records: []Record{}}
	}

	header := make([]string, len(rows[0]))
	for i, column := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(column, utf8BOM))
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		body = append(body, row)
	}
	return NewTable(header, body)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
