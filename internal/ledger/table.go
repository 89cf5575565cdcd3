// Package ledger turns raw tabular input (spreadsheet files, CSV files, in-memory
// tables or row records) into typed transactions.
package ledger

import "sort"

// Record is one row keyed by column name. Cell values may be strings, numbers,
// decimal.Decimal or time.Time.
type Record map[string]any

// Table is a column-ordered set of records.
type Table struct {
	Columns []string
	Records []Record
}

// NewTable builds a table from a header row and string rows. Short rows leave
// the missing cells absent; extra cells are ignored.
func NewTable(header []string, rows [][]string) *Table {
	table := &Table{
		Columns: append([]string(nil), header...),
		Records: make([]Record, 0, len(rows)),
	}
	for _, row := range rows {
		record := make(Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		table.Records = append(table.Records, record)
	}
	return table
}

// TableFromRecords builds a table whose columns are the union of the record keys,
// in first-seen order (keys of a single record are taken in sorted order).
func TableFromRecords(records []Record) *Table {
	seen := make(map[string]bool)
	table := &Table{Records: records}
	for _, record := range records {
		keys := make([]string, 0, len(record))
		for key := range record {
			if !seen[key] {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			seen[key] = true
			table.Columns = append(table.Columns, key)
		}
	}
	if table.Records == nil {
		table.Records = []Record{}
	}
	return table
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the table has neither columns nor records, as read
// from an empty file or an empty record list.
func (t *Table) IsEmpty() bool {
	return t == nil || (len(t.Columns) == 0 && len(t.Records) == 0)
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
