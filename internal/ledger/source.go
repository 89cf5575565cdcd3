package ledger

// Source is the input of the ledger pipeline. The set of implementations is
// closed: TableSource, RecordsSource and FileSource.
type Source interface {
	isSource()
}

// TableSource is an already loaded table.
type TableSource struct {
	Table *Table
}

// RecordsSource is a list of row records.
type RecordsSource struct {
	Records []Record
}

// FileSource is a path to an .xlsx or .csv ledger.
type FileSource struct {
	Path string
}

func (TableSource) isSource()   {}
func (RecordsSource) isSource() {}
func (FileSource) isSource()    {}

// FromTable wraps a table.
func FromTable(t *Table) Source { return TableSource{Table: t} }

// FromRecords wraps row records.
func FromRecords(records []Record) Source { return RecordsSource{Records: records} }

// FromFile wraps a file path.
func FromFile(path string) Source { return FileSource{Path: path} }
