package ledger

import (
	"fjacquet/spend-insights/internal/models"
	"fjacquet/spend-insights/internal/parsererror"
)

// columnSynonyms maps known ledger headers onto canonical column names. Matching
// is exact (case-sensitive); lower-case variants are listed explicitly.
var columnSynonyms = map[string]string{
	"Дата операции":  models.ColumnDate,
	"дата операции":  models.ColumnDate,
	"Дата":           models.ColumnDate,
	"дата":           models.ColumnDate,
	"Date":           models.ColumnDate,
	"date":           models.ColumnDate,
	"Operation Date": models.ColumnDate,

	"Номер карты": models.ColumnCardNumber,
	"номер карты": models.ColumnCardNumber,
	"Карта":       models.ColumnCardNumber,
	"Card Number": models.ColumnCardNumber,
	"Card":        models.ColumnCardNumber,
	"card_number": models.ColumnCardNumber,

	"Сумма операции": models.ColumnAmount,
	"сумма операции": models.ColumnAmount,
	"Сумма":          models.ColumnAmount,
	"сумма":          models.ColumnAmount,
	"Amount":         models.ColumnAmount,
	"amount":         models.ColumnAmount,

	"Категория": models.ColumnCategory,
	"категория": models.ColumnCategory,
	"Category":  models.ColumnCategory,
	"category":  models.ColumnCategory,

	"Описание":    models.ColumnDescription,
	"описание":    models.ColumnDescription,
	"Description": models.ColumnDescription,
	"description": models.ColumnDescription,
}

// CanonicalName returns the canonical name for a header and whether it is known.
func CanonicalName(header string) (string, bool) {
	name, ok := columnSynonyms[header]
	return name, ok
}

// Normalize renames known headers to canonical column names and checks that
// every required canonical column is present. Unknown columns pass through.
// When two headers map to the same canonical name the first one wins and the
// later one keeps its original name. The input table is not modified.
func Normalize(table *Table, required ...string) (*Table, error) {
	if table == nil {
		table = &Table{}
	}

	rename := make(map[string]string, len(table.Columns))
	taken := make(map[string]bool, len(table.Columns))
	for _, column := range table.Columns {
		if canonical, ok := columnSynonyms[column]; ok {
			taken[canonical] = taken[canonical] || column == canonical
		}
	}

	out := &Table{
		Columns: make([]string, 0, len(table.Columns)),
		Records: make([]Record, 0, len(table.Records)),
	}
	for _, column := range table.Columns {
		target := column
		if canonical, ok := columnSynonyms[column]; ok && canonical != column && !taken[canonical] {
			target = canonical
			taken[canonical] = true
		}
		rename[column] = target
		out.Columns = append(out.Columns, target)
	}

	for _, record := range table.Records {
		renamed := make(Record, len(record))
		for key, value := range record {
			if target, ok := rename[key]; ok {
				renamed[target] = value
			} else {
				renamed[key] = value
			}
		}
		out.Records = append(out.Records, renamed)
	}

	if missing := missingColumns(out, required); len(missing) > 0 {
		return nil, &parsererror.MissingColumnsError{Columns: missing}
	}

	return out, nil
}

// missingColumns lists required columns absent from table, in canonical order.
func missingColumns(table *Table, required []string) []string {
	want := make(map[string]bool, len(required))
	for _, column := range required {
		want[column] = true
	}

	var missing []string
	for _, column := range models.CanonicalColumns {
		if want[column] && !table.HasColumn(column) {
			missing = append(missing, column)
			delete(want, column)
		}
	}
	// required names outside the canonical set keep their given order
	for _, column := range required {
		if want[column] && !table.HasColumn(column) {
			missing = append(missing, column)
			delete(want, column)
		}
	}
	return missing
}
