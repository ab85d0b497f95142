// Package dataset loads and cleans the TidyTuesday grant dataset.
//
// The package covers the first two stages of the pipeline: fetching the raw
// CSV for a dataset date key (with a local cache so repeated runs are
// offline), and normalizing the table down to the fixed set of columns the
// aggregation stage expects.
//
// Typical usage:
//
//	loader := dataset.NewLoader(cfg.Dataset, paths, logger)
//	raw, err := loader.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	cleaned, err := dataset.CleanAndSelect(raw)
package dataset

// Table is a raw tabular dataset: a header row plus data rows of strings.
// Rows may be shorter than the header; missing cells read as empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1 if absent
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at the given row and column index,
// or "" when the row is shorter than the header
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}
