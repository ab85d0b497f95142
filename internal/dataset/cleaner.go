package dataset

import (
	"strings"

	"github.com/emmanuelprah/Tidytuesday/internal/errors"
)

// RequiredColumns is the fixed set of columns, in canonical order, that the
// grant pipeline consumes. Source header casing and spacing are irrelevant;
// names are matched after normalization.
var RequiredColumns = []string{
	"start_date",
	"end_date",
	"proposal_id",
	"programme_name",
	"sub_programme",
	"supplement",
	"research_body",
	"research_body_ror_id",
	"funder_name",
	"crossref_funder_registry_id",
	"proposal_title",
	"current_total_commitment",
}

// NormalizeColumnName lowercases a column name and collapses runs of
// non-alphanumeric characters into single underscores, so e.g.
// "Research Body", "research-body" and "Research_Body " all normalize
// to "research_body".
func NormalizeColumnName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	return b.String()
}

// CleanAndSelect normalizes the table's column names and projects it to
// RequiredColumns in canonical order. All rows pass through; short rows are
// padded with empty cells. It fails with a SchemaMismatch error naming every
// required column absent from the source.
func CleanAndSelect(t *Table) (*Table, error) {
	// First occurrence wins when normalization collapses two headers
	indexByName := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		name := NormalizeColumnName(col)
		if _, ok := indexByName[name]; !ok {
			indexByName[name] = i
		}
	}

	indices := make([]int, len(RequiredColumns))
	var missing []string
	for i, name := range RequiredColumns {
		idx, ok := indexByName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		indices[i] = idx
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaMismatchError(missing)
	}

	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(indices))
		for c, idx := range indices {
			row[c] = t.Cell(r, idx)
		}
		rows[r] = row
	}

	return &Table{
		Columns: append([]string(nil), RequiredColumns...),
		Rows:    rows,
	}, nil
}
