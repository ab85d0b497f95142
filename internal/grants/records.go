// Package grants models research grant awards and aggregates total funding
// per recipient institution.
package grants

import (
	"strconv"
	"strings"

	"github.com/emmanuelprah/Tidytuesday/internal/dataset"
)

// GrantRecord is one row of the cleaned grant table. Records are immutable
// once parsed and carry no identity beyond their position in the source.
type GrantRecord struct {
	StartDate                string
	EndDate                  string
	ProposalID               string
	ProgrammeName            string
	SubProgramme             string
	Supplement               string
	ResearchBody             string
	ResearchBodyRORID        string
	FunderName               string
	CrossrefFunderRegistryID string
	ProposalTitle            string

	// CurrentTotalCommitment is the awarded amount in euro. HasCommitment is
	// false when the source cell was blank or unparseable; such records still
	// belong to their institution and contribute 0 to its total.
	CurrentTotalCommitment float64
	HasCommitment          bool
}

// RecordsFromTable converts a cleaned table into GrantRecords.
// The table must already be projected to dataset.RequiredColumns.
func RecordsFromTable(t *dataset.Table) []GrantRecord {
	records := make([]GrantRecord, t.Len())
	for i := range t.Rows {
		commitment, ok := parseCommitment(t.Cell(i, 11))
		records[i] = GrantRecord{
			StartDate:                t.Cell(i, 0),
			EndDate:                  t.Cell(i, 1),
			ProposalID:               t.Cell(i, 2),
			ProgrammeName:            t.Cell(i, 3),
			SubProgramme:             t.Cell(i, 4),
			Supplement:               t.Cell(i, 5),
			ResearchBody:             t.Cell(i, 6),
			ResearchBodyRORID:        t.Cell(i, 7),
			FunderName:               t.Cell(i, 8),
			CrossrefFunderRegistryID: t.Cell(i, 9),
			ProposalTitle:            t.Cell(i, 10),
			CurrentTotalCommitment:   commitment,
			HasCommitment:            ok,
		}
	}
	return records
}

// parseCommitment parses a currency cell, tolerating euro signs, thousands
// separators and surrounding space. Missing or unparseable values report ok
// as false and an amount of 0.
func parseCommitment(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "na") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
