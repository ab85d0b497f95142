package grants

import (
	"log/slog"
	"sort"
	"strings"
)

// UnknownInstitution is the group label for records whose research body is
// blank. Such rows are kept rather than dropped so institution totals always
// account for every record in the source.
const UnknownInstitution = "Unknown institution"

// InstitutionTotal is the summed funding commitment for one research body
type InstitutionTotal struct {
	ResearchBody string
	TotalFunding float64
}

// Aggregator ranks institutions by total funding commitment
type Aggregator struct {
	topN   int
	logger *slog.Logger
}

// NewAggregator creates an aggregator keeping the topN best funded institutions
func NewAggregator(topN int, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{topN: topN, logger: logger}
}

// TopInstitutions partitions records by research body, sums each partition's
// commitments (missing amounts count as 0), and returns at most topN
// institutions sorted by total funding descending. Ties keep input order.
func (a *Aggregator) TopInstitutions(records []GrantRecord) []InstitutionTotal {
	totalsByBody := make(map[string]float64)
	var order []string

	for _, r := range records {
		body := strings.TrimSpace(r.ResearchBody)
		if body == "" {
			body = UnknownInstitution
		}
		if _, seen := totalsByBody[body]; !seen {
			order = append(order, body)
		}
		// CurrentTotalCommitment is 0 when the source cell was missing, so
		// records without a commitment still register their institution
		totalsByBody[body] += r.CurrentTotalCommitment
	}

	totals := make([]InstitutionTotal, 0, len(order))
	for _, body := range order {
		totals = append(totals, InstitutionTotal{ResearchBody: body, TotalFunding: totalsByBody[body]})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalFunding > totals[j].TotalFunding
	})

	if len(totals) > a.topN {
		totals = totals[:a.topN]
	}

	// Explicit re-sort of the kept slice so the output order is guaranteed
	// independently of how the truncation above is implemented
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalFunding > totals[j].TotalFunding
	})

	a.logger.Debug("Aggregated institution totals",
		slog.Int("records", len(records)),
		slog.Int("institutions", len(order)),
		slog.Int("kept", len(totals)))

	return totals
}
