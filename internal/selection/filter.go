package selection

import (
	"strings"

	"github.com/jonathan/customs-fts/internal/types"
)

// reportMarker must appear, case-sensitively, in the title of a trade statistics report.
const reportMarker = "FTS"

// Filter keeps links whose title contains reportMarker and a period token, in input order.
func Filter(links []types.ReportLink) []types.Candidate {
	candidates := make([]types.Candidate, 0, len(links))
	for _, link := range links {
		if !strings.Contains(link.Title, reportMarker) {
			continue
		}
		period, ok := MatchPeriod(link.Title)
		if !ok {
			continue
		}

		fields := strings.Fields(link.Title)
		candidates = append(candidates, types.Candidate{
			URL:      link.URL,
			Title:    link.Title,
			Month:    fields[len(fields)-1],
			Period:   string(period),
			Position: len(candidates),
		})
	}
	return candidates
}
