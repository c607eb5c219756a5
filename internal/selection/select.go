package selection

import (
	"fmt"
	"strings"

	"github.com/jonathan/customs-fts/internal/types"
)

// Mode chooses how one candidate is picked from the filtered set.
type Mode string

const (
	// ModeLatest picks the candidate latest in the fiscal year.
	ModeLatest Mode = "latest"
	// ModePositional picks the second candidate in page order.
	ModePositional Mode = "positional"
)

// positionalIndex is the candidate index used by ModePositional.
const positionalIndex = 1

// ParseMode parses a mode name; the empty string means ModeLatest.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLatest:
		return ModeLatest, nil
	case ModePositional:
		return ModePositional, nil
	default:
		return "", &Error{Message: fmt.Sprintf("unknown selection mode %q (want %q or %q)", s, ModeLatest, ModePositional)}
	}
}

// LegacyMonth returns the month label of the second filtered link.
func LegacyMonth(links []types.ReportLink) (string, error) {
	candidate, err := nth(Filter(links), positionalIndex)
	if err != nil {
		return "", err
	}
	return candidate.Month, nil
}

// Latest returns the candidate whose period is furthest into the fiscal year.
// Ties go to the candidate earliest in page order.
func Latest(candidates []types.Candidate) (types.Candidate, error) {
	if len(candidates) == 0 {
		return types.Candidate{}, ErrReportLinkNotFound
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if Period(candidates[i].Period).FiscalIndex() > Period(candidates[best].Period).FiscalIndex() {
			best = i
		}
	}
	return candidates[best], nil
}

// Select filters links and picks one candidate according to mode.
func Select(links []types.ReportLink, mode Mode) (types.Candidate, error) {
	return Pick(Filter(links), mode)
}

// Pick chooses one of already filtered candidates according to mode.
func Pick(candidates []types.Candidate, mode Mode) (types.Candidate, error) {
	switch mode {
	case ModeLatest, "":
		return Latest(candidates)
	case ModePositional:
		return nth(candidates, positionalIndex)
	default:
		return types.Candidate{}, &Error{Message: fmt.Sprintf("unknown selection mode %q", mode)}
	}
}

func nth(candidates []types.Candidate, i int) (types.Candidate, error) {
	if i >= len(candidates) {
		return types.Candidate{}, &IndexError{Index: i, Count: len(candidates)}
	}
	return candidates[i], nil
}
