package selection

import "strings"

// Period is a Bikram Sambat month name as it appears in report titles.
type Period string

// The twelve months in calendar order.
const (
	Baisakh Period = "BAISAKH"
	Jestha  Period = "JESTHA"
	Ashad   Period = "ASHAD"
	Shravan Period = "SHRAVAN"
	Bhadra  Period = "BHADRA"
	Ashwin  Period = "ASHWIN"
	Kartik  Period = "KARTIK"
	Mangsir Period = "MANGSIR"
	Poush   Period = "POUSH"
	Magh    Period = "MAGH"
	Falgun  Period = "FALGUN"
	Chaitra Period = "CHAITRA"
)

// Periods lists every month in calendar order, Baisakh first.
var Periods = [12]Period{
	Baisakh, Jestha, Ashad, Shravan, Bhadra, Ashwin,
	Kartik, Mangsir, Poush, Magh, Falgun, Chaitra,
}

// Number returns the calendar month number (Baisakh=1), or 0 for an unknown period.
func (p Period) Number() int {
	for i, q := range Periods {
		if q == p {
			return i + 1
		}
	}
	return 0
}

// FiscalIndex returns the position within Nepal's fiscal year, which opens in
// Shravan (0) and closes in Ashad (11). Unknown periods return -1.
func (p Period) FiscalIndex() int {
	n := p.Number()
	if n == 0 {
		return -1
	}
	return (n - Shravan.Number() + 12) % 12
}

// ParsePeriod matches a whole month name, ignoring case and surrounding space.
func ParsePeriod(s string) (Period, bool) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	if p.Number() == 0 {
		return "", false
	}
	return p, true
}

// MatchPeriod finds a period token inside title, ignoring case. When several
// tokens occur, the one starting last in the title wins.
func MatchPeriod(title string) (Period, bool) {
	upper := strings.ToUpper(title)

	var found Period
	pos := -1
	for _, p := range Periods {
		if i := strings.LastIndex(upper, string(p)); i > pos {
			found, pos = p, i
		}
	}
	return found, pos >= 0
}
