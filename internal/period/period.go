// Package period parses statutory return period tokens into date ranges.
package period

import (
	"regexp"
	"strconv"
	"time"

	"gstsuite/internal/domain"
)

var (
	monthlyRe   = regexp.MustCompile(`^\d{6}$`)
	quarterlyRe = regexp.MustCompile(`^Q[1-4]-\d{4}$`)
)

// Period is an inclusive date range covering a full month or calendar quarter.
// End is the last instant of the final day.
type Period struct {
	Token     string
	Start     time.Time
	End       time.Time
	Quarterly bool
}

// IsValid reports whether token matches the period grammar. Pure regex check,
// never errors; Parse additionally rejects out-of-range months.
func IsValid(token string) bool {
	return monthlyRe.MatchString(token) || quarterlyRe.MatchString(token)
}

// Parse converts a period token (MMYYYY or Q[1-4]-YYYY) into a Period.
func Parse(token string) (*Period, error) {
	switch {
	case monthlyRe.MatchString(token):
		month, _ := strconv.Atoi(token[:2])
		year, _ := strconv.Atoi(token[2:])
		if month < 1 || month > 12 {
			return nil, domain.Validationf("invalid period %q: month out of range", token)
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return &Period{
			Token: token,
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
		}, nil

	case quarterlyRe.MatchString(token):
		quarter, _ := strconv.Atoi(token[1:2])
		year, _ := strconv.Atoi(token[3:])
		startMonth := time.Month((quarter-1)*3 + 1)
		start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
		return &Period{
			Token:     token,
			Start:     start,
			End:       start.AddDate(0, 3, 0).Add(-time.Nanosecond),
			Quarterly: true,
		}, nil

	default:
		return nil, domain.Validationf("invalid period %q: expected MMYYYY or Q[1-4]-YYYY", token)
	}
}
