// Package temporal turns the date-like strings found in resumes into
// canonical (year, month) values and derives durations from them.
package temporal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layout is the canonical external representation of a Date.
const Layout = "2006-01"

// Present is the canonical marker for an open-ended range.
const Present = "Present"

var now = time.Now

var (
	isoRe       = regexp.MustCompile(`^(\d{4})-(\d{2})(?:-\d{2})?$`)
	slashRe     = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	monthNameRe = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{4})$`)
	yearRe      = regexp.MustCompile(`^(\d{4})$`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"jun": time.June, "jul": time.July, "aug": time.August, "sep": time.September,
	"sept": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// Date is a calendar month. Month is always in the 1..12 range.
type Date struct {
	Year  int
	Month time.Month
}

// String formats the date as YYYY-MM.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
}

// months returns the absolute month index used for subtraction.
func (d Date) months() int {
	return d.Year*12 + int(d.Month) - 1
}

// MonthsUntil returns the number of whole calendar months from d to end.
// The result may be negative.
func (d Date) MonthsUntil(end Date) int {
	return end.months() - d.months()
}

// ParseDate parses text in one of the supported resume formats, tried in order:
// YYYY-MM[-DD], MM/YYYY, "<Month> YYYY", bare YYYY and finally a generic parse.
// The second return value is false when the text is not a recognisable date,
// which callers treat as an unknown boundary.
func ParseDate(text string) (Date, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, false
	}

	if m := isoRe.FindStringSubmatch(text); m != nil {
		if d, ok := build(m[1], m[2]); ok {
			return d, true
		}
	}

	if m := slashRe.FindStringSubmatch(text); m != nil {
		if d, ok := build(m[2], m[1]); ok {
			return d, true
		}
	}

	if m := monthNameRe.FindStringSubmatch(text); m != nil {
		if month, ok := monthNames[strings.ToLower(m[1])]; ok {
			year, _ := strconv.Atoi(m[2])
			return Date{Year: year, Month: month}, true
		}
	}

	if m := yearRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		return Date{Year: year, Month: time.January}, true
	}

	parsed, err := dateparse.ParseAny(text)
	if err != nil {
		return Date{}, false
	}

	return Date{Year: parsed.Year(), Month: parsed.Month()}, true
}

func build(year, month string) (Date, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Date{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Date{}, false
	}
	return Date{Year: y, Month: time.Month(m)}, true
}

// IsOpenEnded reports whether an end date denotes ongoing employment.
func IsOpenEnded(end string) bool {
	switch strings.ToLower(strings.TrimSpace(end)) {
	case "", "present", "current":
		return true
	default:
		return false
	}
}

// Normalize rewrites a parseable date to YYYY-MM and an open-ended end marker
// to "Present". Unparseable text is returned trimmed but otherwise untouched.
func Normalize(text string, isEnd bool) string {
	if isEnd && IsOpenEnded(text) {
		return Present
	}
	if d, ok := ParseDate(text); ok {
		return d.String()
	}
	return strings.TrimSpace(text)
}

// Today returns the current month.
func Today() Date {
	t := now()
	return Date{Year: t.Year(), Month: t.Month()}
}

// monthsBetween resolves both boundaries and returns the month delta.
// Open-ended ends resolve to the current month.
func monthsBetween(start, end string) (int, bool) {
	from, ok := ParseDate(start)
	if !ok {
		return 0, false
	}

	to := Today()
	if !IsOpenEnded(end) {
		to, ok = ParseDate(end)
		if !ok {
			return 0, false
		}
	}

	return from.MonthsUntil(to), true
}

// Duration renders the span between start and end as "N months",
// "N years" or "N years M months". An empty string is returned when either
// boundary cannot be parsed. Negative spans are clamped to zero months.
func Duration(start, end string) string {
	months, ok := monthsBetween(start, end)
	if !ok {
		return ""
	}
	return FormatMonths(months)
}

// FormatMonths renders a month count the way Duration does.
func FormatMonths(months int) string {
	if months < 0 {
		months = 0
	}

	years := months / 12
	rest := months % 12

	switch {
	case years == 0:
		return plural(rest, "month")
	case rest == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(rest, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Span is a start/end pair as found on an experience entry.
type Span struct {
	Start string
	End   string
}

// TotalExperience sums the month spans of all entries, flooring each at zero,
// and returns the total in years rounded half-up to one decimal place.
// Overlapping entries are counted in full.
func TotalExperience(spans []Span) float64 {
	total := 0
	for _, span := range spans {
		months, ok := monthsBetween(span.Start, span.End)
		if !ok || months < 0 {
			continue
		}
		total += months
	}

	return RoundTenth(float64(total) / 12)
}

// RoundTenth rounds a non-negative value half-up to one decimal place.
func RoundTenth(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Floor(v*10+0.5) / 10
}
