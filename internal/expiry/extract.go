package expiry

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// handler converts one match's capture groups (without the full-match
// group) into a calendar date. Returning ok=false silently skips the match
// and scanning continues; no handler holds state.
type handler func(groups []string) (time.Time, bool)

// shape pairs a date pattern with the handler that interprets its groups.
type shape struct {
	re      *regexp.Regexp
	resolve handler
}

const (
	monthAlt   = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`
	keywordAlt = `EXP|Expiry|Best Before|Use By|BB|Sell By|MFG|Manufactured`
)

// shapes is the ordered pattern library. Every pattern is scanned for all
// of its non-overlapping occurrences; the ordering only fixes the order in
// which candidates are produced (and therefore tie-breaking downstream).
var shapes = []shape{
	// D-M-Y or M-D-Y with 2-4 digit years; field order resolved by the
	// day-first preference rule in resolveNumeric.
	{regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})\b`), resolveNumeric},
	// ISO-ordered with an unambiguous 4-digit leading year.
	{regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\b`), resolveISO},
	// Dotted numeric day-month-year.
	{regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`), resolveNumeric},
	// "5th Jan 2026" with optional ordinal suffix and month abbreviation dot.
	{regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:st|nd|rd|th)?\s*(` + monthAlt + `)[a-z]*\.?\s*(\d{4})\b`), resolveDayMonthName},
	// "Jan 5, 2026" / "January 5th 2026".
	{regexp.MustCompile(`(?i)\b(` + monthAlt + `)[a-z]*\.?\s*(\d{1,2})(?:st|nd|rd|th)?[,.\s]*(\d{4})\b`), resolveMonthNameDay},
	// Label keyword followed by a numeric date.
	{regexp.MustCompile(`(?i)(?:` + keywordAlt + `)\s*[:=]?\s*(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})`), resolveNumeric},
	// Label keyword followed by an ISO-ordered date.
	{regexp.MustCompile(`(?i)(?:EXP|Expiry|Best Before|Use By)\s*[:=]?\s*(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`), resolveISO},
}

// monthNumbers maps lower-cased three-letter month abbreviations.
var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ExtractCandidates scans recognized text with the full pattern library
// and returns every candidate that forms a valid calendar date within the
// plausibility window. Candidates appear in pattern order, then text
// order; duplicates from overlapping patterns are kept (selection breaks
// ties by first occurrence). Empty or unmatchable text yields nil.
func ExtractCandidates(text string) []DateCandidate {
	var candidates []DateCandidate
	for _, s := range shapes {
		for _, m := range s.re.FindAllStringSubmatch(text, -1) {
			date, ok := s.resolve(m[1:])
			if !ok {
				continue
			}
			candidates = append(candidates, DateCandidate{
				Date:       date,
				Raw:        m[0],
				Confidence: baseConfidence,
			})
		}
	}
	return candidates
}

// resolveNumeric interprets a three-group numeric date whose year is the
// trailing group. When both orderings are numerically valid the day-first
// reading wins: with a-b-year, a is taken as the day whenever 1<=a<=31 and
// 1<=b<=12, otherwise the fields swap. US month-first labels where both
// readings are valid therefore resolve day-first; that bias is accepted
// rather than guessing locale.
func resolveNumeric(groups []string) (time.Time, bool) {
	a, b := atoi(groups[0]), atoi(groups[1])
	year := normalizeYear(atoi(groups[2]))

	var day, month int
	if a >= 1 && a <= 31 && b >= 1 && b <= 12 {
		day, month = a, b
	} else {
		day, month = b, a
	}
	return makeDate(year, month, day)
}

// resolveISO interprets year-month-day groups with a 4-digit year.
func resolveISO(groups []string) (time.Time, bool) {
	return makeDate(atoi(groups[0]), atoi(groups[1]), atoi(groups[2]))
}

// resolveDayMonthName interprets day, month-name, year groups.
func resolveDayMonthName(groups []string) (time.Time, bool) {
	month, ok := monthNumber(groups[1])
	if !ok {
		return time.Time{}, false
	}
	return makeDate(atoi(groups[2]), month, atoi(groups[0]))
}

// resolveMonthNameDay interprets month-name, day, year groups.
func resolveMonthNameDay(groups []string) (time.Time, bool) {
	month, ok := monthNumber(groups[0])
	if !ok {
		return time.Time{}, false
	}
	return makeDate(atoi(groups[2]), month, atoi(groups[1]))
}

// monthNumber maps a month name through its lower-cased three-letter
// abbreviation. Unrecognized abbreviations invalidate the match.
func monthNumber(name string) (int, bool) {
	abbr := strings.ToLower(name)
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	n, ok := monthNumbers[abbr]
	return n, ok
}

// normalizeYear maps two-digit years onto their century: values below 50
// land in 2000-2049, values 50-99 in 1950-1999. Longer years pass through.
func normalizeYear(year int) int {
	if year < 50 {
		return 2000 + year
	}
	if year < 100 {
		return 1900 + year
	}
	return year
}

// makeDate constructs a UTC calendar date, rejecting impossible dates
// (Feb 30, month 13) and years outside the plausibility window.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < minPlausibleYear || year > maxPlausibleYear {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// atoi converts a digits-only capture group; the patterns guarantee the
// input parses.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
