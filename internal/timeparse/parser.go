// Package timeparse extracts clock times and time ranges from free text.
package timeparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonesrussell/freefood/internal/domain"
)

// Confidence levels per pattern family.
const (
	ConfidenceRangeFull       = 1.0
	ConfidenceRangeMeridiem   = 0.95
	ConfidenceRangeSharedFull = 0.9
	ConfidenceRangeShared     = 0.85
	ConfidenceRange24h        = 0.8
	ConfidenceRangeAmbiguous  = 0.7
	ConfidenceMinutesMeridiem = 0.9
	ConfidenceHourMeridiem    = 0.85
	ConfidenceStrict24h       = 0.8
	ConfidenceLoose24h        = 0.75
	ConfidenceAmbiguous12h    = 0.7
	ConfidenceKeyword         = 0.7
)

// TagAmbiguous marks an H:MM time that was assumed to be PM.
const TagAmbiguous = "ambiguous_12h"

const (
	meridiem = `([ap])\.?m\b\.?`
	sep      = `\s*(?:-|–|—|to|until|till|til)\s*`
	noon     = 12
)

var (
	reRange = regexp.MustCompile(`\b(\d{1,2})(?:[:.](\d{2}))?\s*(?:` + meridiem + `)?` + sep +
		`(\d{1,2})(?:[:.](\d{2}))?\s*` + meridiem)

	reRange24h       = regexp.MustCompile(`\b([01]\d|2[0-3]):([0-5]\d)` + sep + `([01]\d|2[0-3]):([0-5]\d)\b`)
	reRangeAmbiguous = regexp.MustCompile(`\b(\d{1,2}):(\d{2})` + sep + `(\d{1,2}):(\d{2})\b`)

	reMinutesMeridiem = regexp.MustCompile(`\b(\d{1,2})[:.](\d{2})\s*` + meridiem)
	reHourMeridiem    = regexp.MustCompile(`\b(\d{1,2})\s*` + meridiem)
	reStrict24h       = regexp.MustCompile(`\b([01]\d|2[0-3]):([0-5]\d)\b`)
	reLooseClock      = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	reFollowMeridiem  = regexp.MustCompile(`^\s*[ap]\.?m\b`)
	reKeyword         = regexp.MustCompile(`\b(noon|midday|midnight)\b`)

	// A bare number right after one of these is a date day or a price.
	reNotClockBefore = regexp.MustCompile(`(?i)(?:[/-]|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?\s+|[€$£]\s*|\beur\s*)$`)
)

// To24Hour converts a 12-hour clock hour: 12 AM is 0, 12 PM is 12.
func To24Hour(hour int, pm bool) int {
	switch {
	case hour == noon && !pm:
		return 0
	case hour == noon && pm:
		return noon
	case pm:
		return hour + noon
	default:
		return hour
	}
}

// scored keeps the match position for earliest-first tie breaking.
type scored[T any] struct {
	value      T
	confidence float64
	pos        int
}

// rank orders by confidence, then by earliest position.
func rank[T any](cands []scored[T]) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].confidence != cands[j].confidence {
			return cands[i].confidence > cands[j].confidence
		}
		return cands[i].pos < cands[j].pos
	})
}

func best[T any](cands []scored[T]) (T, bool) {
	var zero T
	if len(cands) == 0 {
		return zero, false
	}
	rank(cands)
	return cands[0].value, true
}

// ParseTime returns the most confident single time in text, or nil.
func ParseTime(text string) *domain.TimeCandidate {
	c, ok := best(singles(strings.ToLower(text)))
	if !ok {
		return nil
	}
	return &c
}

// ParseTimeRange returns the most confident explicit range. When no range
// is present it falls back to ParseTime with a nil End.
func ParseTimeRange(text string) *domain.TimeRange {
	lower := strings.ToLower(text)
	if r, ok := best(ranges(lower)); ok {
		return &r
	}
	if c, ok := best(singles(lower)); ok {
		return &domain.TimeRange{Start: &c}
	}
	return nil
}

// Candidates returns every valid single-time candidate, ranked.
func Candidates(text string) []domain.TimeCandidate {
	cands := singles(strings.ToLower(text))
	rank(cands)
	out := make([]domain.TimeCandidate, len(cands))
	for i, c := range cands {
		out[i] = c.value
	}
	return out
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

func candidate(tag string, hour, minute int, conf float64) domain.TimeCandidate {
	return domain.TimeCandidate{PatternTag: tag, Hour: hour, Minute: minute, Confidence: conf}
}

// group returns submatch n of m, or "" when it did not participate.
func group(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

// glued reports whether the match at pos continues a number such as the
// minutes of "1:05pm".
func glued(text string, pos int) bool {
	return pos > 0 && (text[pos-1] == ':' || text[pos-1] == '.')
}

func notClock(text string, pos int) bool {
	return reNotClockBefore.MatchString(text[:pos])
}
