package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/logger"
)

const (
	monthPattern   = `(january|february|march|april|may|june|july|august|september|october|november|december|sept|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)`
	weekdayPattern = `(monday|tuesday|wednesday|thursday|friday|saturday|sunday|tues|thurs|thur|weds|mon|tue|wed|thu|fri|sat|sun)`
	dayPattern     = `(\d{1,2})(?:st|nd|rd|th)?`
	yearPattern    = `(?:,?\s+(\d{4}))?`
)

var (
	months   = buildMonths()
	weekdays = buildWeekdays()
)

// buildMonths maps full names and three-letter abbreviations, plus "sept".
func buildMonths() map[string]time.Month {
	out := make(map[string]time.Month)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		out[name] = m
		out[name[:3]] = m
	}
	out["sept"] = time.September
	return out
}

func buildWeekdays() map[string]time.Weekday {
	out := map[string]time.Weekday{
		"tues":  time.Tuesday,
		"weds":  time.Wednesday,
		"thur":  time.Thursday,
		"thurs": time.Thursday,
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		out[name] = wd
		out[name[:3]] = wd
	}
	return out
}

func compile(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}

// makeDate builds a calendar date, rejecting overflow such as 30 February.
func makeDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// inferDate resolves day and month against ref. Without an explicit year a
// date more than a day in the past rolls into the next year.
func inferDate(day int, month time.Month, year int, ref time.Time) (time.Time, bool) {
	if year > 0 {
		return makeDate(year, month, day, ref.Location())
	}

	d, ok := makeDate(ref.Year(), month, day, ref.Location())
	if ok && !d.Before(ref.AddDate(0, 0, -1)) {
		return d, true
	}
	return makeDate(ref.Year()+1, month, day, ref.Location())
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseYear(s string) int {
	if s == "" {
		return 0
	}
	y := atoi(s)
	if y < 100 {
		y += 2000
	}
	return y
}

// weekdayScored returns matchConf when the stated weekday agrees with the
// computed date and mismatchConf otherwise. Mismatches are logged.
func weekdayScored(s *scan, tag string, d time.Time, stated string, matchConf, mismatchConf float64) domain.DateCandidate {
	wd := weekdays[stated]
	if d.Weekday() == wd {
		return domain.DateCandidate{PatternTag: tag, Date: d, Confidence: matchConf}
	}

	s.log.Warn("weekday does not match date",
		logger.String("pattern", tag),
		logger.String("stated_weekday", wd.String()),
		logger.String("computed_weekday", d.Weekday().String()),
		logger.String("date", d.Format(time.DateOnly)),
	)
	return domain.DateCandidate{PatternTag: tag + "_mismatch", Date: d, Confidence: mismatchConf}
}

// nextWeekday returns the first date on or after ref (strictly after when
// strict is set) falling on wd.
func nextWeekday(ref time.Time, wd time.Weekday, strict bool) time.Time {
	delta := (int(wd) - int(ref.Weekday()) + 7) % 7
	if delta == 0 && strict {
		delta = 7
	}
	return ref.AddDate(0, 0, delta)
}
