package dateparse

import (
	"time"

	"github.com/jonesrussell/freefood/internal/domain"
)

var (
	reDayMonthWeekday = compile(`\b` + dayPattern + `\s+(?:of\s+)?` + monthPattern + `\b[,\s]*` + weekdayPattern + `\b`)
	reWeekdayDayMonth = compile(`\b` + weekdayPattern + `\b[,\s]+(?:the\s+)?` + dayPattern + `\s+(?:of\s+)?` + monthPattern + `\b`)
	reMonthDayWeekday = compile(`\b` + monthPattern + `\s+` + dayPattern + `\b[,\s]*` + weekdayPattern + `\b`)
	reWeekdayMonthDay = compile(`\b` + weekdayPattern + `\b[,\s]+` + monthPattern + `\s+` + dayPattern + `\b`)
	reDayMonth        = compile(`\b` + dayPattern + `\s+(?:of\s+)?` + monthPattern + `\b` + yearPattern)
	reMonthDay        = compile(`\b` + monthPattern + `\s+(?:the\s+)?` + dayPattern + `\b` + yearPattern)
	reNumericYear     = compile(`\b(\d{1,2})[/.-](\d{1,2})[/.-](\d{4}|\d{2})\b`)
	reNumericShort    = compile(`\b(\d{1,2})/(\d{1,2})\b`)
	reWeekdayNumeric  = compile(`\b` + weekdayPattern + `\b[,\s]+(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)
	reOrdinalDay      = compile(`\b(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)\b`)
	reOrdinalExcluded = compile(`^\s+(?:(?:of\s+)?` + monthPattern + `\b|(?:year|floor|place|edition|anniversary|birthday)s?\b)`)
	reToday           = compile(`\b(today|tonight|this evening|this afternoon|this morning)\b`)
	reTomorrow        = compile(`\b(tomorrow|tmrw|tmr)\b`)
	reWeekdayRef      = compile(`\b(this|next|coming)\s+` + weekdayPattern + `\b`)
	reBareWeekday     = compile(`\b` + weekdayPattern + `\b`)
)

// dayMonthWeekday: "23 february, monday".
func dayMonthWeekday(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reDayMonthWeekday.FindAllStringSubmatch(s.text, -1) {
		if d, ok := inferDate(atoi(m[1]), months[m[2]], 0, s.ref); ok {
			out = append(out, weekdayScored(s, "day_month_weekday", d, m[3], ConfidenceWeekdayMatch, ConfidenceWeekdayMismatch))
		}
	}
	return out
}

// weekdayDayMonth: "monday 23rd february".
func weekdayDayMonth(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reWeekdayDayMonth.FindAllStringSubmatch(s.text, -1) {
		if d, ok := inferDate(atoi(m[2]), months[m[3]], 0, s.ref); ok {
			out = append(out, weekdayScored(s, "weekday_day_month", d, m[1], ConfidenceWeekdayMatch, ConfidenceWeekdayMismatch))
		}
	}
	return out
}

// monthDayWeekday: "february 23, monday" and "monday, february 23".
func monthDayWeekday(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reMonthDayWeekday.FindAllStringSubmatch(s.text, -1) {
		if d, ok := inferDate(atoi(m[2]), months[m[1]], 0, s.ref); ok {
			out = append(out, weekdayScored(s, "month_day_weekday", d, m[3], ConfidenceWeekdayMatch, ConfidenceWeekdayMismatch))
		}
	}
	for _, m := range reWeekdayMonthDay.FindAllStringSubmatch(s.text, -1) {
		if d, ok := inferDate(atoi(m[3]), months[m[2]], 0, s.ref); ok {
			out = append(out, weekdayScored(s, "weekday_month_day", d, m[1], ConfidenceWeekdayMatch, ConfidenceWeekdayMismatch))
		}
	}
	return out
}

func dayMonth(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reDayMonth.FindAllStringSubmatch(s.text, -1) {
		if d, ok := inferDate(atoi(m[1]), months[m[2]], parseYear(m[3]), s.ref); ok {
			out = append(out, domain.DateCandidate{PatternTag: "day_month", Date: d, Confidence: ConfidenceDayMonth})
		}
	}
	return out
}

func monthDay(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reMonthDay.FindAllStringSubmatch(s.text, -1) {
		if d, ok := inferDate(atoi(m[2]), months[m[1]], parseYear(m[3]), s.ref); ok {
			out = append(out, domain.DateCandidate{PatternTag: "month_day", Date: d, Confidence: ConfidenceDayMonth})
		}
	}
	return out
}

// numericDate reads day-first numeric dates: 23/02/2026, 23-02-26, 23/02.
func numericDate(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reNumericYear.FindAllStringSubmatch(s.text, -1) {
		if d, ok := makeDate(parseYear(m[3]), time.Month(atoi(m[2])), atoi(m[1]), s.ref.Location()); ok {
			out = append(out, domain.DateCandidate{PatternTag: "numeric_dmy", Date: d, Confidence: ConfidenceNumericYear})
		}
	}
	for _, loc := range reNumericShort.FindAllStringSubmatchIndex(s.text, -1) {
		if partOfLongerNumber(s.text, loc[0], loc[1]) {
			continue
		}
		day, month := atoi(s.text[loc[2]:loc[3]]), atoi(s.text[loc[4]:loc[5]])
		if d, ok := inferDate(day, time.Month(month), 0, s.ref); ok {
			out = append(out, domain.DateCandidate{PatternTag: "numeric_dm", Date: d, Confidence: ConfidenceNumericShort})
		}
	}
	return out
}

// partOfLongerNumber reports whether text[start:end] is glued to a further
// "/" segment, as in the first two parts of 23/02/2026.
func partOfLongerNumber(text string, start, end int) bool {
	if end < len(text) && text[end] == '/' {
		return true
	}
	return start > 0 && text[start-1] == '/'
}

// weekdayNumeric: "mon 23/02" scored on weekday agreement.
func weekdayNumeric(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, m := range reWeekdayNumeric.FindAllStringSubmatch(s.text, -1) {
		d, ok := inferDate(atoi(m[2]), time.Month(atoi(m[3])), parseYear(m[4]), s.ref)
		if !ok {
			continue
		}
		out = append(out, weekdayScored(s, "weekday_numeric", d, m[1], ConfidenceNumericYear, ConfidenceNumericShort))
	}
	return out
}

// ordinalDay: "the 5th" in the reference month, or the next month once
// that day has passed.
func ordinalDay(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	for _, loc := range reOrdinalDay.FindAllStringSubmatchIndex(s.text, -1) {
		if reOrdinalExcluded.MatchString(s.text[loc[1]:]) {
			continue
		}
		day := atoi(s.text[loc[2]:loc[3]])

		d, ok := makeDate(s.ref.Year(), s.ref.Month(), day, s.ref.Location())
		if !ok || d.Before(s.ref.AddDate(0, 0, -1)) {
			next := s.ref.AddDate(0, 1, 1-s.ref.Day())
			d, ok = makeDate(next.Year(), next.Month(), day, s.ref.Location())
		}
		if ok {
			out = append(out, domain.DateCandidate{PatternTag: "ordinal_day", Date: d, Confidence: ConfidenceOrdinalDay})
		}
	}
	return out
}

func relative(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	if reToday.MatchString(s.text) {
		out = append(out, domain.DateCandidate{PatternTag: "today", Date: s.ref, Confidence: ConfidenceRelative})
	}
	if reTomorrow.MatchString(s.text) {
		out = append(out, domain.DateCandidate{PatternTag: "tomorrow", Date: s.ref.AddDate(0, 0, 1), Confidence: ConfidenceRelative})
	}
	for _, m := range reWeekdayRef.FindAllStringSubmatch(s.text, -1) {
		d := nextWeekday(s.ref, weekdays[m[2]], m[1] != "this")
		out = append(out, domain.DateCandidate{PatternTag: m[1] + "_weekday", Date: d, Confidence: ConfidenceWeekdayRef})
	}
	out = append(out, bareWeekdays(s)...)
	return out
}

func bareWeekdays(s *scan) []domain.DateCandidate {
	var out []domain.DateCandidate
	seen := make(map[time.Weekday]bool)
	for _, m := range reBareWeekday.FindAllStringSubmatch(s.text, -1) {
		wd := weekdays[m[1]]
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, domain.DateCandidate{
			PatternTag: "weekday",
			Date:       nextWeekday(s.ref, wd, false),
			Confidence: ConfidenceBareWeekday,
		})
	}
	return out
}
