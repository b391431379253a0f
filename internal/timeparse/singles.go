package timeparse

import "github.com/jonesrussell/freefood/internal/domain"

type single = scored[domain.TimeCandidate]

func singles(text string) []single {
	var out []single
	add := func(c domain.TimeCandidate, pos int) {
		if c.Valid() {
			out = append(out, single{value: c, confidence: c.Confidence, pos: pos})
		}
	}

	for _, m := range reMinutesMeridiem.FindAllStringSubmatchIndex(text, -1) {
		if glued(text, m[0]) {
			continue
		}
		h, ok := meridiemHour(atoi(group(text, m, 1)), group(text, m, 3))
		if ok {
			add(candidate("12h_minutes", h, atoi(group(text, m, 2)), ConfidenceMinutesMeridiem), m[0])
		}
	}

	for _, m := range reHourMeridiem.FindAllStringSubmatchIndex(text, -1) {
		if glued(text, m[0]) {
			continue
		}
		if h, ok := meridiemHour(atoi(group(text, m, 1)), group(text, m, 2)); ok {
			add(candidate("12h", h, 0, ConfidenceHourMeridiem), m[0])
		}
	}

	for _, m := range reStrict24h.FindAllStringSubmatchIndex(text, -1) {
		if reFollowMeridiem.MatchString(text[m[1]:]) {
			continue
		}
		add(candidate("24h", atoi(group(text, m, 1)), atoi(group(text, m, 2)), ConfidenceStrict24h), m[0])
	}

	for _, m := range reLooseClock.FindAllStringSubmatchIndex(text, -1) {
		if glued(text, m[0]) || reFollowMeridiem.MatchString(text[m[1]:]) {
			continue
		}
		h, minute := atoi(group(text, m, 1)), atoi(group(text, m, 2))
		if h > noon {
			add(candidate("24h_loose", h, minute, ConfidenceLoose24h), m[0])
			continue
		}
		if h >= 1 {
			add(candidate(TagAmbiguous, To24Hour(h, true), minute, ConfidenceAmbiguous12h), m[0])
		}
	}

	for _, m := range reKeyword.FindAllStringSubmatchIndex(text, -1) {
		h := noon
		if group(text, m, 1) == "midnight" {
			h = 0
		}
		add(candidate(group(text, m, 1), h, 0, ConfidenceKeyword), m[0])
	}

	return out
}

// meridiemHour converts a 1-12 hour with an "a" or "p" marker.
func meridiemHour(hour int, marker string) (int, bool) {
	if hour < 1 || hour > noon {
		return 0, false
	}
	return To24Hour(hour, marker == "p"), true
}
