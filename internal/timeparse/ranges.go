package timeparse

import "github.com/jonesrussell/freefood/internal/domain"

type rangeCand = scored[domain.TimeRange]

func ranges(text string) []rangeCand {
	var out []rangeCand
	add := func(start, end domain.TimeCandidate, conf float64, pos int) {
		if !start.Valid() || !end.Valid() || start.Minutes() > end.Minutes() {
			return
		}
		out = append(out, rangeCand{value: domain.TimeRange{Start: &start, End: &end}, confidence: conf, pos: pos})
	}

	for _, m := range reRange.FindAllStringSubmatchIndex(text, -1) {
		if glued(text, m[0]) {
			continue
		}
		startMin, endMin := group(text, m, 2), group(text, m, 5)
		endHour, ok := meridiemHour(atoi(group(text, m, 4)), group(text, m, 6))
		if !ok {
			continue
		}
		bothMinutes := startMin != "" && endMin != ""

		var startHour int
		var conf float64
		var tag string
		if marker := group(text, m, 3); marker != "" {
			if startHour, ok = meridiemHour(atoi(group(text, m, 1)), marker); !ok {
				continue
			}
			conf, tag = ConfidenceRangeMeridiem, "range_meridiem"
			if bothMinutes {
				conf, tag = ConfidenceRangeFull, "range_full"
			}
		} else {
			if notClock(text, m[0]) {
				continue
			}
			startHour = sharedMeridiemStart(atoi(group(text, m, 1)), atoi(startMin), group(text, m, 6) == "p", endHour*60+atoi(endMin))
			conf, tag = ConfidenceRangeShared, "range_shared"
			if bothMinutes {
				conf, tag = ConfidenceRangeSharedFull, "range_shared_full"
			}
		}

		add(candidate(tag, startHour, atoi(startMin), conf), candidate(tag, endHour, atoi(endMin), conf), conf, m[0])
	}

	for _, m := range reRange24h.FindAllStringSubmatchIndex(text, -1) {
		start := candidate("range_24h", atoi(group(text, m, 1)), atoi(group(text, m, 2)), ConfidenceRange24h)
		end := candidate("range_24h", atoi(group(text, m, 3)), atoi(group(text, m, 4)), ConfidenceRange24h)
		add(start, end, ConfidenceRange24h, m[0])
	}

	for _, m := range reRangeAmbiguous.FindAllStringSubmatchIndex(text, -1) {
		if reFollowMeridiem.MatchString(text[m[1]:]) {
			continue
		}
		sh, eh := atoi(group(text, m, 1)), atoi(group(text, m, 3))
		if sh < 1 || sh > noon || eh < 1 || eh > noon {
			continue
		}
		endMin := atoi(group(text, m, 4))
		end := candidate(TagAmbiguous, To24Hour(eh, true), endMin, ConfidenceRangeAmbiguous)
		startMin := atoi(group(text, m, 2))
		start := candidate(TagAmbiguous, sharedMeridiemStart(sh, startMin, true, end.Minutes()), startMin, ConfidenceRangeAmbiguous)
		add(start, end, ConfidenceRangeAmbiguous, m[0])
	}

	return out
}

// sharedMeridiemStart applies the end's meridiem to the start hour; a PM
// start later than the end is read as AM ("11-1pm"). Hours above 12 are
// already 24-hour.
func sharedMeridiemStart(hour, minute int, pm bool, endMinutes int) int {
	if hour > noon {
		return hour
	}
	h := To24Hour(hour, pm)
	if pm && h*60+minute > endMinutes {
		return To24Hour(hour, false)
	}
	return h
}
