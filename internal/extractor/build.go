package extractor

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jonesrussell/freefood/internal/classifier"
	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/timeparse"
)

const (
	maxDescriptionChars = 500
	minTitleChars       = 4
	maxTitleChars       = 80
	minTitleLetters     = 3
	genericTitle        = "Free Food Event"

	confidenceRuleComplete = 1.0
	confidenceRulePartial  = 0.8
	confidenceLLMComplete  = 0.7
	confidenceLLMPartial   = 0.5

	hoursPerHalfDay = 12
	firstMorningAM  = 8
	lastMorningAM   = 11
)

func (e *EventExtractor) build(post domain.Post, esc escalation) (*domain.ExtractionResult, domain.Verdict) {
	clean := classifier.Clean(esc.text)
	ref := e.reference(post)

	date := startOfDay(ref)
	cand, dateFound := e.dates.Best(clean, ref)
	if dateFound {
		date = cand.Date
	}

	var startTC, endTC *domain.TimeCandidate
	if tr := timeparse.ParseTimeRange(clean); tr != nil {
		startTC, endTC = tr.Start, tr.End
		if post.PostTimestamp != nil && sameDay(date, ref) {
			startTC, endTC = resolveMeridiem(startTC, endTC, date, ref)
		}
	}
	if startTC == nil && esc.hint != nil && esc.hint.Time != nil {
		startTC = parseClock(*esc.hint.Time)
	}

	place := e.places.Extract(clean)
	if place == nil && esc.hint != nil && esc.hint.Location != nil {
		place = &domain.Location{Building: *esc.hint.Location, FullLocation: *esc.hint.Location}
	}

	hour, minute := e.cfg.DefaultHour, 0
	if startTC != nil {
		hour, minute = startTC.Hour, startTC.Minute
	}
	startTime := at(date, hour, minute)
	if startTime.Before(e.now().In(e.cfg.Location).Add(-e.cfg.PastTolerance)) {
		return nil, domain.Reject(FilterPastDate, ReasonPastDate)
	}

	result := &domain.ExtractionResult{
		ID:              post.ID,
		Title:           title(post.Text, place),
		Description:     truncate(clean, maxDescriptionChars),
		StartTime:       startTime,
		ConfidenceScore: confidence(startTC != nil, place != nil, esc.llmAssisted()),
		RawText:         post.Text,
		SourceType:      post.SourceType,
		ExtractedData: domain.ExtractedData{
			TimeFound:     startTC != nil,
			DateFound:     dateFound,
			LocationFound: place != nil,
			MembersOnly:   e.rules.MembersOnly(strings.ToLower(clean)),
			LLMAssisted:   esc.llmAssisted(),
			StageReached:  esc.stage,
		},
	}
	if endTC != nil {
		end := at(date, endTC.Hour, endTC.Minute)
		result.EndTime = &end
	}
	if place != nil {
		result.Location = place.FullLocation
		result.LocationBuilding = place.Building
		result.LocationRoom = place.Room
	}
	return result, domain.Accept()
}

// reference is the post time in local time, or now when the post is
// undated.
func (e *EventExtractor) reference(post domain.Post) time.Time {
	if post.PostTimestamp != nil {
		return post.PostTimestamp.In(e.cfg.Location)
	}
	return e.now().In(e.cfg.Location)
}

// resolveMeridiem re-reads an ambiguous clock time on the day of posting.
// The PM reading is the default; the AM reading competes only for 8-11,
// and the earliest reading still ahead of the post wins.
func resolveMeridiem(start, end *domain.TimeCandidate, date, ref time.Time) (*domain.TimeCandidate, *domain.TimeCandidate) {
	if start == nil || start.PatternTag != timeparse.TagAmbiguous {
		return start, end
	}
	amHour := start.Hour - hoursPerHalfDay
	if amHour < firstMorningAM || amHour > lastMorningAM {
		return start, end
	}
	if !at(date, amHour, start.Minute).After(ref) {
		return start, end
	}

	am := *start
	am.Hour = amHour
	if end != nil && end.Hour > hoursPerHalfDay {
		shifted := *end
		shifted.Hour -= hoursPerHalfDay
		end = &shifted
	}
	return &am, end
}

// parseClock reads an "HH:MM" hint.
func parseClock(s string) *domain.TimeCandidate {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return nil
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return nil
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return nil
	}
	tc := &domain.TimeCandidate{PatternTag: "llm_hint", Hour: hour, Minute: minute}
	if !tc.Valid() {
		return nil
	}
	return tc
}

func confidence(timeFound, placeFound, llm bool) float64 {
	complete := timeFound && placeFound
	switch {
	case complete && !llm:
		return confidenceRuleComplete
	case !llm:
		return confidenceRulePartial
	case complete:
		return confidenceLLMComplete
	default:
		return confidenceLLMPartial
	}
}

// title uses the first line of the post when it reads like a heading.
func title(text string, place *domain.Location) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if plausibleTitle(line) {
			return classifier.Clean(line)
		}
		break
	}
	if place != nil && place.Building != "" {
		return fmt.Sprintf("Free Food at %s", place.Building)
	}
	return genericTitle
}

func plausibleTitle(line string) bool {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "http") {
		return false
	}
	clean := classifier.Clean(line)
	n := utf8.RuneCountInString(clean)
	if n < minTitleChars || n > maxTitleChars {
		return false
	}
	letters := 0
	for _, r := range clean {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= minTitleLetters
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func at(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

func startOfDay(t time.Time) time.Time {
	return at(t, 0, 0)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
