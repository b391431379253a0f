// Package dateparse turns free-text date phrases into scored calendar
// date candidates and selects the most plausible one.
//
// Every pattern family is an independent function producing zero or more
// candidates. Candidates outside the validation window are dropped and
// the survivors are ranked by confidence, then by earliest date.
package dateparse

import (
	"sort"
	"strings"
	"time"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/logger"
)

// Confidence levels assigned by the pattern families.
const (
	ConfidenceWeekdayMatch    = 1.0
	ConfidenceDayMonth        = 0.95
	ConfidenceWeekdayMismatch = 0.9
	ConfidenceNumericYear     = 0.85
	ConfidenceNumericShort    = 0.75
	ConfidenceRelative        = 0.7
	ConfidenceWeekdayRef      = 0.65
	ConfidenceOrdinalDay      = 0.6
	ConfidenceBareWeekday     = 0.5
)

const (
	defaultPastTolerance = 24 * time.Hour
	defaultFutureWindow  = 90 * 24 * time.Hour
	hoursPerDay          = 24
)

// Parser extracts dates. It is safe for concurrent use.
type Parser struct {
	log           logger.Logger
	pastTolerance time.Duration
	futureWindow  time.Duration
}

// Option configures a Parser.
type Option func(*Parser)

// WithWindow overrides how far in the past and future a candidate may lie.
func WithWindow(past, future time.Duration) Option {
	return func(p *Parser) {
		if past > 0 {
			p.pastTolerance = past
		}
		if future > 0 {
			p.futureWindow = future
		}
	}
}

// New creates a Parser. A nil logger disables mismatch logging.
func New(log logger.Logger, opts ...Option) *Parser {
	if log == nil {
		log = logger.NewNop()
	}
	p := &Parser{
		log:           log,
		pastTolerance: defaultPastTolerance,
		futureWindow:  defaultFutureWindow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// scan is the per-call input shared by every family.
type scan struct {
	text string
	ref  time.Time
	log  logger.Logger
}

type family func(s *scan) []domain.DateCandidate

var families = []family{
	dayMonthWeekday,
	weekdayDayMonth,
	monthDayWeekday,
	dayMonth,
	monthDay,
	numericDate,
	weekdayNumeric,
	ordinalDay,
	relative,
}

// Candidates returns every valid candidate in ranked order.
func (p *Parser) Candidates(text string, ref time.Time) []domain.DateCandidate {
	s := &scan{text: strings.ToLower(text), ref: startOfDay(ref), log: p.log}

	var out []domain.DateCandidate
	for _, f := range families {
		for _, c := range f(s) {
			if p.valid(c.Date, s.ref) {
				out = append(out, c)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Best returns the winning candidate.
func (p *Parser) Best(text string, ref time.Time) (domain.DateCandidate, bool) {
	cands := p.Candidates(text, ref)
	if len(cands) == 0 {
		return domain.DateCandidate{}, false
	}
	return cands[0], true
}

// ParseDate returns the winning date, or the reference date at midnight
// when nothing in text parses.
func (p *Parser) ParseDate(text string, ref time.Time) time.Time {
	if c, ok := p.Best(text, ref); ok {
		return c.Date
	}
	return startOfDay(ref)
}

// valid checks the window in calendar days so DST shifts cannot move a
// boundary date in or out.
func (p *Parser) valid(d, ref time.Time) bool {
	lower := ref.AddDate(0, 0, -wholeDays(p.pastTolerance))
	upper := ref.AddDate(0, 0, wholeDays(p.futureWindow))
	return !d.Before(lower) && !d.After(upper)
}

func wholeDays(d time.Duration) int {
	return int(d / (hoursPerDay * time.Hour))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
