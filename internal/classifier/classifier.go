// Package classifier decides whether a post announces a free-food event
// on campus. Rejection rules are an ordered table of filters; the first
// filter that fires supplies the verdict.
package classifier

import (
	"regexp"

	"github.com/jonesrussell/freefood/internal/data"
	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/location"
	"github.com/jonesrussell/freefood/internal/logger"
)

// Filter names, in evaluation order.
const (
	FilterReligious    = "religious"
	FilterRecap        = "recap"
	FilterFood         = "food"
	FilterFoodActivity = "food_activity"
	FilterGiveaway     = "giveaway"
	FilterStaffOnly    = "staff_only"
	FilterOtherCollege = "other_college"
	FilterOffCampus    = "off_campus"
	FilterOnline       = "online"
	FilterPaid         = "paid"
	FilterNightlife    = "nightlife"
)

// Rejection reasons with fixed text.
const (
	ReasonReligious    = "Religious event excluded"
	ReasonRecap        = "Past-tense recap of a previous event"
	ReasonNoFood       = "No free food mentioned"
	ReasonFoodNegated  = "Food explicitly negated"
	ReasonFoodActivity = "Food-based activity rather than free food"
	ReasonGiveaway     = "Giveaway or contest"
	ReasonStaffOnly    = "Staff/committee-only event"
	ReasonOnline       = "Online event with no campus location"
)

var provisionOverride = regexp.MustCompile(
	`\b(?:we'?ll|we will|we're|we are)\s+(?:provide|providing|bring|bringing|supply|supplying)\b|\bwill be provided\b|\bfree food\b`)

// analysis is computed once per text and shared by every filter.
type analysis struct {
	text     string
	strong   bool
	weak     bool
	modifier bool
	negated  bool
	campus   bool
}

func analyze(normalized string) *analysis {
	return &analysis{
		text:     normalized,
		strong:   data.StrongFood().Contains(normalized),
		weak:     data.WeakFood().Contains(normalized),
		modifier: data.ContextModifiers().Contains(normalized),
		negated:  data.Negations().Contains(normalized),
		campus:   location.HasCampusMention(normalized),
	}
}

func (a *analysis) hasFood() bool {
	return a.strong || (a.weak && a.modifier)
}

type filter struct {
	name  string
	check func(c *Classifier, a *analysis) (string, bool)
}

// filters is evaluated top to bottom. Entries from FilterFoodActivity on
// are the hard filters an LLM escalation can never bypass.
var filters = []filter{
	{FilterReligious, phraseFilter(data.Religious, ReasonReligious)},
	{FilterRecap, phraseFilter(data.Recap, ReasonRecap)},
	{FilterFood, foodGate},
	{FilterFoodActivity, foodActivity},
	{FilterGiveaway, phraseFilter(data.Giveaway, ReasonGiveaway)},
	{FilterStaffOnly, phraseFilter(data.StaffOnly, ReasonStaffOnly)},
	{FilterOtherCollege, otherCollege},
	{FilterOffCampus, offCampus},
	{FilterOnline, online},
	{FilterPaid, func(c *Classifier, a *analysis) (string, bool) { return c.paidReason(a.text) }},
	{FilterNightlife, nightlife},
}

const hardFilterStart = 3

// FilterNames returns the filter names in evaluation order.
func FilterNames() []string {
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.name
	}
	return names
}

// Classifier is the rule-based classifier. It is safe for concurrent use.
type Classifier struct {
	paid PaidThresholds
	log  logger.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithPaidThresholds overrides the paid-event thresholds.
func WithPaidThresholds(t PaidThresholds) Option {
	return func(c *Classifier) {
		if t.LargePrice > 0 {
			c.paid.LargePrice = t.LargePrice
		}
		if t.MembershipCeiling > 0 {
			c.paid.MembershipCeiling = t.MembershipCeiling
		}
	}
}

// New creates a Classifier.
func New(log logger.Logger, opts ...Option) *Classifier {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Classifier{paid: DefaultPaidThresholds(), log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Evaluate normalizes raw text and runs every filter.
func (c *Classifier) Evaluate(text string) domain.Verdict {
	return c.EvaluateNormalized(Normalize(text))
}

// EvaluateNormalized runs every filter over already-normalized text.
func (c *Classifier) EvaluateNormalized(normalized string) domain.Verdict {
	v := c.run(analyze(normalized), filters)
	if !v.Accepted {
		c.log.Debug("post rejected",
			logger.String("filter", v.Filter),
			logger.String("reason", v.Reason),
		)
	}
	return v
}

// ClassifyEvent reports whether text announces a qualifying event.
func (c *Classifier) ClassifyEvent(text string) bool {
	return c.Evaluate(text).Accepted
}

// RejectionReason returns why text was rejected, or "Accepted".
func (c *Classifier) RejectionReason(text string) string {
	return c.Evaluate(text).Reason
}

// HardFilterVerdict runs only the hard filters over normalized text.
func (c *Classifier) HardFilterVerdict(normalized string) domain.Verdict {
	return c.run(analyze(normalized), filters[hardFilterStart:])
}

// IsGreyZone reports whether normalized text has only a weak food signal,
// with no strong keyword, modifier or negation, and clears every other
// filter. Such text may be escalated to the LLM.
func (c *Classifier) IsGreyZone(normalized string) bool {
	a := analyze(normalized)
	if !a.weak || a.strong || a.modifier || a.negated {
		return false
	}
	return c.clearsNonFoodFilters(a)
}

// VisionEligible reports whether the only objection to normalized text is
// the absence of any food wording, so an image might supply it.
func (c *Classifier) VisionEligible(normalized string) bool {
	a := analyze(normalized)
	if a.negated || a.hasFood() {
		return false
	}
	return c.clearsNonFoodFilters(a)
}

// MembersOnly reports a members-only restriction. It never rejects.
func (c *Classifier) MembersOnly(normalized string) bool {
	return data.MembersOnly().Contains(normalized)
}

func (c *Classifier) clearsNonFoodFilters(a *analysis) bool {
	for _, f := range filters {
		if f.name == FilterFood {
			continue
		}
		if _, rejected := f.check(c, a); rejected {
			return false
		}
	}
	return true
}

func (c *Classifier) run(a *analysis, table []filter) domain.Verdict {
	for _, f := range table {
		if reason, rejected := f.check(c, a); rejected {
			return domain.Reject(f.name, reason)
		}
	}
	return domain.Accept()
}
