package classifier

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jonesrussell/freefood/internal/data"
)

// Default paid-event thresholds in euro.
const (
	DefaultLargePriceThreshold    = 10.0
	DefaultMembershipPriceCeiling = 5.0
)

var (
	pricePattern    = regexp.MustCompile(`\beur\s?(\d+(?:\.\d{1,2})?)\b|\b(\d+(?:\.\d{1,2})?)\s?(?:eur|euro|euros)\b`)
	freeFoodPattern = regexp.MustCompile(
		`\bfree\s+(?:food|pizzas?|lunch|breakfast|dinner|snacks|refreshments|coffee|tea|cake|drinks|bbq|sandwiches)\b`)
)

// PaidThresholds tunes the paid-event scorer.
type PaidThresholds struct {
	// LargePrice rejects any amount at or above it unless free food is explicit.
	LargePrice float64
	// MembershipCeiling allows membership fees up to and including it.
	MembershipCeiling float64
}

// DefaultPaidThresholds returns the default thresholds.
func DefaultPaidThresholds() PaidThresholds {
	return PaidThresholds{
		LargePrice:        DefaultLargePriceThreshold,
		MembershipCeiling: DefaultMembershipPriceCeiling,
	}
}

// paidReason scores price signals. The order matters: food sales and
// ticketing reject before any amount is considered.
func (c *Classifier) paidReason(text string) (string, bool) {
	if m, ok := data.FoodSale().Find(text); ok {
		return "Paid event: food sale (" + m.Phrase + ")", true
	}
	if data.FreeOverride().Contains(text) {
		return "", false
	}
	if m, ok := data.TicketLanguage().Find(text); ok {
		return "Paid event: ticketed (" + m.Phrase + ")", true
	}

	highest, found := maxPrice(text)
	if !found {
		return "", false
	}

	if data.MembershipContext().Contains(text) && highest <= c.paid.MembershipCeiling {
		return "", false
	}

	if highest >= c.paid.LargePrice {
		if freeFoodPattern.MatchString(text) {
			return "", false
		}
		return fmt.Sprintf("Paid event: price EUR%.2f", highest), true
	}

	if highest > 0 && !data.ProvisionPhrases().Contains(text) && !freeFoodPattern.MatchString(text) {
		return fmt.Sprintf("Paid event: price EUR%.2f with no food provision", highest), true
	}
	return "", false
}

// maxPrice returns the largest euro amount mentioned.
func maxPrice(text string) (float64, bool) {
	var highest float64
	found := false
	for _, m := range pricePattern.FindAllStringSubmatch(text, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if !found || v > highest {
			highest = v
		}
		found = true
	}
	return highest, found
}
