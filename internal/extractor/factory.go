package extractor

import (
	"fmt"

	"github.com/jonesrussell/freefood/internal/classifier"
	"github.com/jonesrussell/freefood/internal/config"
	"github.com/jonesrussell/freefood/internal/dateparse"
	"github.com/jonesrussell/freefood/internal/location"
	"github.com/jonesrussell/freefood/internal/logger"
)

// NewFromConfig builds an extractor with every rule component configured
// from cfg. Pass WithFallback to enable escalation.
func NewFromConfig(cfg *config.Config, log logger.Logger, opts ...Option) (*EventExtractor, error) {
	loc, err := cfg.Extraction.Location()
	if err != nil {
		return nil, fmt.Errorf("extractor timezone: %w", err)
	}

	rules := classifier.New(log, classifier.WithPaidThresholds(classifier.PaidThresholds{
		LargePrice:        cfg.Paid.LargePriceThreshold,
		MembershipCeiling: cfg.Paid.MembershipPriceCeiling,
	}))
	dates := dateparse.New(log, dateparse.WithWindow(cfg.Extraction.PastTolerance, cfg.Extraction.FutureWindow))

	return New(Config{
		Location:        loc,
		DefaultHour:     cfg.Extraction.DefaultHour,
		PastTolerance:   cfg.Extraction.PastTolerance,
		VisionEnabled:   cfg.LLM.VisionEnabled,
		MaxVisionImages: cfg.LLM.MaxVisionImages,
	}, rules, dates, location.NewResolver(log), log, opts...), nil
}
