// Package domain holds the value types that flow between the parsers,
// the classifier, the LLM fallback and the extractor.
package domain

import "time"

// Post is one social-media post handed to the extractor. Text is the
// caption already combined with any OCR output.
type Post struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	SourceType    string     `json:"source_type"`
	PostTimestamp *time.Time `json:"post_timestamp,omitempty"`
	ImageURLs     []string   `json:"image_urls,omitempty"`
	OCRLowYield   bool       `json:"ocr_low_yield,omitempty"`
}

// Verdict is the outcome of the rule classifier. Filter names the rule
// that rejected the text and is empty when accepted.
type Verdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
	Filter   string `json:"filter,omitempty"`
}

// ReasonAccepted is the reason carried by an accepting verdict.
const ReasonAccepted = "Accepted"

// Accept returns the accepting verdict.
func Accept() Verdict {
	return Verdict{Accepted: true, Reason: ReasonAccepted}
}

// Reject returns a rejecting verdict for the named filter.
func Reject(filter, reason string) Verdict {
	return Verdict{Reason: reason, Filter: filter}
}

// LLMHint is the structured answer of the fallback classifier. Text is
// only populated by the vision path.
type LLMHint struct {
	Food     bool    `json:"food"`
	Location *string `json:"location"`
	Time     *string `json:"time"`
	Text     string  `json:"text,omitempty"`
}
