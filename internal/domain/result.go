package domain

import "time"

// Stage records how far the extractor had to escalate.
type Stage string

const (
	StageRuleBased Stage = "rule_based"
	StageLLMText   Stage = "llm_text"
	StageLLMVision Stage = "llm_vision"
)

// ExtractedData is the audit trail attached to a result.
type ExtractedData struct {
	TimeFound     bool  `json:"time_found"`
	DateFound     bool  `json:"date_found"`
	LocationFound bool  `json:"location_found"`
	MembersOnly   bool  `json:"members_only"`
	LLMAssisted   bool  `json:"llm_assisted"`
	StageReached  Stage `json:"stage_reached"`
}

// ExtractionResult is the structured event extracted from an accepted post.
type ExtractionResult struct {
	ID               string        `json:"id,omitempty"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Location         string        `json:"location,omitempty"`
	LocationBuilding string        `json:"location_building,omitempty"`
	LocationRoom     string        `json:"location_room,omitempty"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          *time.Time    `json:"end_time,omitempty"`
	ConfidenceScore  float64       `json:"confidence_score"`
	RawText          string        `json:"raw_text"`
	SourceType       string        `json:"source_type,omitempty"`
	ExtractedData    ExtractedData `json:"extracted_data"`
}
