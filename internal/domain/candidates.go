package domain

import "time"

// DateCandidate is one scored interpretation of a date phrase.
type DateCandidate struct {
	PatternTag string
	Date       time.Time
	Confidence float64
}

// TimeCandidate is one scored interpretation of a clock time.
type TimeCandidate struct {
	PatternTag string
	Hour       int
	Minute     int
	Confidence float64
}

// Valid reports whether the candidate is a real clock time.
func (c TimeCandidate) Valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// Minutes returns minutes since midnight.
func (c TimeCandidate) Minutes() int {
	return c.Hour*60 + c.Minute
}

// TimeRange is a start time with an optional end.
type TimeRange struct {
	Start *TimeCandidate
	End   *TimeCandidate
}

// Location is a resolved venue. Room is empty when only a building matched.
type Location struct {
	Building     string `json:"building"`
	Room         string `json:"room,omitempty"`
	FullLocation string `json:"full_location"`
}
