// Package location resolves UCD venue mentions into building and room.
package location

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonesrussell/freefood/internal/data"
	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/logger"
	"github.com/jonesrussell/freefood/internal/textmatch"
)

// roomCode matches "C-204", "G01", "2.05", "E1.17a".
const roomCode = `([a-z]{1,3}-\d{1,4}|[a-z]{0,2}\d{1,4}(?:\.\d{1,3})?[a-z]?)`

var (
	globalRoom = regexp.MustCompile(`\b(?:room|rm)\.?\s*` + roomCode + `\b`)

	namedVenue = regexp.MustCompile(
		`\b((?:[A-Z][A-Za-z'&-]*\s+){0,3}(?:Building|Centre|Center|Hall|Room|Theatre|Theater|Lounge|Institute|House))\b`)
	numberedVenue = regexp.MustCompile(`\b((?:Room|Theatre|Lab)\s+[A-Z]{0,2}\d{1,4}[A-Za-z]?)\b`)

	// adjacentRoom holds one room-next-to-building pattern per building alias.
	adjacentRoom = adjacentPatterns(data.Buildings().Phrases())
)

func adjacentPatterns(aliases []string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(aliases))
	for _, alias := range aliases {
		b := regexp.QuoteMeta(alias)
		out[alias] = regexp.MustCompile(
			b + `\s*,?\s*(?:room|rm)\.?\s*` + roomCode + `\b|\b(?:room|rm)\.?\s*` + roomCode + `\s+(?:in|at)\s+(?:the\s+)?` + b)
	}
	return out
}

// venueStopwords are leading words the capitalized fallback strips off.
var venueStopwords = map[string]bool{
	"join": true, "at": true, "in": true, "the": true, "come": true,
	"us": true, "our": true, "meet": true, "see": true, "to": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// Resolver extracts locations. It holds no mutable state.
type Resolver struct {
	log logger.Logger
}

// NewResolver creates a Resolver.
func NewResolver(log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{log: log}
}

// Extract resolves the venue in text, which should be cleaned but keep its
// original case for the capitalized fallback. It returns nil when nothing
// matches.
func (r *Resolver) Extract(text string) *domain.Location {
	lower := strings.ToLower(text)

	if loc := subRoom(lower, data.StudentCentreRooms(), data.StudentCentre); loc != nil {
		return loc
	}
	if loc := subRoom(lower, data.VillageRooms(), data.UCDVillage); loc != nil {
		return loc
	}

	if m, ok := data.Buildings().Find(lower); ok {
		if code := roomNear(lower, m.Phrase); code != "" {
			return &domain.Location{
				Building:     m.Value,
				Room:         "Room " + code,
				FullLocation: fmt.Sprintf("Room %s, %s", code, m.Value),
			}
		}
		return &domain.Location{Building: m.Value, FullLocation: m.Value}
	}

	if name := fallbackVenue(text); name != "" {
		r.log.Debug("location resolved by fallback", logger.String("venue", name))
		return &domain.Location{Building: name, FullLocation: name}
	}
	return nil
}

// HasCampusMention reports whether text names any known UCD building or room.
func HasCampusMention(lower string) bool {
	return data.StudentCentreRooms().Contains(lower) ||
		data.VillageRooms().Contains(lower) ||
		data.Buildings().Contains(lower)
}

func subRoom(lower string, rooms *textmatch.PhraseSet, building string) *domain.Location {
	m, ok := rooms.Find(lower)
	if !ok {
		return nil
	}
	return &domain.Location{
		Building:     building,
		Room:         m.Value,
		FullLocation: m.Value + ", " + building,
	}
}

// roomNear prefers a room code written next to the building alias and
// falls back to any room code in the text.
func roomNear(lower, alias string) string {
	if adjacent, ok := adjacentRoom[alias]; ok {
		if m := adjacent.FindStringSubmatch(lower); m != nil {
			code := m[1]
			if code == "" {
				code = m[2]
			}
			return strings.ToUpper(code)
		}
	}
	if m := globalRoom.FindStringSubmatch(lower); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

func fallbackVenue(text string) string {
	for _, re := range []*regexp.Regexp{numberedVenue, namedVenue} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if name := stripLeading(m[1]); strings.Contains(name, " ") {
				return name
			}
		}
	}
	return ""
}

func stripLeading(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 && venueStopwords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
