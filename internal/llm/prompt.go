package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/freefood/internal/domain"
)

const maxInputChars = 600

const textSystemPrompt = `You review social media posts from university student societies.
Decide whether the post offers free food at an upcoming on-campus event.
Respond with a single JSON object and nothing else:
{"food": true|false, "location": "<venue>"|null, "time": "HH:MM"|null}
Use 24-hour time. Use null when the post does not state a value.`

const visionSystemPrompt = `You review event posters from university student societies.
Read the images and the caption. Decide whether the event offers free food on campus.
Respond with a single JSON object and nothing else:
{"food": true|false, "text": "<text visible in the images>", "location": "<venue>"|null, "time": "HH:MM"|null}
Use 24-hour time. Use null when the poster does not state a value.`

var hhmm = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

func textPrompt(normalized string) string {
	return fmt.Sprintf("Post:\n%s", truncate(normalized, maxInputChars))
}

func visionPrompt(caption string) string {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return "Caption: (none)"
	}
	return fmt.Sprintf("Caption:\n%s", truncate(caption, maxInputChars))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// extractJSON returns the outermost object in a reply that may be wrapped
// in prose or a code fence.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

type rawHint struct {
	Food     *bool   `json:"food"`
	Location *string `json:"location"`
	Time     *string `json:"time"`
	Text     string  `json:"text"`
}

// parseHint decodes a model reply. A time that is not a valid HH:MM clock
// reading is dropped rather than failing the whole hint.
func parseHint(reply string) (*domain.LLMHint, error) {
	body, err := extractJSON(reply)
	if err != nil {
		return nil, err
	}

	var raw rawHint
	if err = json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHint, err)
	}
	if raw.Food == nil {
		return nil, ErrInvalidHint
	}

	hint := &domain.LLMHint{
		Food: *raw.Food,
		Text: strings.TrimSpace(raw.Text),
	}
	if raw.Location != nil {
		if loc := strings.TrimSpace(*raw.Location); loc != "" && !strings.EqualFold(loc, "null") {
			hint.Location = &loc
		}
	}
	if raw.Time != nil {
		if t := strings.TrimSpace(*raw.Time); hhmm.MatchString(t) {
			hint.Time = &t
		}
	}
	return hint, nil
}
