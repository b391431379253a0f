// Package textmatch finds dictionary phrases in normalized text with a
// single Aho-Corasick pass, then confirms each hit on word boundaries so
// "tea" never matches inside "team" and "bar" never matches "barbecue".
package textmatch

import (
	"regexp"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Entry maps a lowercase phrase to its canonical value.
type Entry struct {
	Phrase string
	Value  string
}

// Match is a confirmed occurrence of an entry in text.
type Match struct {
	Phrase string
	Value  string
	Pos    int
}

// PhraseSet is an immutable phrase dictionary. It is safe for concurrent use.
type PhraseSet struct {
	entries  []Entry
	patterns []*regexp.Regexp
	matcher  *ahocorasick.Matcher
}

// New builds a set from entries. Phrases are lowercased; empty phrases
// and duplicates are dropped, the first value winning.
func New(entries []Entry) *PhraseSet {
	s := &PhraseSet{}
	seen := make(map[string]bool, len(entries))
	keys := make([]string, 0, len(entries))

	for _, e := range entries {
		phrase := strings.ToLower(strings.TrimSpace(e.Phrase))
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		s.entries = append(s.entries, Entry{Phrase: phrase, Value: e.Value})
		s.patterns = append(s.patterns, boundaryPattern(phrase))
		keys = append(keys, phrase)
	}

	if len(keys) > 0 {
		s.matcher = ahocorasick.NewStringMatcher(keys)
	}
	return s
}

// NewList builds a set whose values equal their phrases.
func NewList(phrases ...string) *PhraseSet {
	entries := make([]Entry, len(phrases))
	for i, p := range phrases {
		entries[i] = Entry{Phrase: p, Value: p}
	}
	return New(entries)
}

// boundaryPattern allows a trailing plural so "pizza" also finds "pizzas".
func boundaryPattern(phrase string) *regexp.Regexp {
	var b strings.Builder
	if isWordByte(phrase[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(phrase))
	if isWordByte(phrase[len(phrase)-1]) {
		b.WriteString(`(?:e?s)?\b`)
	}
	return regexp.MustCompile(b.String())
}

func isWordByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9')
}

// Len returns the number of distinct phrases.
func (s *PhraseSet) Len() int {
	return len(s.entries)
}

// FindAll returns every confirmed entry ordered by position, longer
// phrases first at the same position.
func (s *PhraseSet) FindAll(text string) []Match {
	if s.matcher == nil || text == "" {
		return nil
	}

	hits := s.matcher.MatchThreadSafe([]byte(text))
	matches := make([]Match, 0, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(s.entries) {
			continue
		}
		loc := s.patterns[idx].FindStringIndex(text)
		if loc == nil {
			continue
		}
		e := s.entries[idx]
		matches = append(matches, Match{Phrase: e.Phrase, Value: e.Value, Pos: loc[0]})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Pos != matches[j].Pos {
			return matches[i].Pos < matches[j].Pos
		}
		return len(matches[i].Phrase) > len(matches[j].Phrase)
	})
	return matches
}

// Find returns the longest confirmed phrase in text, earliest on ties.
func (s *PhraseSet) Find(text string) (Match, bool) {
	var best Match
	found := false
	for _, m := range s.FindAll(text) {
		if !found || len(m.Phrase) > len(best.Phrase) {
			best = m
			found = true
		}
	}
	return best, found
}

// FindExcept is Find ignoring every occurrence that lies inside an
// occurrence of a phrase from except, so "bar" is not found in "salad bar".
func (s *PhraseSet) FindExcept(text string, except *PhraseSet) (Match, bool) {
	if s.matcher == nil || text == "" {
		return Match{}, false
	}
	masked := except.spans(text)

	var best Match
	found := false
	for _, idx := range s.matcher.MatchThreadSafe([]byte(text)) {
		if idx < 0 || idx >= len(s.entries) {
			continue
		}
		for _, loc := range s.patterns[idx].FindAllStringIndex(text, -1) {
			if covered(masked, loc) {
				continue
			}
			e := s.entries[idx]
			if !found || len(e.Phrase) > len(best.Phrase) || (len(e.Phrase) == len(best.Phrase) && loc[0] < best.Pos) {
				best = Match{Phrase: e.Phrase, Value: e.Value, Pos: loc[0]}
				found = true
			}
			break
		}
	}
	return best, found
}

// ContainsExcept reports whether any phrase occurs outside the phrases of except.
func (s *PhraseSet) ContainsExcept(text string, except *PhraseSet) bool {
	_, ok := s.FindExcept(text, except)
	return ok
}

func (s *PhraseSet) spans(text string) [][]int {
	if s == nil || s.matcher == nil || text == "" {
		return nil
	}
	var out [][]int
	for _, idx := range s.matcher.MatchThreadSafe([]byte(text)) {
		if idx >= 0 && idx < len(s.patterns) {
			out = append(out, s.patterns[idx].FindAllStringIndex(text, -1)...)
		}
	}
	return out
}

func covered(spans [][]int, loc []int) bool {
	for _, sp := range spans {
		if sp[0] <= loc[0] && loc[1] <= sp[1] {
			return true
		}
	}
	return false
}

// Contains reports whether any phrase occurs in text.
func (s *PhraseSet) Contains(text string) bool {
	if s.matcher == nil || text == "" {
		return false
	}
	for _, idx := range s.matcher.MatchThreadSafe([]byte(text)) {
		if idx >= 0 && idx < len(s.patterns) && s.patterns[idx].MatchString(text) {
			return true
		}
	}
	return false
}

// Phrases returns the phrases in insertion order.
func (s *PhraseSet) Phrases() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Phrase
	}
	return out
}
