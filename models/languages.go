package models

import (
	"sort"
	"strings"
)

// LanguageSet holds a user's language preferences. Membership only: no
// duplicates, no storage order. Presentation order comes from sorting.
type LanguageSet map[string]struct{}

func NewLanguageSet(languages ...string) LanguageSet {
	set := make(LanguageSet, len(languages))
	for _, language := range languages {
		language = strings.TrimSpace(language)
		if language != "" {
			set[language] = struct{}{}
		}
	}
	return set
}

// ParseLanguages splits the comma-joined wire form, trimming and dropping
// empty entries.
func ParseLanguages(value string) []string {
	parts := strings.Split(value, ",")
	var languages []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}

func (s LanguageSet) Has(language string) bool {
	_, ok := s[language]
	return ok
}

// Toggle adds the language when absent and removes it when present.
func (s LanguageSet) Toggle(language string) {
	if _, ok := s[language]; ok {
		delete(s, language)
		return
	}
	s[language] = struct{}{}
}

func (s LanguageSet) Len() int {
	return len(s)
}

// Slice returns the members in canonical (sorted) order.
func (s LanguageSet) Slice() []string {
	languages := make([]string, 0, len(s))
	for language := range s {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return languages
}

// Join renders the comma-joined wire form used by the update endpoint.
func (s LanguageSet) Join() string {
	return strings.Join(s.Slice(), ",")
}

// Clone returns an independent copy.
func (s LanguageSet) Clone() LanguageSet {
	clone := make(LanguageSet, len(s))
	for language := range s {
		clone[language] = struct{}{}
	}
	return clone
}
