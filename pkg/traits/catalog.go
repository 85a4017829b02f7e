package traits

import (
	"sort"
	"strings"
)

// Match is a canonical (trait, assessment type) pair resolved from
// query vocabulary.
type Match struct {
	Trait          string
	AssessmentType string
}

type vocabularyEntry struct {
	surface string
	match   Match
}

// The surface vocabulary covers the three Hogan sub-assessments and the
// IDI dimensions, including common spelling variants.
var vocabulary = buildVocabulary()

func buildVocabulary() []vocabularyEntry {
	add := func(entries *[]vocabularyEntry, assessmentType string, traits map[string][]string) {
		for trait, surfaces := range traits {
			for _, s := range surfaces {
				*entries = append(*entries, vocabularyEntry{
					surface: s,
					match:   Match{Trait: trait, AssessmentType: assessmentType},
				})
			}
		}
	}

	var entries []vocabularyEntry

	add(&entries, "HPI", map[string][]string{
		"Adjustment":                {"adjustment"},
		"Ambition":                  {"ambition"},
		"Sociability":               {"sociability"},
		"Interpersonal Sensitivity": {"interpersonal sensitivity"},
		"Prudence":                  {"prudence"},
		"Inquisitive":               {"inquisitive"},
		"Learning Approach":         {"learning approach"},
	})

	add(&entries, "HDS", map[string][]string{
		"Excitable":   {"excitable"},
		"Skeptical":   {"skeptical", "sceptical"},
		"Cautious":    {"cautious"},
		"Reserved":    {"reserved"},
		"Leisurely":   {"leisurely"},
		"Bold":        {"bold"},
		"Mischievous": {"mischievous"},
		"Colorful":    {"colorful", "colourful"},
		"Imaginative": {"imaginative"},
		"Diligent":    {"diligent"},
		"Dutiful":     {"dutiful"},
	})

	add(&entries, "MVPI", map[string][]string{
		"Recognition": {"recognition"},
		"Power":       {"power"},
		"Hedonism":    {"hedonism"},
		"Altruistic":  {"altruistic", "altruism"},
		"Affiliation": {"affiliation"},
		"Tradition":   {"tradition"},
		"Security":    {"security"},
		"Commerce":    {"commerce"},
		"Aesthetics":  {"aesthetics"},
		"Science":     {"science"},
	})

	add(&entries, "IDI", map[string][]string{
		"Belonging":         {"belonging"},
		"Giving":            {"giving"},
		"Receiving":         {"receiving"},
		"Expressing":        {"expressing"},
		"Gaining Stature":   {"gaining stature", "gaining_stature"},
		"Entertaining":      {"entertaining"},
		"Creating":          {"creating"},
		"Interpreting":      {"interpreting"},
		"Excelling":         {"excelling"},
		"Enduring":          {"enduring"},
		"Structuring":       {"structuring"},
		"Maneuvering":       {"maneuvering"},
		"Winning":           {"winning"},
		"Controlling":       {"controlling"},
		"Stability":         {"stability"},
		"Independence":      {"independence"},
		"Irreproachability": {"irreproachability"},
	})

	// Longest surface first so "learning approach" wins over "learning"
	// style prefixes and multiword dimensions match before single words.
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].surface) != len(entries[j].surface) {
			return len(entries[i].surface) > len(entries[j].surface)
		}
		return entries[i].surface < entries[j].surface
	})

	return entries
}

// Extract resolves the first trait named in the query, longest surface
// form first. Returns false when no vocabulary matches.
func Extract(query string) (Match, bool) {
	lower := strings.ToLower(query)
	for _, entry := range vocabulary {
		if containsWord(lower, entry.surface) {
			return entry.match, true
		}
	}
	return Match{}, false
}

// containsWord reports whether surface occurs in text on word boundaries.
func containsWord(text, surface string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], surface)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(surface)
		startOK := start == 0 || !isWordChar(text[start-1])
		endOK := end == len(text) || !isWordChar(text[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// Known reports whether the canonical trait name exists in the catalog.
func Known(trait string) bool {
	for _, entry := range vocabulary {
		if strings.EqualFold(entry.match.Trait, trait) {
			return true
		}
	}
	return false
}
