package conversation

import (
	"fmt"
	"regexp"
	"strings"
)

// contextualIndicators are phrases that refer back to previously discussed
// employees. Longer phrases come first so they win over their substrings.
var contextualIndicators = []string{
	"those individuals",
	"these individuals",
	"those employees",
	"these employees",
	"those people",
	"these people",
	"each of them",
	"all of them",
	"both of them",
	"the two of them",
	"them",
	"they",
	"their",
	"he",
	"she",
	"his",
	"her",
}

var indicatorPatterns = compileIndicators()

func compileIndicators() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(contextualIndicators))
	for _, ind := range contextualIndicators {
		patterns[ind] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ind) + `\b`)
	}
	return patterns
}

// HasBackReference reports whether the query leans on prior context.
func HasBackReference(query string) bool {
	for _, ind := range contextualIndicators {
		if indicatorPatterns[ind].MatchString(query) {
			return true
		}
	}
	return false
}

// ResolveBackReferences rewrites pronouns and referring phrases with the
// names of the most relevant working set members, so the retrieval layers
// see explicit names. Returns the query unchanged when nothing is tracked.
func (m *Manager) ResolveBackReferences(state *State, query string) string {
	if !HasBackReference(query) {
		return query
	}

	top := m.TopEmployees(state, 8)
	if len(top) == 0 {
		return query
	}

	replacement := FormatNameList(top)
	rewritten := query
	for _, ind := range contextualIndicators {
		rewritten = indicatorPatterns[ind].ReplaceAllString(rewritten, replacement)
	}
	return rewritten
}

// FormatNameList renders tracked employees as natural prose: one name,
// "X and Y" for two, a comma list up to five, and a summarized tail beyond.
func FormatNameList(employees []*TrackedEmployee) string {
	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = e.FullName
	}

	switch {
	case len(names) == 0:
		return ""
	case len(names) == 1:
		return names[0]
	case len(names) == 2:
		return names[0] + " and " + names[1]
	case len(names) <= 5:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	default:
		return fmt.Sprintf("%s, %s, and %d other employees", names[0], names[1], len(names)-2)
	}
}
