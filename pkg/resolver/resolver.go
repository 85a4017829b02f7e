package resolver

import (
	"sort"
	"strings"
	"sync"

	"knowthee-be/internal/entity"
)

// Reference is one employee the query names, with the surface text that
// named them.
type Reference struct {
	Employee *entity.Employee
	Mention  string
}

// Ambiguity records a name mention shared by several employees.
// The caller is expected to ask for clarification instead of guessing.
type Ambiguity struct {
	Mention    string
	Candidates []*entity.Employee
}

// Resolution is the outcome of resolving one query against the roster.
type Resolution struct {
	Resolved  []Reference
	Ambiguous []Ambiguity
}

// NeedsClarification reports whether any mention could not be pinned to
// a single employee.
func (r Resolution) NeedsClarification() bool {
	return len(r.Ambiguous) > 0
}

// Employees returns the resolved employees in mention order.
func (r Resolution) Employees() []*entity.Employee {
	out := make([]*entity.Employee, len(r.Resolved))
	for i, ref := range r.Resolved {
		out[i] = ref.Employee
	}
	return out
}

// Resolver matches query text against a cached employee roster. The
// roster is refreshed by the owning service; resolution itself never
// touches the database.
type Resolver struct {
	mu     sync.RWMutex
	roster []*entity.Employee
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// SetRoster replaces the cached roster.
func (r *Resolver) SetRoster(employees []*entity.Employee) {
	sorted := make([]*entity.Employee, len(employees))
	copy(sorted, employees)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FullName != sorted[j].FullName {
			return sorted[i].FullName < sorted[j].FullName
		}
		return sorted[i].Id.String() < sorted[j].Id.String()
	})

	r.mu.Lock()
	r.roster = sorted
	r.mu.Unlock()
}

// RosterSize returns the number of cached employees.
func (r *Resolver) RosterSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roster)
}

// Resolve finds employees mentioned in the query. Full name matches win
// outright. A lone name-part match (first or last name) resolves to its
// only owner; a shared part becomes an Ambiguity listing every candidate.
func (r *Resolver) Resolve(query string) Resolution {
	r.mu.RLock()
	roster := r.roster
	r.mu.RUnlock()

	lower := strings.ToLower(query)
	var resolution Resolution
	matchedIds := make(map[string]bool)

	// Pass 1: full names
	for _, emp := range roster {
		fullLower := strings.ToLower(emp.FullName)
		if fullLower != "" && containsPhrase(lower, fullLower) {
			resolution.Resolved = append(resolution.Resolved, Reference{
				Employee: emp,
				Mention:  emp.FullName,
			})
			matchedIds[emp.Id.String()] = true
		}
	}

	// Name parts consumed by a full-name match don't count again, so
	// "Lisa Wong and Sarah" cannot drag an unrelated Lisa back in.
	consumedParts := make(map[string]bool)
	for _, ref := range resolution.Resolved {
		for _, part := range strings.Fields(strings.ToLower(ref.Employee.FullName)) {
			consumedParts[part] = true
		}
	}

	// Pass 2: individual name parts (first or last), grouped so shared
	// names surface as ambiguity instead of a guess.
	byPart := make(map[string][]*entity.Employee)
	displayPart := make(map[string]string)
	for _, emp := range roster {
		if matchedIds[emp.Id.String()] {
			continue
		}
		for _, part := range strings.Fields(emp.FullName) {
			key := strings.ToLower(part)
			if key == "" || consumedParts[key] {
				continue
			}
			byPart[key] = append(byPart[key], emp)
			displayPart[key] = part
		}
	}

	parts := make([]string, 0, len(byPart))
	for part := range byPart {
		parts = append(parts, part)
	}
	sort.Strings(parts)

	for _, part := range parts {
		if !containsPhrase(lower, part) {
			continue
		}
		candidates := make([]*entity.Employee, 0, len(byPart[part]))
		for _, emp := range byPart[part] {
			if !matchedIds[emp.Id.String()] {
				candidates = append(candidates, emp)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		if len(candidates) == 1 {
			resolution.Resolved = append(resolution.Resolved, Reference{
				Employee: candidates[0],
				Mention:  displayPart[part],
			})
			matchedIds[candidates[0].Id.String()] = true
			continue
		}
		resolution.Ambiguous = append(resolution.Ambiguous, Ambiguity{
			Mention:    displayPart[part],
			Candidates: candidates,
		})
	}

	return resolution
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], phrase)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(phrase)
		startOK := start == 0 || !isLetter(text[start-1])
		endOK := end == len(text) || !isLetter(text[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
