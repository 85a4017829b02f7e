package conversation

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Memory modes bound how much past conversation is replayed each turn.
const (
	MemoryModeShort    = "short"
	MemoryModeMedium   = "medium"
	MemoryModeLong     = "long"
	MemoryModeAdaptive = "adaptive"
)

// Focus modes widen or narrow the working set.
const (
	FocusModeNarrow   = "narrow"
	FocusModeAdaptive = "adaptive"
	FocusModeBroad    = "broad"
)

const (
	queryRelevance    = 1.0
	queryBoost        = 0.2
	responseRelevance = 0.8
	pruneDecay        = 0.3
	decayFloor        = 0.1
	evictionThreshold = 0.15

	// Turns are role split, so one exchange is two turns. Pruning never
	// goes below two full exchanges of context, and never strands a user
	// turn without its answer.
	minRetainedTurns = 4

	baseWorkingSetCap   = 15
	narrowWorkingSetCap = 8
	broadWorkingSetCap  = 25
)

// Manager applies relevance bookkeeping and token budgeted pruning to
// session state. It is stateless; all mutation happens on the passed State.
type Manager struct {
	memoryMode      string
	focusMode       string
	maxMemoryTokens int
}

func NewManager(memoryMode, focusMode string, maxMemoryTokens int) *Manager {
	if maxMemoryTokens <= 0 {
		maxMemoryTokens = 2000
	}
	return &Manager{
		memoryMode:      memoryMode,
		focusMode:       focusMode,
		maxMemoryTokens: maxMemoryTokens,
	}
}

func (m *Manager) FocusMode() string {
	return m.focusMode
}

// TokenLimit returns the conversation token budget for the state. Fixed
// modes use flat limits; adaptive mode tightens the budget as the working
// set grows so the employee context keeps room in the prompt.
func (m *Manager) TokenLimit(state *State) int {
	switch m.memoryMode {
	case MemoryModeShort:
		return 800
	case MemoryModeMedium:
		return 1500
	case MemoryModeLong:
		return 2500
	}

	tracked := len(state.WorkingSet)
	switch {
	case tracked > 10:
		return 1200
	case tracked > 5:
		return 1800
	default:
		return m.maxMemoryTokens
	}
}

// WorkingSetCap returns how many employees the working set may hold given
// the focus mode and the conversation theme.
func (m *Manager) WorkingSetCap(theme string) int {
	cap := baseWorkingSetCap
	switch m.focusMode {
	case FocusModeNarrow:
		cap = narrowWorkingSetCap
	case FocusModeBroad:
		cap = broadWorkingSetCap
	}

	switch theme {
	case ThemeSuccessionPlanning, ThemeDepartmentAnalysis:
		cap += 10
		if cap > 30 {
			cap = 30
		}
	case ThemeIndividualProfile:
		if cap > 10 {
			cap = 10
		}
	}
	return cap
}

// RecordQueryEmployees registers employees named in the user query.
// New entries start at full relevance; existing ones get a bounded boost.
func (m *Manager) RecordQueryEmployees(state *State, employees map[uuid.UUID]string) {
	now := time.Now()
	for id, name := range employees {
		if tracked, ok := state.WorkingSet[id]; ok {
			tracked.Relevance += queryBoost
			if tracked.Relevance > 1.0 {
				tracked.Relevance = 1.0
			}
			tracked.LastSeen = now
		} else {
			state.WorkingSet[id] = &TrackedEmployee{
				Id:        id,
				FullName:  name,
				Relevance: queryRelevance,
				LastSeen:  now,
			}
		}
	}
	m.enforceCap(state)
}

// RecordResponseMentions registers employees that only appeared in the
// assistant's answer. They join at reduced relevance; employees already
// tracked keep their current score.
func (m *Manager) RecordResponseMentions(state *State, employees map[uuid.UUID]string) {
	now := time.Now()
	for id, name := range employees {
		if tracked, ok := state.WorkingSet[id]; ok {
			tracked.LastSeen = now
			continue
		}
		state.WorkingSet[id] = &TrackedEmployee{
			Id:        id,
			FullName:  name,
			Relevance: responseRelevance,
			LastSeen:  now,
		}
	}
	m.enforceCap(state)
}

// enforceCap evicts the least relevant employees once the working set
// exceeds its cap. Oldest LastSeen loses ties.
func (m *Manager) enforceCap(state *State) {
	cap := m.WorkingSetCap(state.Theme)
	if len(state.WorkingSet) <= cap {
		return
	}

	tracked := m.rankedEmployees(state)
	for _, t := range tracked[cap:] {
		delete(state.WorkingSet, t.Id)
	}
}

// AppendTurn records an utterance and then prunes to the token budget.
func (m *Manager) AppendTurn(state *State, role, content string, tokens int, employeeIds []uuid.UUID) {
	state.Turns = append(state.Turns, Turn{
		Role:        role,
		Content:     content,
		Tokens:      tokens,
		EmployeeIds: employeeIds,
		CreatedAt:   time.Now(),
	})
	state.UpdatedAt = time.Now()
	m.Prune(state)
}

// Prune drops the oldest turns until the conversation fits the token
// budget. Employees referenced only by dropped turns decay, and fall out
// of the working set entirely once they sink low enough.
func (m *Manager) Prune(state *State) {
	limit := m.TokenLimit(state)
	for state.ConversationTokens() > limit {
		// Drop the oldest exchange whole so a question and its answer
		// leave together.
		drop := 1
		if len(state.Turns) > 1 && state.Turns[0].Role == RoleUser && state.Turns[1].Role == RoleAssistant {
			drop = 2
		}
		if len(state.Turns)-drop < minRetainedTurns {
			return
		}

		dropped := state.Turns[:drop]
		state.Turns = state.Turns[drop:]

		for _, turn := range dropped {
			for _, id := range turn.EmployeeIds {
				tracked, ok := state.WorkingSet[id]
				if !ok {
					continue
				}
				tracked.Relevance -= pruneDecay
				if tracked.Relevance < decayFloor {
					tracked.Relevance = decayFloor
				}
				if tracked.Relevance <= evictionThreshold {
					delete(state.WorkingSet, id)
				}
			}
		}
	}
}

// TopEmployees returns up to n working set members by relevance,
// ties broken by name then id for stable output.
func (m *Manager) TopEmployees(state *State, n int) []*TrackedEmployee {
	tracked := m.rankedEmployees(state)
	if n > 0 && len(tracked) > n {
		tracked = tracked[:n]
	}
	return tracked
}

// ActiveEmployees returns working set members above the relevance cutoff.
func (m *Manager) ActiveEmployees(state *State, minRelevance float64) []*TrackedEmployee {
	ranked := m.rankedEmployees(state)
	out := make([]*TrackedEmployee, 0, len(ranked))
	for _, t := range ranked {
		if t.Relevance > minRelevance {
			out = append(out, t)
		}
	}
	return out
}

func (m *Manager) rankedEmployees(state *State) []*TrackedEmployee {
	tracked := make([]*TrackedEmployee, 0, len(state.WorkingSet))
	for _, t := range state.WorkingSet {
		tracked = append(tracked, t)
	}
	sort.Slice(tracked, func(i, j int) bool {
		if tracked[i].Relevance != tracked[j].Relevance {
			return tracked[i].Relevance > tracked[j].Relevance
		}
		if tracked[i].FullName != tracked[j].FullName {
			return tracked[i].FullName < tracked[j].FullName
		}
		return tracked[i].Id.String() < tracked[j].Id.String()
	})
	return tracked
}
