package conversation

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestTokenLimit(t *testing.T) {
	tests := []struct {
		name       string
		memoryMode string
		tracked    int
		want       int
	}{
		{"short mode", MemoryModeShort, 0, 800},
		{"medium mode", MemoryModeMedium, 0, 1500},
		{"long mode", MemoryModeLong, 0, 2500},
		{"adaptive small set", MemoryModeAdaptive, 3, 2000},
		{"adaptive medium set", MemoryModeAdaptive, 7, 1800},
		{"adaptive large set", MemoryModeAdaptive, 12, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.memoryMode, FocusModeAdaptive, 2000)
			state := NewState("s1")
			for i := 0; i < tt.tracked; i++ {
				id := uuid.New()
				state.WorkingSet[id] = &TrackedEmployee{Id: id, Relevance: 1.0}
			}
			if got := m.TokenLimit(state); got != tt.want {
				t.Errorf("TokenLimit = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWorkingSetCap(t *testing.T) {
	tests := []struct {
		name      string
		focusMode string
		theme     string
		want      int
	}{
		{"adaptive base", FocusModeAdaptive, ThemeGeneralGuidance, 15},
		{"narrow", FocusModeNarrow, ThemeGeneralGuidance, 8},
		{"broad", FocusModeBroad, ThemeGeneralGuidance, 25},
		{"succession widens", FocusModeAdaptive, ThemeSuccessionPlanning, 25},
		{"broad succession hits ceiling", FocusModeBroad, ThemeSuccessionPlanning, 30},
		{"department widens narrow", FocusModeNarrow, ThemeDepartmentAnalysis, 18},
		{"individual profile tightens", FocusModeBroad, ThemeIndividualProfile, 10},
		{"individual profile below cap keeps focus", FocusModeNarrow, ThemeIndividualProfile, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(MemoryModeAdaptive, tt.focusMode, 2000)
			if got := m.WorkingSetCap(tt.theme); got != tt.want {
				t.Errorf("WorkingSetCap(%s) = %d, want %d", tt.theme, got, tt.want)
			}
		})
	}
}

func TestRecordQueryEmployees(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeAdaptive, 2000)
	state := NewState("s1")
	id := uuid.New()

	m.RecordQueryEmployees(state, map[uuid.UUID]string{id: "Lisa Chen"})

	tracked, ok := state.WorkingSet[id]
	if !ok {
		t.Fatal("employee not tracked")
	}
	if tracked.Relevance != 1.0 {
		t.Errorf("Relevance = %v, want 1.0", tracked.Relevance)
	}

	// Decay, then a repeat mention boosts but stays capped at 1.0.
	tracked.Relevance = 0.5
	m.RecordQueryEmployees(state, map[uuid.UUID]string{id: "Lisa Chen"})
	if got := state.WorkingSet[id].Relevance; got != 0.7 {
		t.Errorf("Relevance after boost = %v, want 0.7", got)
	}

	tracked.Relevance = 0.95
	m.RecordQueryEmployees(state, map[uuid.UUID]string{id: "Lisa Chen"})
	if got := state.WorkingSet[id].Relevance; got != 1.0 {
		t.Errorf("Relevance after capped boost = %v, want 1.0", got)
	}
}

func TestRecordResponseMentions(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeAdaptive, 2000)
	state := NewState("s1")
	asked := uuid.New()
	mentioned := uuid.New()

	m.RecordQueryEmployees(state, map[uuid.UUID]string{asked: "Lisa Chen"})
	m.RecordResponseMentions(state, map[uuid.UUID]string{
		asked:     "Lisa Chen",
		mentioned: "Ahmed Hassan",
	})

	if got := state.WorkingSet[asked].Relevance; got != 1.0 {
		t.Errorf("asked employee relevance = %v, want unchanged 1.0", got)
	}
	if got := state.WorkingSet[mentioned].Relevance; got != 0.8 {
		t.Errorf("mentioned employee relevance = %v, want 0.8", got)
	}
}

func TestEnforceCapEvictsLeastRelevant(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeNarrow, 2000)
	state := NewState("s1")

	// Fill to the narrow cap of 8 with middling relevance.
	for i := 0; i < 8; i++ {
		id := uuid.New()
		state.WorkingSet[id] = &TrackedEmployee{Id: id, FullName: "Filler", Relevance: 0.4}
	}

	star := uuid.New()
	m.RecordQueryEmployees(state, map[uuid.UUID]string{star: "Sarah Martinez"})

	if len(state.WorkingSet) != 8 {
		t.Fatalf("working set size = %d, want 8", len(state.WorkingSet))
	}
	if _, ok := state.WorkingSet[star]; !ok {
		t.Error("newly queried employee should survive eviction")
	}
}

func TestPruneDropsOldExchangesAndDecaysEmployees(t *testing.T) {
	m := NewManager(MemoryModeShort, FocusModeAdaptive, 2000)
	state := NewState("s1")
	id := uuid.New()
	state.WorkingSet[id] = &TrackedEmployee{Id: id, FullName: "Lisa Chen", Relevance: 0.5}

	// Three exchanges well over the 800 token budget of short mode.
	m.AppendTurn(state, RoleUser, "q1", 400, []uuid.UUID{id})
	m.AppendTurn(state, RoleAssistant, "a1", 300, nil)
	m.AppendTurn(state, RoleUser, "q2", 300, nil)
	m.AppendTurn(state, RoleAssistant, "a2", 300, nil)
	m.AppendTurn(state, RoleUser, "q3", 300, nil)
	m.AppendTurn(state, RoleAssistant, "a3", 200, nil)

	if got := len(state.Turns); got != 4 {
		t.Fatalf("turns = %d, want 4 after pruning", got)
	}
	if state.Turns[0].Content != "q2" {
		t.Errorf("oldest retained turn = %q, want q2", state.Turns[0].Content)
	}
	// The pruned exchange referenced Lisa: 0.5 - 0.3 = 0.2, above eviction.
	if got := state.WorkingSet[id].Relevance; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("decayed relevance = %v, want 0.2", got)
	}
}

func TestPruneEvictsWhenRelevanceSinks(t *testing.T) {
	m := NewManager(MemoryModeShort, FocusModeAdaptive, 2000)
	state := NewState("s1")
	id := uuid.New()
	state.WorkingSet[id] = &TrackedEmployee{Id: id, FullName: "Lisa Chen", Relevance: 0.3}

	m.AppendTurn(state, RoleUser, "q1", 400, []uuid.UUID{id})
	m.AppendTurn(state, RoleAssistant, "a1", 300, nil)
	m.AppendTurn(state, RoleUser, "q2", 300, nil)
	m.AppendTurn(state, RoleAssistant, "a2", 300, nil)
	m.AppendTurn(state, RoleUser, "q3", 300, nil)
	m.AppendTurn(state, RoleAssistant, "a3", 200, nil)

	// 0.3 - 0.3 clamps to the 0.1 floor, under the eviction threshold.
	if _, ok := state.WorkingSet[id]; ok {
		t.Error("employee should be evicted once relevance sinks to the floor")
	}
}

func TestPruneKeepsTwoFullExchanges(t *testing.T) {
	m := NewManager(MemoryModeShort, FocusModeAdaptive, 2000)
	state := NewState("s1")

	// Three 1000-token exchanges; the budget alone would keep none.
	for i := 0; i < 3; i++ {
		m.AppendTurn(state, RoleUser, "q", 500, nil)
		m.AppendTurn(state, RoleAssistant, "a", 500, nil)
	}

	if got := len(state.Turns); got != 4 {
		t.Fatalf("turns = %d, want 4 (two full exchanges) despite budget", got)
	}
	if state.Turns[0].Role != RoleUser {
		t.Error("retained history should start with a user turn, not an orphaned answer")
	}
}

func TestPruneNeverSplitsAnExchange(t *testing.T) {
	m := NewManager(MemoryModeShort, FocusModeAdaptive, 2000)
	state := NewState("s1")

	m.AppendTurn(state, RoleUser, "q1", 100, nil)
	m.AppendTurn(state, RoleAssistant, "a1", 700, nil)
	m.AppendTurn(state, RoleUser, "q2", 100, nil)
	m.AppendTurn(state, RoleAssistant, "a2", 100, nil)
	m.AppendTurn(state, RoleUser, "q3", 400, nil)
	m.AppendTurn(state, RoleAssistant, "a3", 400, nil)

	// q1+a1 leave together even though dropping q1 alone would not have
	// brought the total under budget either.
	if got := len(state.Turns); got != 4 {
		t.Fatalf("turns = %d, want 4", got)
	}
	for i, want := range []string{"q2", "a2", "q3", "a3"} {
		if state.Turns[i].Content != want {
			t.Errorf("turn[%d] = %q, want %q", i, state.Turns[i].Content, want)
		}
	}
}

func TestTopEmployeesOrdering(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeAdaptive, 2000)
	state := NewState("s1")

	low := &TrackedEmployee{Id: uuid.New(), FullName: "Ahmed Hassan", Relevance: 0.4}
	highA := &TrackedEmployee{Id: uuid.New(), FullName: "Aaron Lee", Relevance: 0.9}
	highB := &TrackedEmployee{Id: uuid.New(), FullName: "Zoe Park", Relevance: 0.9}
	for _, e := range []*TrackedEmployee{low, highA, highB} {
		state.WorkingSet[e.Id] = e
	}

	top := m.TopEmployees(state, 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].FullName != "Aaron Lee" || top[1].FullName != "Zoe Park" {
		t.Errorf("order = [%s %s], want name order within equal relevance", top[0].FullName, top[1].FullName)
	}

	active := m.ActiveEmployees(state, 0.7)
	if len(active) != 2 {
		t.Errorf("active above 0.7 = %d, want 2", len(active))
	}
}
