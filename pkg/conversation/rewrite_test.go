package conversation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestHasBackReference(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"What about their leadership styles?", true},
		{"How do they handle conflict?", true},
		{"Compare both of them on prudence", true},
		{"What is her ambition score?", true},
		{"Tell me about those individuals", true},
		{"What is Lisa Chen's ambition score?", false},
		{"Rank everyone by sociability", false},
		{"The schema change went through", false},
	}

	for _, tt := range tests {
		if got := HasBackReference(tt.query); got != tt.want {
			t.Errorf("HasBackReference(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestResolveBackReferences(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeAdaptive, 2000)
	state := NewState("s1")

	lisa := &TrackedEmployee{Id: uuid.New(), FullName: "Lisa Chen", Relevance: 1.0}
	ahmed := &TrackedEmployee{Id: uuid.New(), FullName: "Ahmed Hassan", Relevance: 0.8}
	state.WorkingSet[lisa.Id] = lisa
	state.WorkingSet[ahmed.Id] = ahmed

	got := m.ResolveBackReferences(state, "How do they handle pressure?")

	if !strings.Contains(got, "Lisa Chen") || !strings.Contains(got, "Ahmed Hassan") {
		t.Errorf("rewritten query %q should name both tracked employees", got)
	}
	if strings.Contains(strings.ToLower(got), " they ") {
		t.Errorf("rewritten query %q still contains the pronoun", got)
	}
}

func TestResolveBackReferencesNoWorkingSet(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeAdaptive, 2000)
	state := NewState("s1")

	query := "How do they handle pressure?"
	if got := m.ResolveBackReferences(state, query); got != query {
		t.Errorf("query should pass through unchanged, got %q", got)
	}
}

func TestResolveBackReferencesNoIndicator(t *testing.T) {
	m := NewManager(MemoryModeAdaptive, FocusModeAdaptive, 2000)
	state := NewState("s1")
	id := uuid.New()
	state.WorkingSet[id] = &TrackedEmployee{Id: id, FullName: "Lisa Chen", Relevance: 1.0}

	query := "What is Ahmed Hassan's prudence score?"
	if got := m.ResolveBackReferences(state, query); got != query {
		t.Errorf("query without back references should pass through, got %q", got)
	}
}

func TestFormatNameList(t *testing.T) {
	mk := func(names ...string) []*TrackedEmployee {
		out := make([]*TrackedEmployee, len(names))
		for i, n := range names {
			out[i] = &TrackedEmployee{Id: uuid.New(), FullName: n}
		}
		return out
	}

	tests := []struct {
		name string
		in   []*TrackedEmployee
		want string
	}{
		{"empty", nil, ""},
		{"one", mk("Lisa Chen"), "Lisa Chen"},
		{"two", mk("Lisa Chen", "Ahmed Hassan"), "Lisa Chen and Ahmed Hassan"},
		{
			"five",
			mk("A One", "B Two", "C Three", "D Four", "E Five"),
			"A One, B Two, C Three, D Four, and E Five",
		},
		{
			"overflow",
			mk("A One", "B Two", "C Three", "D Four", "E Five", "F Six", "G Seven"),
			"A One, B Two, and 5 other employees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNameList(tt.in); got != tt.want {
				t.Errorf("FormatNameList = %q, want %q", got, tt.want)
			}
		})
	}
}
