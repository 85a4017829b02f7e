package resolver

import (
	"testing"

	"knowthee-be/internal/entity"

	"github.com/google/uuid"
)

func testRoster() []*entity.Employee {
	names := []string{
		"Lisa Chen",
		"Lisa Wong",
		"Ahmed Hassan",
		"Sarah Martinez",
		"David Kim",
	}
	roster := make([]*entity.Employee, 0, len(names))
	for _, n := range names {
		roster = append(roster, &entity.Employee{
			Id:       uuid.New(),
			FullName: n,
		})
	}
	return roster
}

func TestResolveFullName(t *testing.T) {
	r := NewResolver()
	r.SetRoster(testRoster())

	res := r.Resolve("What is Lisa Chen's ambition score?")

	if res.NeedsClarification() {
		t.Fatalf("unexpected ambiguity: %+v", res.Ambiguous)
	}
	if len(res.Resolved) != 1 {
		t.Fatalf("resolved = %d, want 1", len(res.Resolved))
	}
	if got := res.Resolved[0].Employee.FullName; got != "Lisa Chen" {
		t.Errorf("resolved %q, want Lisa Chen", got)
	}
}

func TestResolveUniqueFirstName(t *testing.T) {
	r := NewResolver()
	r.SetRoster(testRoster())

	res := r.Resolve("How does Ahmed handle pressure?")

	if res.NeedsClarification() {
		t.Fatalf("unexpected ambiguity: %+v", res.Ambiguous)
	}
	if len(res.Resolved) != 1 || res.Resolved[0].Employee.FullName != "Ahmed Hassan" {
		t.Fatalf("resolved = %+v, want Ahmed Hassan", res.Employees())
	}
}

func TestResolveLastNameOnly(t *testing.T) {
	r := NewResolver()
	r.SetRoster(testRoster())

	res := r.Resolve("What drives Martinez?")

	if res.NeedsClarification() {
		t.Fatalf("unexpected ambiguity: %+v", res.Ambiguous)
	}
	if len(res.Resolved) != 1 || res.Resolved[0].Employee.FullName != "Sarah Martinez" {
		t.Fatalf("resolved = %+v, want Sarah Martinez", res.Employees())
	}
}

func TestResolveSharedFirstNameIsAmbiguous(t *testing.T) {
	r := NewResolver()
	r.SetRoster(testRoster())

	res := r.Resolve("Tell me about Lisa")

	if !res.NeedsClarification() {
		t.Fatal("expected clarification for shared first name")
	}
	if len(res.Ambiguous) != 1 {
		t.Fatalf("ambiguities = %d, want 1", len(res.Ambiguous))
	}
	if got := len(res.Ambiguous[0].Candidates); got != 2 {
		t.Errorf("candidates = %d, want 2", got)
	}
}

func TestResolveFullNameBeatsSharedFirstName(t *testing.T) {
	r := NewResolver()
	r.SetRoster(testRoster())

	// Naming one Lisa in full must not trigger ambiguity for the other.
	res := r.Resolve("Compare Lisa Wong and Sarah")

	if res.NeedsClarification() {
		t.Fatalf("unexpected ambiguity: %+v", res.Ambiguous)
	}
	if len(res.Resolved) != 2 {
		t.Fatalf("resolved = %d, want 2", len(res.Resolved))
	}
}

func TestResolveNoMatchInsideWords(t *testing.T) {
	r := NewResolver()
	r.SetRoster(testRoster())

	// "lisa" inside another word must not resolve.
	res := r.Resolve("the Elisabethan project")

	if len(res.Resolved) != 0 || res.NeedsClarification() {
		t.Fatalf("unexpected match: %+v", res)
	}
}

func TestResolveEmptyRoster(t *testing.T) {
	r := NewResolver()

	res := r.Resolve("Who is Sarah?")

	if len(res.Resolved) != 0 || res.NeedsClarification() {
		t.Fatalf("want empty resolution, got %+v", res)
	}
}

func TestExtractFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Filters
	}{
		{
			name:  "department only",
			query: "leadership potential in engineering",
			want:  Filters{Department: "engineering"},
		},
		{
			name:  "hr alias normalized",
			query: "collaboration across HR",
			want:  Filters{Department: "human resources"},
		},
		{
			name:  "plus years",
			query: "people with 10+ years of experience",
			want:  Filters{MinExperience: 10},
		},
		{
			name:  "more than",
			query: "anyone with more than 5 years in sales",
			want:  Filters{Department: "sales", MinExperience: 5},
		},
		{
			name:  "less than",
			query: "employees with less than 3 years tenure",
			want:  Filters{MaxExperience: 3},
		},
		{
			name:  "senior implies experience floor",
			query: "our senior engineers in engineering",
			want:  Filters{Department: "engineering", MinExperience: 8},
		},
		{
			name:  "explicit number beats senior default",
			query: "senior folks with more than 12 years",
			want:  Filters{MinExperience: 12},
		},
		{
			name:  "no filters",
			query: "what motivates the team?",
			want:  Filters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFilters(tt.query)
			if got != tt.want {
				t.Errorf("ExtractFilters(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFiltersIsZero(t *testing.T) {
	if !(Filters{}).IsZero() {
		t.Error("empty Filters should be zero")
	}
	if (Filters{Department: "finance"}).IsZero() {
		t.Error("department filter should not be zero")
	}
}
