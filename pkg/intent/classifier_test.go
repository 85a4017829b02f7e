package intent

import (
	"testing"

	"knowthee-be/internal/entity"
	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/resolver"

	"github.com/google/uuid"
)

func resolutionOf(names ...string) resolver.Resolution {
	var res resolver.Resolution
	for _, n := range names {
		res.Resolved = append(res.Resolved, resolver.Reference{
			Employee: &entity.Employee{Id: uuid.New(), FullName: n},
			Mention:  n,
		})
	}
	return res
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		resolution resolver.Resolution
		wantIntent Intent
		wantScope  Scope
		wantTrait  string
		wantLimit  int
	}{
		{
			name:       "single trait score",
			query:      "What is Sarah Martinez's ambition score?",
			resolution: resolutionOf("Sarah Martinez"),
			wantIntent: IntentGetScore,
			wantScope:  ScopeSingleEmployee,
			wantTrait:  "Ambition",
		},
		{
			name:       "full score sheet",
			query:      "Show me all of Ahmed Hassan's assessment results",
			resolution: resolutionOf("Ahmed Hassan"),
			wantIntent: IntentGetAllScores,
			wantScope:  ScopeSingleEmployee,
		},
		{
			name:       "comparison of two people",
			query:      "Compare Lisa Chen and Ahmed Hassan on sociability",
			resolution: resolutionOf("Lisa Chen", "Ahmed Hassan"),
			wantIntent: IntentCompareScores,
			wantScope:  ScopeMultipleEmployees,
			wantTrait:  "Sociability",
		},
		{
			name:       "ranking with explicit limit",
			query:      "Who are the top 3 on prudence?",
			resolution: resolver.Resolution{},
			wantIntent: IntentRankScores,
			wantScope:  ScopeOrganizationWide,
			wantTrait:  "Prudence",
			wantLimit:  3,
		},
		{
			name:       "ranking default limit",
			query:      "Who has the highest ambition?",
			resolution: resolver.Resolution{},
			wantIntent: IntentRankScores,
			wantScope:  ScopeOrganizationWide,
			wantTrait:  "Ambition",
			wantLimit:  5,
		},
		{
			name:       "criteria threshold becomes ranking",
			query:      "Which employees have prudence above 70?",
			resolution: resolver.Resolution{},
			wantIntent: IntentRankScores,
			wantScope:  ScopeOrganizationWide,
			wantTrait:  "Prudence",
		},
		{
			name:       "open ended question",
			query:      "How does Sarah Martinez handle conflict?",
			resolution: resolutionOf("Sarah Martinez"),
			wantIntent: IntentGeneralQuery,
			wantScope:  ScopeSingleEmployee,
		},
		{
			name:       "interrogative widens scope without named employees",
			query:      "Which employees are strong collaborators?",
			resolution: resolver.Resolution{},
			wantIntent: IntentGeneralQuery,
			wantScope:  ScopeMultipleEmployees,
		},
		{
			name:       "department scope",
			query:      "What motivates the engineering group?",
			resolution: resolver.Resolution{},
			wantIntent: IntentGeneralQuery,
			wantScope:  ScopeDepartment,
		},
		{
			name:       "organization wide general",
			query:      "What are common strengths across the company?",
			resolution: resolver.Resolution{},
			wantIntent: IntentGeneralQuery,
			wantScope:  ScopeOrganizationWide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier()
			plan := c.Classify(tt.query, tt.resolution)

			if plan.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", plan.Intent, tt.wantIntent)
			}
			if plan.Scope != tt.wantScope {
				t.Errorf("Scope = %s, want %s", plan.Scope, tt.wantScope)
			}
			if plan.Trait != tt.wantTrait {
				t.Errorf("Trait = %q, want %q", plan.Trait, tt.wantTrait)
			}
			if tt.wantLimit != 0 && plan.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", plan.Limit, tt.wantLimit)
			}
		})
	}
}

func TestClassifyDirection(t *testing.T) {
	c := NewClassifier()

	plan := c.Classify("Who has the lowest prudence?", resolver.Resolution{})
	if plan.Intent != IntentRankScores {
		t.Fatalf("Intent = %s, want %s", plan.Intent, IntentRankScores)
	}
	if plan.Direction != DirectionLowest {
		t.Errorf("Direction = %s, want %s", plan.Direction, DirectionLowest)
	}

	plan = c.Classify("Who has the highest prudence?", resolver.Resolution{})
	if plan.Direction != DirectionHighest {
		t.Errorf("Direction = %s, want %s", plan.Direction, DirectionHighest)
	}
}

func TestClassifyCriteria(t *testing.T) {
	c := NewClassifier()

	plan := c.Classify("Everyone with ambition above 75", resolver.Resolution{})
	if plan.Criteria == nil {
		t.Fatal("expected criteria")
	}
	if plan.Criteria.Op != ">" || plan.Criteria.Value != 75 {
		t.Errorf("Criteria = %+v, want > 75", plan.Criteria)
	}

	plan = c.Classify("Anyone scoring below 30 on excitable?", resolver.Resolution{})
	if plan.Criteria == nil {
		t.Fatal("expected criteria")
	}
	if plan.Criteria.Op != "<" || plan.Criteria.Value != 30 {
		t.Errorf("Criteria = %+v, want < 30", plan.Criteria)
	}
}

func TestClassifyTheme(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		resolution resolver.Resolution
		wantTheme  string
	}{
		{
			name:       "succession",
			query:      "Who could be a successor for the CTO role?",
			resolution: resolver.Resolution{},
			wantTheme:  conversation.ThemeSuccessionPlanning,
		},
		{
			name:       "department",
			query:      "How is the finance department doing?",
			resolution: resolver.Resolution{},
			wantTheme:  conversation.ThemeDepartmentAnalysis,
		},
		{
			name:       "team",
			query:      "How well would this team collaborate?",
			resolution: resolver.Resolution{},
			wantTheme:  conversation.ThemeTeamAnalysis,
		},
		{
			name:       "comparison",
			query:      "Compare Lisa Chen and Ahmed Hassan on sociability",
			resolution: resolutionOf("Lisa Chen", "Ahmed Hassan"),
			wantTheme:  conversation.ThemeCrossComparison,
		},
		{
			name:       "individual",
			query:      "How does Sarah Martinez handle stress?",
			resolution: resolutionOf("Sarah Martinez"),
			wantTheme:  conversation.ThemeIndividualProfile,
		},
		{
			name:       "general",
			query:      "What does a high HDS profile mean?",
			resolution: resolver.Resolution{},
			wantTheme:  conversation.ThemeGeneralGuidance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier()
			plan := c.Classify(tt.query, tt.resolution)
			if plan.Theme != tt.wantTheme {
				t.Errorf("Theme = %q, want %q", plan.Theme, tt.wantTheme)
			}
		})
	}
}
