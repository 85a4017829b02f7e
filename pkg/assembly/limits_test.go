package assembly

import (
	"testing"

	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/intent"
)

func TestEmployeeLimits(t *testing.T) {
	tests := []struct {
		name      string
		theme     string
		scope     intent.Scope
		focusMode string
		want      Limits
	}{
		{
			name:      "adaptive single",
			theme:     conversation.ThemeIndividualProfile,
			scope:     intent.ScopeSingleEmployee,
			focusMode: conversation.FocusModeAdaptive,
			want:      Limits{MaxEmployees: 5, Priority: 3},
		},
		{
			name:      "adaptive multiple",
			theme:     conversation.ThemeCrossComparison,
			scope:     intent.ScopeMultipleEmployees,
			focusMode: conversation.FocusModeAdaptive,
			want:      Limits{MaxEmployees: 12, Priority: 8},
		},
		{
			name:      "adaptive department",
			theme:     conversation.ThemeDepartmentAnalysis,
			scope:     intent.ScopeDepartment,
			focusMode: conversation.FocusModeAdaptive,
			want:      Limits{MaxEmployees: 20, Priority: 15},
		},
		{
			name:      "adaptive org wide falls through to theme",
			theme:     conversation.ThemeOrganizationWide,
			scope:     intent.ScopeOrganizationWide,
			focusMode: conversation.FocusModeAdaptive,
			want:      Limits{MaxEmployees: 50, Priority: 30},
		},
		{
			name:      "fixed focus uses theme table",
			theme:     conversation.ThemeSuccessionPlanning,
			scope:     intent.ScopeSingleEmployee,
			focusMode: conversation.FocusModeNarrow,
			want:      Limits{MaxEmployees: 20, Priority: 15},
		},
		{
			name:      "unknown theme gets general limits",
			theme:     "something_else",
			scope:     intent.ScopeOrganizationWide,
			focusMode: conversation.FocusModeBroad,
			want:      Limits{MaxEmployees: 10, Priority: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmployeeLimits(tt.theme, tt.scope, tt.focusMode)
			if got != tt.want {
				t.Errorf("EmployeeLimits(%s, %s, %s) = %+v, want %+v",
					tt.theme, tt.scope, tt.focusMode, got, tt.want)
			}
		})
	}
}
