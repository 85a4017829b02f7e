package assembly

import (
	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/intent"
)

// Limits bound how many employees a context may cover and how many of
// them get full chunk treatment.
type Limits struct {
	MaxEmployees int
	Priority     int
}

var themeLimits = map[string]Limits{
	conversation.ThemeIndividualProfile:  {MaxEmployees: 5, Priority: 3},
	conversation.ThemeCrossComparison:    {MaxEmployees: 8, Priority: 5},
	conversation.ThemeTeamAnalysis:       {MaxEmployees: 15, Priority: 10},
	conversation.ThemeSuccessionPlanning: {MaxEmployees: 20, Priority: 15},
	conversation.ThemeDepartmentAnalysis: {MaxEmployees: 25, Priority: 20},
	conversation.ThemeOrganizationWide:   {MaxEmployees: 50, Priority: 30},
	conversation.ThemeGeneralGuidance:    {MaxEmployees: 10, Priority: 5},
}

// EmployeeLimits picks the context size for a query. Adaptive focus
// follows the query scope; fixed focus modes fall back to the theme table.
func EmployeeLimits(theme string, scope intent.Scope, focusMode string) Limits {
	if focusMode == conversation.FocusModeAdaptive {
		switch scope {
		case intent.ScopeSingleEmployee:
			return Limits{MaxEmployees: 5, Priority: 3}
		case intent.ScopeMultipleEmployees:
			return Limits{MaxEmployees: 12, Priority: 8}
		case intent.ScopeDepartment:
			return Limits{MaxEmployees: 20, Priority: 15}
		}
	}

	if limits, ok := themeLimits[theme]; ok {
		return limits
	}
	return themeLimits[conversation.ThemeGeneralGuidance]
}
