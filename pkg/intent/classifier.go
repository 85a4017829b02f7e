package intent

import (
	"regexp"
	"strconv"
	"strings"

	"knowthee-be/internal/entity"
	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/resolver"
	"knowthee-be/pkg/traits"
)

type Intent string

const (
	IntentGetScore      Intent = "get_score"
	IntentGetAllScores  Intent = "get_all_scores"
	IntentCompareScores Intent = "compare_scores"
	IntentRankScores    Intent = "rank_scores"
	IntentGeneralQuery  Intent = "general_query"
)

type Scope string

const (
	ScopeSingleEmployee    Scope = "single_employee"
	ScopeMultipleEmployees Scope = "multiple_employees"
	ScopeDepartment        Scope = "department"
	ScopeOrganizationWide  Scope = "organization_wide"
)

type Direction string

const (
	DirectionHighest Direction = "highest"
	DirectionLowest  Direction = "lowest"
)

// Criteria is a numerical threshold filter ("above 70", "below 30").
type Criteria struct {
	Op    string // ">" or "<"
	Value float64
}

// Plan is the classified shape of one query: what is being asked, about
// whom, and how much of the roster it spans.
type Plan struct {
	Intent         Intent
	Scope          Scope
	Theme          string
	Trait          string
	AssessmentType string
	Employees      []*entity.Employee
	Limit          int
	Direction      Direction
	Criteria       *Criteria
	Filters        resolver.Filters
}

const defaultRankLimit = 5

var scoreVocabulary = []string{
	"score", "scores", "assessment", "assessments", "rating", "ratings",
	"result", "results", "hogan", "hpi", "hds", "mvpi", "idi",
}

var comparisonIndicators = []string{
	"compare", "comparison", "versus", "vs", "between", "higher", "lower",
	"better than", "worse than", "difference",
}

var rankingIndicators = []string{
	"highest", "top", "best", "maximum", "most",
	"lowest", "bottom", "worst", "minimum", "least", "rank", "ranking",
}

var lowestIndicators = []string{
	"lowest", "bottom", "worst", "minimum", "least",
}

var organizationIndicators = []string{
	"everyone", "all employees", "organization", "organisation",
	"company-wide", "company wide", "across the company", "whole company",
}

// Multi-employee interrogatives widen the scope even when nobody is
// named; narrowing here would silently drop valid candidates.
var multiEmployeeIndicators = []string{
	"who has", "who have", "who are", "which employees", "which employee",
	"which people", "who scores", "who score",
}

var (
	limitPattern = regexp.MustCompile(`\b(?:top|bottom|first|best|worst)\s+(\d+)\b`)
	abovePattern = regexp.MustCompile(`(?:above|over|greater than|more than)\s+(\d+(?:\.\d+)?)\b`)
	belowPattern = regexp.MustCompile(`(?:below|under|less than)\s+(\d+(?:\.\d+)?)\b`)
)

// Classifier turns a query plus its entity resolution into a Plan.
// Classification is rule based and deterministic; no model call involved.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Classify(query string, resolution resolver.Resolution) Plan {
	lower := strings.ToLower(query)
	employees := resolution.Employees()
	filters := resolver.ExtractFilters(query)

	plan := Plan{
		Intent:    IntentGeneralQuery,
		Employees: employees,
		Filters:   filters,
		Direction: DirectionHighest,
	}

	if match, ok := traits.Extract(query); ok {
		plan.Trait = match.Trait
		plan.AssessmentType = match.AssessmentType
	}

	hasScoreVocab := containsAny(lower, scoreVocabulary)
	hasComparison := containsAny(lower, comparisonIndicators)
	hasRanking := containsAny(lower, rankingIndicators)

	if containsAny(lower, lowestIndicators) {
		plan.Direction = DirectionLowest
	}

	if m := abovePattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			plan.Criteria = &Criteria{Op: ">", Value: v}
		}
	} else if m := belowPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			plan.Criteria = &Criteria{Op: "<", Value: v}
		}
	}

	plan.Limit = parseLimit(lower)

	// Rule order matters: ranking fires without named employees, the
	// score rules need resolved people to anchor on.
	switch {
	case hasRanking && plan.Trait != "":
		plan.Intent = IntentRankScores
		if plan.Limit == 0 {
			plan.Limit = defaultRankLimit
		}
	case plan.Criteria != nil && plan.Trait != "":
		plan.Intent = IntentRankScores
	case hasComparison && len(employees) >= 2 && plan.Trait != "":
		plan.Intent = IntentCompareScores
	case plan.Trait != "" && len(employees) == 1:
		plan.Intent = IntentGetScore
	case hasScoreVocab && len(employees) >= 1:
		plan.Intent = IntentGetAllScores
	}

	plan.Scope = c.classifyScope(lower, plan, employees)
	plan.Theme = c.classifyTheme(lower, plan, employees)

	return plan
}

func (c *Classifier) classifyScope(lower string, plan Plan, employees []*entity.Employee) Scope {
	switch {
	case containsAny(lower, organizationIndicators) || plan.Intent == IntentRankScores:
		return ScopeOrganizationWide
	case plan.Filters.Department != "":
		return ScopeDepartment
	case len(employees) > 1 || containsAny(lower, multiEmployeeIndicators):
		return ScopeMultipleEmployees
	default:
		return ScopeSingleEmployee
	}
}

func (c *Classifier) classifyTheme(lower string, plan Plan, employees []*entity.Employee) string {
	switch {
	case strings.Contains(lower, "succession") || strings.Contains(lower, "successor"):
		return conversation.ThemeSuccessionPlanning
	case plan.Scope == ScopeDepartment:
		return conversation.ThemeDepartmentAnalysis
	case strings.Contains(lower, "team"):
		return conversation.ThemeTeamAnalysis
	case plan.Intent == IntentCompareScores || len(employees) > 1:
		return conversation.ThemeCrossComparison
	case plan.Scope == ScopeOrganizationWide:
		return conversation.ThemeOrganizationWide
	case len(employees) == 1:
		return conversation.ThemeIndividualProfile
	default:
		return conversation.ThemeGeneralGuidance
	}
}

func parseLimit(lower string) int {
	if m := limitPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func containsAny(text string, vocabulary []string) bool {
	for _, v := range vocabulary {
		if containsWord(text, v) {
			return true
		}
	}
	return false
}

func containsWord(text, phrase string) bool {
	idx := 0
	for {
		pos := strings.Index(text[idx:], phrase)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(phrase)
		startOK := start == 0 || !isAlnum(text[start-1])
		endOK := end == len(text) || !isAlnum(text[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
