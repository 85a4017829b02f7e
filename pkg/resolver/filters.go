package resolver

import (
	"regexp"
	"strconv"
	"strings"
)

// Filters are structured constraints extracted from query text, applied
// before or alongside semantic retrieval.
type Filters struct {
	Department    string
	MinExperience int // exclusive lower bound in years, 0 = unset
	MaxExperience int // exclusive upper bound in years, 0 = unset
}

func (f Filters) IsZero() bool {
	return f.Department == "" && f.MinExperience == 0 && f.MaxExperience == 0
}

var knownDepartments = []string{
	"engineering",
	"product",
	"marketing",
	"sales",
	"human resources",
	"hr",
	"finance",
}

var (
	plusYearsPattern  = regexp.MustCompile(`(\d+)\+\s*years`)
	overYearsPattern  = regexp.MustCompile(`(?:over|more than)\s+(\d+)\s+years`)
	underYearsPattern = regexp.MustCompile(`(?:under|less than)\s+(\d+)\s+years`)
)

// seniorExperienceYears is the implicit floor applied when a query says
// "senior" without a number.
const seniorExperienceYears = 8

// ExtractFilters pulls department and experience constraints out of the
// query text.
func ExtractFilters(query string) Filters {
	lower := strings.ToLower(query)
	var f Filters

	for _, dept := range knownDepartments {
		if containsPhrase(lower, dept) {
			if dept == "hr" {
				dept = "human resources"
			}
			f.Department = dept
			break
		}
	}

	if m := plusYearsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.MinExperience = n
		}
	} else if m := overYearsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.MinExperience = n
		}
	}

	if m := underYearsPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.MaxExperience = n
		}
	}

	if f.MinExperience == 0 && containsPhrase(lower, "senior") {
		f.MinExperience = seniorExperienceYears
	}

	return f
}
