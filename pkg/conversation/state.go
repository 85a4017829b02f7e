package conversation

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation themes steer working set caps and employee limits.
const (
	ThemeIndividualProfile  = "individual_profile"
	ThemeCrossComparison    = "cross_comparison"
	ThemeTeamAnalysis       = "team_analysis"
	ThemeSuccessionPlanning = "succession_planning"
	ThemeDepartmentAnalysis = "department_analysis"
	ThemeOrganizationWide   = "organization_wide"
	ThemeGeneralGuidance    = "general_guidance"
)

// Turn is one utterance in a session, with its token cost and the
// employees it referenced.
type Turn struct {
	Role        string      `json:"role"`
	Content     string      `json:"content"`
	Tokens      int         `json:"tokens"`
	EmployeeIds []uuid.UUID `json:"employee_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TrackedEmployee is a working set member with its decaying relevance.
type TrackedEmployee struct {
	Id        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Relevance float64   `json:"relevance"`
	LastSeen  time.Time `json:"last_seen"`
}

// State is the full conversational memory for one session.
type State struct {
	SessionId  string                         `json:"session_id"`
	Turns      []Turn                         `json:"turns"`
	WorkingSet map[uuid.UUID]*TrackedEmployee `json:"working_set"`
	Theme      string                         `json:"theme"`
	CreatedAt  time.Time                      `json:"created_at"`
	UpdatedAt  time.Time                      `json:"updated_at"`
}

func NewState(sessionId string) *State {
	now := time.Now()
	return &State{
		SessionId:  sessionId,
		Turns:      make([]Turn, 0),
		WorkingSet: make(map[uuid.UUID]*TrackedEmployee),
		Theme:      ThemeGeneralGuidance,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ConversationTokens is the summed token cost of all retained turns.
func (s *State) ConversationTokens() int {
	total := 0
	for _, t := range s.Turns {
		total += t.Tokens
	}
	return total
}
