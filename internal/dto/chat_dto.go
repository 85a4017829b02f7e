package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id"`
}

// CandidateResponse is one possible match when a mention was ambiguous.
type CandidateResponse struct {
	Id              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	CurrentPosition string    `json:"current_position"`
	Department      string    `json:"department"`
	Email           string    `json:"email"`
}

type ChatResponse struct {
	Response            string              `json:"response"`
	SessionId           string              `json:"session_id"`
	ClarificationNeeded bool                `json:"clarification_needed"`
	Candidates          []CandidateResponse `json:"candidates,omitempty"`
	Intent              string              `json:"intent"`
	Theme               string              `json:"theme"`
	// ContextEmployees names everyone whose material informed the answer.
	ContextEmployees []string `json:"context_employees,omitempty"`
	// ResolvedQuery is set when back-references were rewritten into
	// explicit names, so callers can see what was actually asked.
	ResolvedQuery string `json:"resolved_query,omitempty"`
}

type TrackedEmployeeResponse struct {
	Id        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Relevance float64   `json:"relevance"`
	LastSeen  time.Time `json:"last_seen"`
}

// SessionInsightsResponse exposes the memory state of one session for
// inspection and debugging.
type SessionInsightsResponse struct {
	SessionId          string                    `json:"session_id"`
	Turns              int                       `json:"turns"`
	ConversationTokens int                       `json:"conversation_tokens"`
	TokenLimit         int                       `json:"token_limit"`
	Theme              string                    `json:"theme"`
	WorkingSet         []TrackedEmployeeResponse `json:"working_set"`
}

type ClearSessionResponse struct {
	SessionId string `json:"session_id"`
	Cleared   bool   `json:"cleared"`
}
