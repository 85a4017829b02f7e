package prompt

import (
	"strings"

	"knowthee-be/pkg/conversation"
	"knowthee-be/pkg/llm"
)

const systemPrompt = `You are a people-analytics assistant answering questions about employees using assessment data (Hogan HPI, HDS, MVPI and the IDI inventory) and related documents.

Rules:
- When assessment scores are available in the context, always state the exact numerical value (e.g. "Adjustment: 58"). Never paraphrase scores as "high", "moderate" or "low".
- Only discuss employees present in the provided context. If the context does not cover someone, say so instead of guessing.
- Keep answers concise and grounded in the supplied material.`

// Builder renders the message sequence for a general query: system
// instructions, retained conversation turns, then the assembled employee
// context and the user's question.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) System() string {
	return systemPrompt
}

func (b *Builder) Build(state *conversation.State, employeeContext, query string) []llm.Message {
	messages := make([]llm.Message, 0, len(state.Turns)+3)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})

	for _, turn := range state.Turns {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	var user strings.Builder
	if employeeContext != "" {
		user.WriteString("Employee context:\n")
		user.WriteString(employeeContext)
		user.WriteString("\n\n")
	}
	user.WriteString("Question: ")
	user.WriteString(query)

	messages = append(messages, llm.Message{Role: "user", Content: user.String()})
	return messages
}
