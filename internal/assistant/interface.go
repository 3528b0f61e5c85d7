//go:generate mockgen -package mockassistant -source=interface.go -destination=mock/mockassistant.go *
package assistant

import (
	"context"
	"time"
)

// Role tells who wrote a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one bubble of the chat.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Assistant answers security questions from a fixed table of replies.
type Assistant interface {
	// Greeting is the first message of every conversation.
	Greeting() Message
	// Suggestions are questions offered as one-click prompts.
	Suggestions() []string
	// Reply answers question after the configured delay. A blank question
	// is rejected; a cancelled ctx aborts the wait.
	Reply(ctx context.Context, question string) (Message, error)
}
