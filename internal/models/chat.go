package models

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage rows live in the Supabase chats table; the full per-user
// history is replayed to the language model on every turn.
type ChatMessage struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
