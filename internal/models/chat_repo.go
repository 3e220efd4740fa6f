package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"
)

type ChatRepo interface {
	AppendChatMessage(ctx context.Context, message *ChatMessage, accessToken string) error
	ChatHistory(ctx context.Context, userID string, accessToken string) ([]*ChatMessage, error)
}

func (su *SupabaseRepo) AppendChatMessage(ctx context.Context, message *ChatMessage, accessToken string) error {
	c, err := su.client(accessToken)
	if err != nil {
		return err
	}

	if _, _, err := c.From(ChatsTable).
		Insert(message, false, "", "", "").
		Execute(); err != nil {
		return fmt.Errorf("failed to insert chat message: %v", err)
	}
	return nil
}

// ChatHistory returns the user's conversation oldest first, the order the
// completion API expects it.
func (su *SupabaseRepo) ChatHistory(ctx context.Context, userID string, accessToken string) ([]*ChatMessage, error) {
	c, err := su.client(accessToken)
	if err != nil {
		return nil, err
	}

	data, _, err := c.From(ChatsTable).
		Select("*", "exact", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %v", err)
	}

	var messages []*ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat history: %v", err)
	}
	return messages, nil
}
