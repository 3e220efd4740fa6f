package services

import (
	"context"
	"time"

	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

type ChatService struct {
	chatRepo  models.ChatRepo
	completer inference.ChatCompleter
}

func NewChatService(chatRepo models.ChatRepo, completer inference.ChatCompleter) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		completer: completer,
	}
}

// Send stores the user's message, replays the full conversation to the
// language model and stores and returns the assistant's reply.
func (cs *ChatService) Send(ctx context.Context, userID, message, accessToken string) (*models.ChatMessage, error) {
	if userID == "" || message == "" {
		return nil, BadRequest("UserId and message are required")
	}

	userMessage := &models.ChatMessage{
		UserID:    userID,
		Role:      models.ChatRoleUser,
		Content:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := cs.chatRepo.AppendChatMessage(ctx, userMessage, accessToken); err != nil {
		return nil, err
	}

	history, err := cs.chatRepo.ChatHistory(ctx, userID, accessToken)
	if err != nil {
		return nil, err
	}

	turns := make([]inference.ChatTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, inference.ChatTurn{Role: m.Role, Content: m.Content})
	}

	reply, err := cs.completer.Complete(ctx, turns)
	if err != nil {
		return nil, err
	}

	assistantMessage := &models.ChatMessage{
		UserID:    userID,
		Role:      models.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := cs.chatRepo.AppendChatMessage(ctx, assistantMessage, accessToken); err != nil {
		return nil, err
	}
	return assistantMessage, nil
}

// History returns the user's conversation oldest first.
func (cs *ChatService) History(ctx context.Context, userID, accessToken string) ([]*models.ChatMessage, error) {
	if userID == "" {
		return nil, BadRequest("UserId is required")
	}
	history, err := cs.chatRepo.ChatHistory(ctx, userID, accessToken)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []*models.ChatMessage{}
	}
	return history, nil
}
