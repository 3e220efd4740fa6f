package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/inference"
	"github.com/tripmitra/api/internal/models"
)

type fakeChatRepo struct {
	messages []*models.ChatMessage
}

func (f *fakeChatRepo) AppendChatMessage(ctx context.Context, msg *models.ChatMessage, accessToken string) error {
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatRepo) ChatHistory(ctx context.Context, userID, accessToken string) ([]*models.ChatMessage, error) {
	return f.messages, nil
}

type fakeCompleter struct {
	turns []inference.ChatTurn
	reply string
}

func (f *fakeCompleter) Complete(ctx context.Context, turns []inference.ChatTurn) (string, error) {
	f.turns = turns
	return f.reply, nil
}

func TestChatSendReplaysHistory(t *testing.T) {
	repo := &fakeChatRepo{messages: []*models.ChatMessage{
		{UserID: "user-1", Role: models.ChatRoleUser, Content: "hi"},
		{UserID: "user-1", Role: models.ChatRoleAssistant, Content: "hello"},
	}}
	completer := &fakeCompleter{reply: "Try the beaches in north Goa."}
	cs := NewChatService(repo, completer)

	reply, err := cs.Send(context.Background(), "user-1", "where should I go in Goa?", "token")
	require.NoError(t, err)

	assert.Equal(t, models.ChatRoleAssistant, reply.Role)
	assert.Equal(t, "Try the beaches in north Goa.", reply.Content)

	// prior history plus the new user message goes to the model
	require.Len(t, completer.turns, 3)
	assert.Equal(t, "where should I go in Goa?", completer.turns[2].Content)

	// user message and assistant reply are both persisted
	assert.Len(t, repo.messages, 4)
}

func TestChatSendRequiresMessage(t *testing.T) {
	cs := NewChatService(&fakeChatRepo{}, &fakeCompleter{})

	_, err := cs.Send(context.Background(), "user-1", "", "token")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}

func TestChatHistoryEmpty(t *testing.T) {
	cs := NewChatService(&fakeChatRepo{}, &fakeCompleter{})

	history, err := cs.History(context.Background(), "user-1", "token")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
