package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletePrependsSystemPrompt(t *testing.T) {
	var gotMessages []ChatTurn
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload struct {
			Model    string     `json:"model"`
			Messages []ChatTurn `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotMessages = payload.Messages
		assert.Equal(t, "gpt-4o-mini", payload.Model)

		w.Write([]byte(`{"choices":[{"message":{"content":"Visit Hampi in winter."}}]}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), []ChatTurn{
		{Role: "user", Content: "when should I visit Hampi?"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Visit Hampi in winter.", reply)
	require.Len(t, gotMessages, 2)
	assert.Equal(t, "system", gotMessages[0].Role)
	assert.Equal(t, "user", gotMessages[1].Role)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewOpenAIClientRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(OpenAIConfig{})
	assert.Error(t, err)
}
