package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripmitra/api/internal/inference"
)

func TestModelCatalogFilters(t *testing.T) {
	as := NewAIService(&fakeEngine{})

	full := as.ModelCatalog("", nil)
	assert.Equal(t, len(inference.Catalog), full["totalModels"])

	embeddings := as.ModelCatalog("feature-extraction", nil)
	models := embeddings["models"].([]inference.Model)
	require.NotEmpty(t, models)
	for _, m := range models {
		assert.Equal(t, "feature-extraction", m.Task)
	}
}

func TestGenerateDispatch(t *testing.T) {
	cases := []struct {
		task string
		call string
	}{
		{"text-generation", "generate"},
		{"feature-extraction", "embeddings"},
		{"sentiment-analysis", "sentiment"},
		{"summarization", "summarize"},
		{"translation", "translate"},
		{"token-classification", "entities"},
	}
	for _, tc := range cases {
		t.Run(tc.task, func(t *testing.T) {
			engine := &fakeEngine{}
			as := NewAIService(engine)

			result, err := as.Generate(context.Background(), &GenerateRequest{Task: tc.task, Input: "hello"})
			require.NoError(t, err)

			assert.Equal(t, tc.task, result["task"])
			assert.Equal(t, "default", result["modelId"])
			assert.Contains(t, engine.calls, tc.call)
		})
	}
}

func TestGenerateClassification(t *testing.T) {
	engine := &fakeEngine{}
	as := NewAIService(engine)

	result, err := as.Generate(context.Background(), &GenerateRequest{
		Task:  "text-classification",
		Input: "great beaches",
	})
	require.NoError(t, err)
	assert.Contains(t, engine.calls, "classify")
	assert.NotNil(t, result["result"])
}

func TestGenerateQuestionAnsweringNeedsContext(t *testing.T) {
	as := NewAIService(&fakeEngine{})

	_, err := as.Generate(context.Background(), &GenerateRequest{
		Task:  "question-answering",
		Input: "where is the fort?",
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}

func TestGenerateValidation(t *testing.T) {
	as := NewAIService(&fakeEngine{})

	var reqErr *RequestError

	_, err := as.Generate(context.Background(), &GenerateRequest{Task: "summarization"})
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)

	_, err = as.Generate(context.Background(), &GenerateRequest{Task: "alchemy", Input: "lead"})
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.Status)
}
