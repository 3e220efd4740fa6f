package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Default model per task. Callers may override with any catalog model ID.
const (
	DefaultTextModel        = "gpt2"
	DefaultEmbeddingModel   = "sentence-transformers/all-MiniLM-L6-v2"
	DefaultClassifierModel  = "facebook/bart-large-mnli"
	DefaultSentimentModel   = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	DefaultQAModel          = "deepset/roberta-base-squad2"
	DefaultSummarizerModel  = "facebook/bart-large-cnn"
	DefaultTranslationModel = "Helsinki-NLP/opus-mt-en-hi"
	DefaultNERModel         = "dbmdz/bert-large-cased-finetuned-conll03-english"
)

// Model describes one hosted inference model.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Task        string `json:"task"`
	Endpoint    string `json:"endpoint"`
	PipelineTag string `json:"pipeline_tag"`
	Library     string `json:"library_name"`
	Active      bool   `json:"isActive"`
	Description string `json:"description"`
}

// Catalog lists every model the platform can route inference to.
var Catalog = []Model{
	{
		ID: "gpt2", Name: "GPT-2", Task: "text-generation",
		PipelineTag: "text-generation", Library: "transformers", Active: true,
		Description: "General text generation for travel descriptions",
	},
	{
		ID: "distilgpt2", Name: "DistilGPT-2", Task: "text-generation",
		PipelineTag: "text-generation", Library: "transformers", Active: true,
		Description: "Lightweight text generation",
	},
	{
		ID: "sentence-transformers/all-MiniLM-L6-v2", Name: "All-MiniLM-L6-v2", Task: "feature-extraction",
		PipelineTag: "sentence-similarity", Library: "sentence-transformers", Active: true,
		Description: "Semantic search for destinations and facilities",
	},
	{
		ID: "sentence-transformers/all-mpnet-base-v2", Name: "All-MPNet-Base-v2", Task: "feature-extraction",
		PipelineTag: "sentence-similarity", Library: "sentence-transformers", Active: true,
		Description: "High-quality embeddings for travel recommendations",
	},
	{
		ID: "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2", Name: "Multilingual Paraphrase", Task: "feature-extraction",
		PipelineTag: "sentence-similarity", Library: "sentence-transformers", Active: true,
		Description: "Multilingual semantic search for Indian languages",
	},
	{
		ID: "cardiffnlp/twitter-roberta-base-sentiment-latest", Name: "Twitter RoBERTa Sentiment", Task: "sentiment-analysis",
		PipelineTag: "text-classification", Library: "transformers", Active: true,
		Description: "Sentiment analysis for reviews and feedback",
	},
	{
		ID: "facebook/bart-large-mnli", Name: "BART Large MNLI", Task: "text-classification",
		PipelineTag: "zero-shot-classification", Library: "transformers", Active: true,
		Description: "Classify travel queries and intents",
	},
	{
		ID: "deepset/roberta-base-squad2", Name: "RoBERTa Base SQuAD2", Task: "question-answering",
		PipelineTag: "question-answering", Library: "transformers", Active: true,
		Description: "Answer questions about destinations and facilities",
	},
	{
		ID: "facebook/bart-large-cnn", Name: "BART Large CNN", Task: "summarization",
		PipelineTag: "summarization", Library: "transformers", Active: true,
		Description: "Summarize travel information and reviews",
	},
	{
		ID: "Helsinki-NLP/opus-mt-en-hi", Name: "English to Hindi Translation", Task: "translation",
		PipelineTag: "translation", Library: "transformers", Active: true,
		Description: "Translate content to Hindi for local users",
	},
	{
		ID: "dbmdz/bert-large-cased-finetuned-conll03-english", Name: "BERT NER", Task: "token-classification",
		PipelineTag: "token-classification", Library: "transformers", Active: true,
		Description: "Extract location names and entities from text",
	},
}

func init() {
	for i := range Catalog {
		Catalog[i].Endpoint = defaultBaseURL + "/" + Catalog[i].ID
	}
}

// ModelByID looks the model up in the catalog.
func ModelByID(id string) (Model, bool) {
	for _, m := range Catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// ActiveModels returns the catalog filtered to active models.
func ActiveModels() []Model {
	var out []Model
	for _, m := range Catalog {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

// ModelsByTask returns the active models serving a task.
func ModelsByTask(task string) []Model {
	var out []Model
	for _, m := range Catalog {
		if m.Active && m.Task == task {
			out = append(out, m)
		}
	}
	return out
}

// Classification is the zero-shot classifier output. Labels arrive sorted by
// score descending.
type Classification struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// Engine is the inference surface the services depend on.
type Engine interface {
	GenerateText(ctx context.Context, prompt, modelID string) (json.RawMessage, error)
	Embeddings(ctx context.Context, text, modelID string) (json.RawMessage, error)
	ClassifyText(ctx context.Context, text string, labels []string, modelID string) (*Classification, error)
	Sentiment(ctx context.Context, text, modelID string) (json.RawMessage, error)
	AnswerQuestion(ctx context.Context, question, contextText, modelID string) (json.RawMessage, error)
	Summarize(ctx context.Context, text, modelID string) (json.RawMessage, error)
	Translate(ctx context.Context, text, modelID string) (json.RawMessage, error)
	ExtractEntities(ctx context.Context, text, modelID string) (json.RawMessage, error)
}

// Config carries the client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the hosted inference API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("huggingface api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) query(ctx context.Context, modelID string, payload interface{}) (json.RawMessage, error) {
	model, ok := ModelByID(modelID)
	if !ok || !model.Active {
		return nil, fmt.Errorf("model %s not found or inactive", modelID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+model.ID, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("inference request for %s failed with status %d", model.ID, resp.StatusCode)
	}
	return json.RawMessage(raw), nil
}

func (c *Client) GenerateText(ctx context.Context, prompt, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultTextModel
	}
	return c.query(ctx, modelID, map[string]interface{}{
		"inputs": prompt,
		"parameters": map[string]interface{}{
			"max_length":  200,
			"temperature": 0.7,
			"do_sample":   true,
		},
	})
}

func (c *Client) Embeddings(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultEmbeddingModel
	}
	return c.query(ctx, modelID, map[string]interface{}{"inputs": text})
}

func (c *Client) ClassifyText(ctx context.Context, text string, labels []string, modelID string) (*Classification, error) {
	if modelID == "" {
		modelID = DefaultClassifierModel
	}
	raw, err := c.query(ctx, modelID, map[string]interface{}{
		"inputs": text,
		"parameters": map[string]interface{}{
			"candidate_labels": labels,
		},
	})
	if err != nil {
		return nil, err
	}

	var result Classification
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode classification: %v", err)
	}
	if len(result.Labels) == 0 {
		return nil, errors.New("classification returned no labels")
	}
	return &result, nil
}

func (c *Client) Sentiment(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultSentimentModel
	}
	return c.query(ctx, modelID, map[string]interface{}{"inputs": text})
}

func (c *Client) AnswerQuestion(ctx context.Context, question, contextText, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultQAModel
	}
	return c.query(ctx, modelID, map[string]interface{}{
		"inputs": map[string]string{
			"question": question,
			"context":  contextText,
		},
	})
}

func (c *Client) Summarize(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultSummarizerModel
	}
	return c.query(ctx, modelID, map[string]interface{}{
		"inputs": text,
		"parameters": map[string]interface{}{
			"max_length": 150,
			"min_length": 30,
		},
	})
}

func (c *Client) Translate(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultTranslationModel
	}
	return c.query(ctx, modelID, map[string]interface{}{"inputs": text})
}

func (c *Client) ExtractEntities(ctx context.Context, text, modelID string) (json.RawMessage, error) {
	if modelID == "" {
		modelID = DefaultNERModel
	}
	return c.query(ctx, modelID, map[string]interface{}{"inputs": text})
}
