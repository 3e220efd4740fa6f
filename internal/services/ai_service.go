package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tripmitra/api/internal/inference"
)

type GenerateRequest struct {
	Task       string              `json:"task"`
	Input      string              `json:"input"`
	ModelID    string              `json:"modelId"`
	Parameters *GenerateParameters `json:"parameters,omitempty"`
}

type GenerateParameters struct {
	Labels  []string `json:"labels,omitempty"`
	Context string   `json:"context,omitempty"`
}

type AIService struct {
	engine inference.Engine
}

func NewAIService(engine inference.Engine) *AIService {
	return &AIService{engine: engine}
}

// ModelCatalog returns the catalog filtered by task and active flag,
// alongside the grouped-by-task view.
func (as *AIService) ModelCatalog(task string, active *bool) map[string]interface{} {
	models := inference.Catalog
	if task != "" {
		filtered := []inference.Model{}
		for _, m := range models {
			if m.Task == task {
				filtered = append(filtered, m)
			}
		}
		models = filtered
	}
	if active != nil {
		filtered := []inference.Model{}
		for _, m := range models {
			if m.Active == *active {
				filtered = append(filtered, m)
			}
		}
		models = filtered
	}

	byTask := map[string][]inference.Model{}
	for _, m := range models {
		byTask[m.Task] = append(byTask[m.Task], m)
	}
	tasks := make([]string, 0, len(byTask))
	for t := range byTask {
		tasks = append(tasks, t)
	}
	activeCount := 0
	for _, m := range models {
		if m.Active {
			activeCount++
		}
	}

	return map[string]interface{}{
		"models":         models,
		"modelsByTask":   byTask,
		"totalModels":    len(models),
		"activeModels":   activeCount,
		"availableTasks": tasks,
	}
}

// Generate dispatches one inference call by task name.
func (as *AIService) Generate(ctx context.Context, req *GenerateRequest) (map[string]interface{}, error) {
	if req.Task == "" || req.Input == "" {
		return nil, BadRequest("Task and input are required")
	}

	var (
		result json.RawMessage
		err    error
	)
	switch req.Task {
	case "text-generation":
		result, err = as.engine.GenerateText(ctx, req.Input, req.ModelID)
	case "feature-extraction":
		result, err = as.engine.Embeddings(ctx, req.Input, req.ModelID)
	case "text-classification":
		labels := []string{"positive", "negative", "neutral"}
		if req.Parameters != nil && len(req.Parameters.Labels) > 0 {
			labels = req.Parameters.Labels
		}
		var classification *inference.Classification
		classification, err = as.engine.ClassifyText(ctx, req.Input, labels, req.ModelID)
		if err == nil {
			result, err = json.Marshal(classification)
		}
	case "sentiment-analysis":
		result, err = as.engine.Sentiment(ctx, req.Input, req.ModelID)
	case "question-answering":
		if req.Parameters == nil || req.Parameters.Context == "" {
			return nil, BadRequest("Context is required for question answering")
		}
		result, err = as.engine.AnswerQuestion(ctx, req.Input, req.Parameters.Context, req.ModelID)
	case "summarization":
		result, err = as.engine.Summarize(ctx, req.Input, req.ModelID)
	case "translation":
		result, err = as.engine.Translate(ctx, req.Input, req.ModelID)
	case "token-classification":
		result, err = as.engine.ExtractEntities(ctx, req.Input, req.ModelID)
	default:
		return nil, BadRequest(fmt.Sprintf("Unsupported task: %s", req.Task))
	}
	if err != nil {
		return nil, err
	}

	modelID := req.ModelID
	if modelID == "" {
		modelID = "default"
	}
	return map[string]interface{}{
		"task":           req.Task,
		"input":          req.Input,
		"modelId":        modelID,
		"result":         result,
		"processingTime": time.Now().UTC(),
	}, nil
}
