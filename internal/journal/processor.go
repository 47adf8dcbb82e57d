package journal

import (
	"context"
	"fmt"

	"github.com/rcliao/life-os/internal/classify"
	"github.com/rcliao/life-os/internal/llm"
	"github.com/rcliao/life-os/internal/model"
)

const (
	DefaultStorageModel   = llm.DefaultOpenAIStorageModel
	DefaultRetrievalModel = llm.DefaultOpenAIRetrievalModel
)

// Result is the outcome of processing one submission.
type Result struct {
	Kind    classify.Mode
	Decoded classify.Decoded // storage only
	Text    string           // retrieval answer, or the raw storage output
}

// Processor routes a submission and makes the matching model call.
type Processor struct {
	provider llm.Provider

	StorageModel   string
	RetrievalModel string
	// StorageTemperature is left to the provider default when nil.
	StorageTemperature *float64
	ContextSize        int
}

// NewProcessor returns a Processor using the default models.
func NewProcessor(p llm.Provider) *Processor {
	return &Processor{
		provider:       p,
		StorageModel:   DefaultStorageModel,
		RetrievalModel: DefaultRetrievalModel,
		ContextSize:    classify.DefaultContextSize,
	}
}

// Process classifies input and calls the model. memories must be newest first.
func (p *Processor) Process(ctx context.Context, input string, memories []model.Memory) (Result, error) {
	if classify.Classify(input) == classify.Retrieval {
		window := classify.ContextWindow(memories, p.ContextSize)
		text, err := p.provider.Generate(ctx, llm.Request{
			Model:       p.RetrievalModel,
			System:      classify.RetrievalSystem(),
			Prompt:      classify.RetrievalPrompt(window, input),
			Temperature: llm.Float(classify.RetrievalTemperature),
		})
		if err != nil {
			return Result{Kind: classify.Retrieval}, fmt.Errorf("retrieval: %w", err)
		}
		return Result{Kind: classify.Retrieval, Text: text}, nil
	}

	raw, err := p.provider.Generate(ctx, llm.Request{
		Model:       p.StorageModel,
		System:      classify.StorageSystem(),
		Prompt:      input,
		Temperature: p.StorageTemperature,
		Schema: &llm.Schema{
			Name:        "memory_analysis",
			Description: "Structured analysis of a captured life memory",
			Definition:  classify.Schema(),
		},
	})
	if err != nil {
		return Result{Kind: classify.Storage}, fmt.Errorf("storage: %w", err)
	}
	return Result{Kind: classify.Storage, Decoded: classify.Decode(raw), Text: raw}, nil
}
