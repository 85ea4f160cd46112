package llm

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// LLMNodeFactory creates LLMNode instances.
type LLMNodeFactory struct{}

// Create creates a new LLMNode instance.
func (f *LLMNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewLLMNode(), nil
}

// ID returns the factory ID.
func (f *LLMNodeFactory) ID() string {
	return models.NodeKindModel
}

// Name returns the factory name.
func (f *LLMNodeFactory) Name() string {
	return "AI Model"
}

// Description returns the factory description.
func (f *LLMNodeFactory) Description() string {
	return "Streams a chat completion from an OpenAI-compatible endpoint."
}

// Schema returns the JSON schema for AI Model node configuration.
func (f *LLMNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"baseUrl": map[string]any{
				"type":        "string",
				"description": "OpenAI-compatible API base. Defaults to http://localhost:11434/v1.",
			},
			"apiKey": map[string]any{
				"type":        "string",
				"description": "Bearer token. Local endpoints accept any value.",
			},
			"model": map[string]any{
				"type":        "string",
				"description": "Model identifier. Defaults to qwen3:14b.",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "User prompt. Usually the propagated input placeholder.",
			},
		},
	}
}

// NewLLMNodeFactory creates a new factory instance.
func NewLLMNodeFactory() protocol.CapabilityFactory {
	return &LLMNodeFactory{}
}
