package input

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// InputNodeFactory creates InputNode instances.
type InputNodeFactory struct{}

// Create creates a new InputNode instance.
func (f *InputNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewInputNode(), nil
}

// ID returns the factory ID.
func (f *InputNodeFactory) ID() string {
	return models.NodeKindInput
}

// Name returns the factory name.
func (f *InputNodeFactory) Name() string {
	return "Input"
}

// Description returns the factory description.
func (f *InputNodeFactory) Description() string {
	return "Provides a static value, or relays the run's seed input, into the graph."
}

// Schema returns the JSON schema for Input node configuration.
func (f *InputNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input": map[string]any{
				"type":        "string",
				"description": "Value emitted by this node.",
			},
		},
	}
}

// NewInputNodeFactory creates a new factory instance.
func NewInputNodeFactory() protocol.CapabilityFactory {
	return &InputNodeFactory{}
}
