package output

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// OutputNodeFactory creates OutputNode instances.
type OutputNodeFactory struct{}

// Create creates a new OutputNode instance.
func (f *OutputNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewOutputNode(), nil
}

// ID returns the factory ID.
func (f *OutputNodeFactory) ID() string {
	return models.NodeKindOutput
}

// Name returns the factory name.
func (f *OutputNodeFactory) Name() string {
	return "Output"
}

// Description returns the factory description.
func (f *OutputNodeFactory) Description() string {
	return "Terminal node. Its value becomes the final result of the run."
}

// Schema returns the JSON schema for Output node configuration.
func (f *OutputNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"output": map[string]any{
				"type":        "string",
				"description": "Value reported as the run result. Usually the propagated input placeholder.",
			},
		},
	}
}

// NewOutputNodeFactory creates a new factory instance.
func NewOutputNodeFactory() protocol.CapabilityFactory {
	return &OutputNodeFactory{}
}
