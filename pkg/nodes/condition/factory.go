package condition

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// ConditionNodeFactory creates ConditionNode instances.
type ConditionNodeFactory struct{}

// Create creates a new ConditionNode instance.
func (f *ConditionNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewConditionNode(), nil
}

// ID returns the factory ID.
func (f *ConditionNodeFactory) ID() string {
	return models.NodeKindCondition
}

// Name returns the factory name.
func (f *ConditionNodeFactory) Name() string {
	return "Condition"
}

// Description returns the factory description.
func (f *ConditionNodeFactory) Description() string {
	return "Evaluates a minimal boolean expression and outputs \"true\" or \"false\"."
}

// Schema returns the JSON schema for Condition node configuration.
func (f *ConditionNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"condition": map[string]any{
				"type":        "string",
				"description": "Expression to evaluate. Supported: true/false literals, A==B, A!=B (string), A>B, A<B (numeric).",
				"examples": []string{
					"true",
					"3>2",
					"${input}==expected",
				},
			},
		},
	}
}

// NewConditionNodeFactory creates a new factory instance.
func NewConditionNodeFactory() protocol.CapabilityFactory {
	return &ConditionNodeFactory{}
}
