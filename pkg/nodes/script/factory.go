package script

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// ScriptNodeFactory creates ScriptNode instances.
type ScriptNodeFactory struct{}

// Create creates a new ScriptNode instance.
func (f *ScriptNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewScriptNode(), nil
}

// ID returns the factory ID.
func (f *ScriptNodeFactory) ID() string {
	return models.NodeKindScript
}

// Name returns the factory name.
func (f *ScriptNodeFactory) Name() string {
	return "Lua Script"
}

// Description returns the factory description.
func (f *ScriptNodeFactory) Description() string {
	return "Evaluates a Lua script in a sandboxed interpreter with a JSON helper library."
}

// Schema returns the JSON schema for Lua Script node configuration.
func (f *ScriptNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"script": map[string]any{
				"type":        "string",
				"description": "Lua source. The last returned value becomes the node output; require(\"json\") is available.",
				"examples": []string{
					`return "hello"`,
					`local json = require("json"); return json.encode({a = 1})`,
				},
			},
		},
	}
}

// NewScriptNodeFactory creates a new factory instance.
func NewScriptNodeFactory() protocol.CapabilityFactory {
	return &ScriptNodeFactory{}
}
