package writefile

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// WriteFileNodeFactory creates WriteFileNode instances.
type WriteFileNodeFactory struct{}

// Create creates a new WriteFileNode instance.
func (f *WriteFileNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewWriteFileNode(), nil
}

// ID returns the factory ID.
func (f *WriteFileNodeFactory) ID() string {
	return models.NodeKindWriteFile
}

// Name returns the factory name.
func (f *WriteFileNodeFactory) Name() string {
	return "Write File"
}

// Description returns the factory description.
func (f *WriteFileNodeFactory) Description() string {
	return "Writes content to a file, creating parent directories as needed."
}

// Schema returns the JSON schema for Write File node configuration.
func (f *WriteFileNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Destination path.",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Content written verbatim. Usually the propagated input placeholder.",
			},
		},
	}
}

// NewWriteFileNodeFactory creates a new factory instance.
func NewWriteFileNodeFactory() protocol.CapabilityFactory {
	return &WriteFileNodeFactory{}
}
