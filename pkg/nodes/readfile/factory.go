package readfile

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// ReadFileNodeFactory creates ReadFileNode instances.
type ReadFileNodeFactory struct{}

// Create creates a new ReadFileNode instance.
func (f *ReadFileNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewReadFileNode(), nil
}

// ID returns the factory ID.
func (f *ReadFileNodeFactory) ID() string {
	return models.NodeKindReadFile
}

// Name returns the factory name.
func (f *ReadFileNodeFactory) Name() string {
	return "Read File"
}

// Description returns the factory description.
func (f *ReadFileNodeFactory) Description() string {
	return "Reads a file and propagates its content as text."
}

// Schema returns the JSON schema for Read File node configuration.
func (f *ReadFileNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Path of the file to read.",
			},
		},
	}
}

// NewReadFileNodeFactory creates a new factory instance.
func NewReadFileNodeFactory() protocol.CapabilityFactory {
	return &ReadFileNodeFactory{}
}
