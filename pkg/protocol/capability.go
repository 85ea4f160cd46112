// Package protocol defines the interfaces and contracts for pluggable node
// capabilities.
package protocol

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// Capability is the execution behavior selected by a node's kind tag.
//
// Execute reads its parameters from node.Config by string key, applying
// capability-specific defaults for absent keys. It returns the logs it
// produced and its output string. Operational problems (bad URL, missing
// file, query timeout) are reported through logs and output text; a
// returned error aborts the whole run, so capabilities reserve it for
// unrecoverable evaluation failures.
type Capability interface {
	Execute(ctx context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error)
}

// CapabilityFactory creates capability instances and provides metadata
// about the node kind.
type CapabilityFactory interface {
	// Create creates a capability instance for one dispatch
	Create(ctx context.Context) (Capability, error)

	// ID returns the kind tag this factory serves
	ID() string

	// Name returns the human-readable name for this node kind
	Name() string

	// Description returns a description of what this node does
	Description() string

	// Schema returns the JSON schema for configuring this node
	Schema() map[string]any
}
