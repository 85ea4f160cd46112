// Package registry maintains the table of node capabilities available to
// the execution engine, keyed by kind tag.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
	"github.com/xeipuuv/gojsonschema"
)

// Registry maps node kind tags to their capability factories. An unknown
// kind is an error at dispatch time, never a silent no-op.
type Registry struct {
	logger    *slog.Logger
	factories map[string]protocol.CapabilityFactory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		logger:    log,
		factories: make(map[string]protocol.CapabilityFactory),
	}
}

// Register adds a capability factory under its kind tag.
func (r *Registry) Register(factory protocol.CapabilityFactory) {
	if _, exists := r.factories[factory.ID()]; !exists {
		r.order = append(r.order, factory.ID())
	}

	r.factories[factory.ID()] = factory
}

// CreateCapability instantiates the capability for a kind tag.
func (r *Registry) CreateCapability(ctx context.Context, kind string) (protocol.Capability, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("node kind '%s' not registered", kind)
	}

	return factory.Create(ctx)
}

// CapabilityInfo describes one registered node kind for the editor catalog.
type CapabilityInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
}

// Catalog returns metadata for every registered kind, in registration
// order.
func (r *Registry) Catalog() []CapabilityInfo {
	catalog := make([]CapabilityInfo, 0, len(r.order))

	for _, id := range r.order {
		factory := r.factories[id]
		catalog = append(catalog, CapabilityInfo{
			ID:          factory.ID(),
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	return catalog
}

// ValidateNode checks a node's config against its kind's JSON schema.
// Unknown kinds and schema violations are rejected before a workflow is
// stored, so the engine never sees them.
func (r *Registry) ValidateNode(node *models.Node) error {
	factory, ok := r.factories[node.Kind]
	if !ok {
		return fmt.Errorf("node %s has unknown kind '%s'", node.ID, node.Kind)
	}

	document := make(map[string]any, len(node.Config))
	for key, value := range node.Config {
		document[key] = value
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(factory.Schema()),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return fmt.Errorf("failed to validate node %s: %w", node.ID, err)
	}

	if !result.Valid() {
		first := result.Errors()[0]

		return fmt.Errorf("node %s config invalid: %s", node.ID, first.String())
	}

	return nil
}

// HealthCheck reports whether the registry has any capabilities loaded.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.factories) == 0 {
		return "No node capabilities registered", false
	}

	return fmt.Sprintf("%d node capabilities registered", len(r.factories)), true
}
