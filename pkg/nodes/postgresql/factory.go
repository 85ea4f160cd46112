package postgresql

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// PostgreSQLNodeFactory creates PostgreSQLNode instances.
type PostgreSQLNodeFactory struct{}

// Create creates a new PostgreSQLNode instance.
func (f *PostgreSQLNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewPostgreSQLNode(), nil
}

// ID returns the factory ID.
func (f *PostgreSQLNodeFactory) ID() string {
	return models.NodeKindPostgreSQL
}

// Name returns the factory name.
func (f *PostgreSQLNodeFactory) Name() string {
	return "PostgreSQL"
}

// Description returns the factory description.
func (f *PostgreSQLNodeFactory) Description() string {
	return "Runs a SQL query and propagates the result set as a JSON envelope."
}

// Schema returns the JSON schema for PostgreSQL node configuration.
func (f *PostgreSQLNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"host":     map[string]any{"type": "string", "description": "Database host. Defaults to localhost."},
			"port":     map[string]any{"type": "string", "description": "Database port. Defaults to 5432."},
			"database": map[string]any{"type": "string", "description": "Database name."},
			"username": map[string]any{"type": "string", "description": "Login role."},
			"password": map[string]any{"type": "string", "description": "Login password. Defaults to empty."},
			"query":    map[string]any{"type": "string", "description": "SQL statement executed under a 30s timeout."},
		},
	}
}

// NewPostgreSQLNodeFactory creates a new factory instance.
func NewPostgreSQLNodeFactory() protocol.CapabilityFactory {
	return &PostgreSQLNodeFactory{}
}
