// Package persistence defines the repository contracts for workflows and
// execution records, plus the standardized error types implementations use.
package persistence

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// WorkflowRepository is the CRUD store for workflow graphs.
type WorkflowRepository interface {
	// Create stores a new workflow. ErrWorkflowExists if the id is taken.
	Create(ctx context.Context, workflow *models.Workflow) error

	// Update replaces an existing workflow. ErrWorkflowNotFound if unknown.
	Update(ctx context.Context, workflow *models.Workflow) error

	// GetByID returns the workflow or ErrWorkflowNotFound.
	GetByID(ctx context.Context, id string) (*models.Workflow, error)

	// Delete removes the workflow or returns ErrWorkflowNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all workflows, newest-first.
	List(ctx context.Context) ([]*models.Workflow, error)
}

// ExecutionRepository is the append-only store for completed runs.
type ExecutionRepository interface {
	// Create appends an execution record.
	Create(ctx context.Context, execution *models.Execution) error

	// ListByWorkflow returns the executions for one workflow, newest-first.
	ListByWorkflow(ctx context.Context, workflowID string) ([]*models.Execution, error)
}

// Persistence bundles the repositories behind one storage backend.
type Persistence interface {
	WorkflowRepository() WorkflowRepository
	ExecutionRepository() ExecutionRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
