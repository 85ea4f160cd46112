package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/canvasflow/canvasflow/pkg/models"
)

// ExecutionRepository is the append-only collection of execution records,
// backed by a single JSON file like WorkflowRepository. Records are never
// updated or removed.
type ExecutionRepository struct {
	path string

	mu         sync.RWMutex
	loaded     bool
	executions []*models.Execution
}

// NewExecutionRepository creates an execution repository backed by path.
func NewExecutionRepository(path string) *ExecutionRepository {
	return &ExecutionRepository{path: path}
}

func (er *ExecutionRepository) ensureLoaded() error {
	er.mu.Lock()
	defer er.mu.Unlock()

	if er.loaded {
		return nil
	}

	body, err := os.ReadFile(er.path)
	if err != nil {
		if os.IsNotExist(err) {
			er.executions = make([]*models.Execution, 0)
			er.loaded = true

			return nil
		}

		return fmt.Errorf("failed to read execution collection: %w", err)
	}

	if err := json.Unmarshal(body, &er.executions); err != nil {
		return fmt.Errorf("failed to unmarshal execution collection: %w", err)
	}

	er.loaded = true

	return nil
}

// save rewrites the full collection. Callers must hold the write lock.
func (er *ExecutionRepository) save() error {
	if err := os.MkdirAll(filepath.Dir(er.path), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(er.executions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution collection: %w", err)
	}

	if err := os.WriteFile(er.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write execution collection: %w", err)
	}

	return nil
}

// Create appends an execution record.
func (er *ExecutionRepository) Create(_ context.Context, execution *models.Execution) error {
	if err := er.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to create execution %s: %w", execution.ID, err)
	}

	er.mu.Lock()
	defer er.mu.Unlock()

	er.executions = append(er.executions, execution)

	if err := er.save(); err != nil {
		return fmt.Errorf("failed to create execution %s: %w", execution.ID, err)
	}

	return nil
}

// ListByWorkflow returns the executions recorded for one workflow,
// newest-first.
func (er *ExecutionRepository) ListByWorkflow(_ context.Context, workflowID string) ([]*models.Execution, error) {
	if err := er.ensureLoaded(); err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}

	er.mu.RLock()
	defer er.mu.RUnlock()

	result := make([]*models.Execution, 0)

	for i := len(er.executions) - 1; i >= 0; i-- {
		if er.executions[i].WorkflowID == workflowID {
			result = append(result, er.executions[i])
		}
	}

	return result, nil
}
