// Package file provides file-based persistence for workflows and execution
// records. Each collection is a single JSON document, lazily loaded into
// memory on first access and rewritten in full on every mutation.
package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/canvasflow/canvasflow/pkg/persistence"
)

const (
	workflowsFile  = "workflows.json"
	executionsFile = "executions.json"
)

// Persistence implements the persistence.Persistence interface on top of
// two JSON collection files under a root directory.
type Persistence struct {
	root          string
	workflowRepo  *WorkflowRepository
	executionRepo *ExecutionRepository
}

// NewPersistence creates a new instance of Persistence rooted at the given
// directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:          cleanRoot,
		workflowRepo:  NewWorkflowRepository(filepath.Join(cleanRoot, workflowsFile)),
		executionRepo: NewExecutionRepository(filepath.Join(cleanRoot, executionsFile)),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is
// nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists, creating it if needed.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	return os.MkdirAll(fp.root, 0750)
}

// WorkflowRepository returns the workflow repository implementation.
func (fp *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return fp.workflowRepo
}

// ExecutionRepository returns the execution repository implementation.
func (fp *Persistence) ExecutionRepository() persistence.ExecutionRepository {
	return fp.executionRepo
}
