package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence"
)

// WorkflowRepository is a write-through collection of workflows backed by a
// single JSON file. The collection is loaded once, on first access, and the
// whole document is rewritten inside the write lock on every mutation.
type WorkflowRepository struct {
	path string

	mu        sync.RWMutex
	loaded    bool
	workflows []*models.Workflow
}

// NewWorkflowRepository creates a workflow repository backed by path.
func NewWorkflowRepository(path string) *WorkflowRepository {
	return &WorkflowRepository{path: path}
}

// ensureLoaded loads the collection from disk on first use. A missing file
// is an empty collection.
func (wr *WorkflowRepository) ensureLoaded() error {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	if wr.loaded {
		return nil
	}

	body, err := os.ReadFile(wr.path)
	if err != nil {
		if os.IsNotExist(err) {
			wr.workflows = make([]*models.Workflow, 0)
			wr.loaded = true

			return nil
		}

		return fmt.Errorf("failed to read workflow collection: %w", err)
	}

	if err := json.Unmarshal(body, &wr.workflows); err != nil {
		return fmt.Errorf("failed to unmarshal workflow collection: %w", err)
	}

	wr.loaded = true

	return nil
}

// save rewrites the full collection. Callers must hold the write lock.
func (wr *WorkflowRepository) save() error {
	if err := os.MkdirAll(filepath.Dir(wr.path), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(wr.workflows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workflow collection: %w", err)
	}

	if err := os.WriteFile(wr.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write workflow collection: %w", err)
	}

	return nil
}

// Create stores a new workflow. The caller is responsible for assigning the
// id and timestamps beforehand.
func (wr *WorkflowRepository) Create(_ context.Context, workflow *models.Workflow) error {
	if err := wr.ensureLoaded(); err != nil {
		return persistence.NewWorkflowError("Create", workflow.ID, err)
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	if wr.indexOf(workflow.ID) >= 0 {
		return persistence.NewWorkflowError("Create", workflow.ID, persistence.ErrWorkflowExists)
	}

	wr.workflows = append(wr.workflows, cloneWorkflow(workflow))

	if err := wr.save(); err != nil {
		return persistence.NewWorkflowError("Create", workflow.ID, err)
	}

	return nil
}

// Update replaces an existing workflow in place.
func (wr *WorkflowRepository) Update(_ context.Context, workflow *models.Workflow) error {
	if err := wr.ensureLoaded(); err != nil {
		return persistence.NewWorkflowError("Update", workflow.ID, err)
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	index := wr.indexOf(workflow.ID)
	if index < 0 {
		return persistence.NewWorkflowError("Update", workflow.ID, persistence.ErrWorkflowNotFound)
	}

	wr.workflows[index] = cloneWorkflow(workflow)

	if err := wr.save(); err != nil {
		return persistence.NewWorkflowError("Update", workflow.ID, err)
	}

	return nil
}

// GetByID returns a copy of the workflow, so callers can run or mutate it
// without holding the store lock.
func (wr *WorkflowRepository) GetByID(_ context.Context, id string) (*models.Workflow, error) {
	if err := wr.ensureLoaded(); err != nil {
		return nil, persistence.NewWorkflowError("GetByID", id, err)
	}

	wr.mu.RLock()
	defer wr.mu.RUnlock()

	index := wr.indexOf(id)
	if index < 0 {
		return nil, persistence.NewWorkflowError("GetByID", id, persistence.ErrWorkflowNotFound)
	}

	return cloneWorkflow(wr.workflows[index]), nil
}

// Delete removes a workflow by its ID.
func (wr *WorkflowRepository) Delete(_ context.Context, id string) error {
	if err := wr.ensureLoaded(); err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	index := wr.indexOf(id)
	if index < 0 {
		return persistence.NewWorkflowError("Delete", id, persistence.ErrWorkflowNotFound)
	}

	wr.workflows = append(wr.workflows[:index], wr.workflows[index+1:]...)

	if err := wr.save(); err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	return nil
}

// List returns all workflows, newest-first.
func (wr *WorkflowRepository) List(_ context.Context) ([]*models.Workflow, error) {
	if err := wr.ensureLoaded(); err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	wr.mu.RLock()
	defer wr.mu.RUnlock()

	result := make([]*models.Workflow, 0, len(wr.workflows))
	for i := len(wr.workflows) - 1; i >= 0; i-- {
		result = append(result, cloneWorkflow(wr.workflows[i]))
	}

	return result, nil
}

// indexOf returns the position of the workflow with the given id, or -1.
// Callers must hold at least the read lock.
func (wr *WorkflowRepository) indexOf(id string) int {
	for i, workflow := range wr.workflows {
		if workflow.ID == id {
			return i
		}
	}

	return -1
}

// cloneWorkflow deep-copies a workflow so runs and callers never share
// node config maps with the stored collection.
func cloneWorkflow(workflow *models.Workflow) *models.Workflow {
	clone := *workflow

	clone.Nodes = make([]*models.Node, len(workflow.Nodes))
	for i, node := range workflow.Nodes {
		nodeCopy := *node
		nodeCopy.Config = make(map[string]string, len(node.Config))

		for key, value := range node.Config {
			nodeCopy.Config[key] = value
		}

		clone.Nodes[i] = &nodeCopy
	}

	clone.Edges = make([]*models.Edge, len(workflow.Edges))
	for i, edge := range workflow.Edges {
		edgeCopy := *edge
		clone.Edges[i] = &edgeCopy
	}

	return &clone
}
