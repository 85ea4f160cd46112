package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence"
)

func testWorkflow(id, name string) *models.Workflow {
	return &models.Workflow{
		ID:   id,
		Name: name,
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "x"}},
		},
		Edges: []*models.Edge{},
	}
}

func TestWorkflowRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	wf := testWorkflow("wf-1", "First")
	require.NoError(t, repo.Create(ctx, wf))

	fetched, err := repo.GetByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "First", fetched.Name)
	require.Len(t, fetched.Nodes, 1)
	assert.Equal(t, "x", fetched.Nodes[0].Config["input"])
}

func TestWorkflowRepository_Create_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	require.NoError(t, repo.Create(ctx, testWorkflow("wf-1", "First")))

	err := repo.Create(ctx, testWorkflow("wf-1", "Again"))
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowExists(err))
}

func TestWorkflowRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	require.NoError(t, repo.Create(ctx, testWorkflow("wf-1", "First")))

	updated := testWorkflow("wf-1", "Renamed")
	require.NoError(t, repo.Update(ctx, updated))

	fetched, err := repo.GetByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
}

func TestWorkflowRepository_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	err := repo.Update(ctx, testWorkflow("missing", "Nope"))
	require.Error(t, err)
	assert.True(t, persistence.IsWorkflowNotFound(err))
}

func TestWorkflowRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	require.NoError(t, repo.Create(ctx, testWorkflow("wf-1", "First")))
	require.NoError(t, repo.Delete(ctx, "wf-1"))

	_, err := repo.GetByID(ctx, "wf-1")
	assert.True(t, persistence.IsWorkflowNotFound(err))

	assert.True(t, persistence.IsWorkflowNotFound(repo.Delete(ctx, "wf-1")))
}

func TestWorkflowRepository_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	require.NoError(t, repo.Create(ctx, testWorkflow("wf-1", "First")))
	require.NoError(t, repo.Create(ctx, testWorkflow("wf-2", "Second")))
	require.NoError(t, repo.Create(ctx, testWorkflow("wf-3", "Third")))

	workflows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, workflows, 3)

	assert.Equal(t, "wf-3", workflows[0].ID)
	assert.Equal(t, "wf-2", workflows[1].ID)
	assert.Equal(t, "wf-1", workflows[2].ID)
}

func TestWorkflowRepository_GetByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkflowRepository(filepath.Join(t.TempDir(), "workflows.json"))

	require.NoError(t, repo.Create(ctx, testWorkflow("wf-1", "First")))

	first, err := repo.GetByID(ctx, "wf-1")
	require.NoError(t, err)

	// Mutating the copy, as a run does via input substitution, must not
	// leak into the stored collection.
	first.Nodes[0].Config["input"] = "mutated"

	second, err := repo.GetByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "x", second.Nodes[0].Config["input"])
}

func TestWorkflowRepository_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workflows.json")

	repo := NewWorkflowRepository(path)
	require.NoError(t, repo.Create(ctx, testWorkflow("wf-1", "First")))

	reloaded := NewWorkflowRepository(path)

	fetched, err := reloaded.GetByID(ctx, "wf-1")
	require.NoError(t, err)
	assert.Equal(t, "First", fetched.Name)
}
