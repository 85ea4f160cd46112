package readfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
)

func TestReadFileNode_Execute_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("file content"), 0600))

	node := &models.Node{
		ID:     "read-1",
		Kind:   models.NodeKindReadFile,
		Config: map[string]string{"path": path},
	}

	logs, output, err := NewReadFileNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Equal(t, "file content", output)

	require.Len(t, logs, 1)
	assert.Equal(t, models.EventOutput, logs[0].Data.Kind)
	assert.Equal(t, "file content", *logs[0].Data.Result)
}

func TestReadFileNode_Execute_MissingPath(t *testing.T) {
	node := &models.Node{
		ID:     "read-2",
		Kind:   models.NodeKindReadFile,
		Config: map[string]string{},
	}

	logs, output, err := NewReadFileNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Empty(t, output)

	require.Len(t, logs, 1)
	assert.Equal(t, models.EventReadFileError, logs[0].Data.Kind)
	assert.Equal(t, "path is empty", *logs[0].Data.Data)
}

func TestReadFileNode_Execute_IOErrorBecomesOutput(t *testing.T) {
	node := &models.Node{
		ID:     "read-3",
		Kind:   models.NodeKindReadFile,
		Config: map[string]string{"path": filepath.Join(t.TempDir(), "missing.txt")},
	}

	logs, output, err := NewReadFileNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Contains(t, output, "error: ")

	require.Len(t, logs, 1)
	assert.Equal(t, models.EventOutput, logs[0].Data.Kind)
	assert.Nil(t, logs[0].Data.Result)
}
