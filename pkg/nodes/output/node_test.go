package output

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
)

func TestOutputNode_Execute(t *testing.T) {
	node := &models.Node{
		ID:     "output-1",
		Kind:   models.NodeKindOutput,
		Config: map[string]string{"output": "final value"},
	}

	logs, output, err := NewOutputNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Equal(t, "final value", output)

	require.Len(t, logs, 1)
	assert.Equal(t, models.EventOutput, logs[0].Data.Kind)
	require.NotNil(t, logs[0].Data.Data)
	assert.Equal(t, "final value", *logs[0].Data.Data)
}

func TestOutputNode_Execute_MissingValue(t *testing.T) {
	node := &models.Node{
		ID:     "output-2",
		Kind:   models.NodeKindOutput,
		Config: map[string]string{},
	}

	logs, output, err := NewOutputNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Empty(t, output)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].Data.Data)
}
