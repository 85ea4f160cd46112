package condition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expression string
		expected   bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"FALSE", false},
		{"  true  ", true},
		{"a==a", true},
		{"a==b", false},
		{"a == a", true},
		{"a!=b", true},
		{"a!=a", false},
		{"3>2", true},
		{"2>3", false},
		{"3.5 > 3.1", true},
		{"2<3", true},
		{"3<2", false},
		{"a>b", false},
		{"a<b", false},
		{"1==1==1", false},
		{"", false},
		{"not an expression", false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(tt.expression))
		})
	}
}

func TestConditionNode_Execute(t *testing.T) {
	node := &models.Node{
		ID:     "cond-1",
		Kind:   models.NodeKindCondition,
		Config: map[string]string{"condition": "3>2"},
	}

	logs, output, err := NewConditionNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Equal(t, "true", output)

	require.Len(t, logs, 2)
	assert.Equal(t, models.EventInput, logs[0].Data.Kind)
	assert.Equal(t, "3>2", *logs[0].Data.Data)
	assert.Equal(t, models.EventOutput, logs[1].Data.Kind)
	assert.Equal(t, "true", *logs[1].Data.Data)
}

func TestConditionNode_Execute_MissingExpression(t *testing.T) {
	node := &models.Node{
		ID:     "cond-2",
		Kind:   models.NodeKindCondition,
		Config: map[string]string{},
	}

	logs, output, err := NewConditionNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Equal(t, "false", output)
	require.Len(t, logs, 2)
}
