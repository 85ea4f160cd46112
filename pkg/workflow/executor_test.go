package workflow

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/cmd"
	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence/file"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

func testExecutor(t *testing.T) (*Executor, *file.Persistence) {
	t.Helper()

	persistence := file.NewPersistence(t.TempDir())
	recorder := NewRecorder(persistence.ExecutionRepository())

	return NewExecutor(slog.Default(), cmd.NewRegistry(slog.Default()), recorder), persistence
}

func drain(sink *stream.Sink) []stream.Event {
	var events []stream.Event
	for event := range sink.Events() {
		events = append(events, event)
	}

	return events
}

func eventKinds(t *testing.T, events []stream.Event) []string {
	t.Helper()

	kinds := make([]string, 0, len(events))

	for _, event := range events {
		if event.Name != "" || event.Data == stream.DoneSentinel {
			kinds = append(kinds, event.Data)

			continue
		}

		var data models.LogData

		require.NoError(t, json.Unmarshal([]byte(event.Data), &data))
		kinds = append(kinds, data.Kind)
	}

	return kinds
}

func TestExecutor_Run_LinearChain(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-1",
		Name: "linear",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "hello"}},
			{ID: "out", Kind: models.NodeKindOutput, Config: map[string]string{"output": "${input}"}},
		},
		Edges: []*models.Edge{
			{Source: "in", Target: "out"},
		},
	}

	sink := stream.NewSink()

	result, err := executor.Run(context.Background(), wf, sink, false, nil)
	sink.Close()

	require.NoError(t, err)
	assert.Equal(t, "hello", result)

	kinds := eventKinds(t, drain(sink))
	assert.Equal(t, []string{
		models.EventNodeStart,
		models.EventInput,
		models.EventNodeComplete,
		models.EventNodeStart,
		models.EventOutput,
		models.EventNodeComplete,
		stream.DoneSentinel,
	}, kinds)
}

func TestExecutor_Run_SeedInput(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-seed",
		Name: "seeded",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "${input}"}},
			{ID: "out", Kind: models.NodeKindOutput, Config: map[string]string{"output": "${input}"}},
		},
		Edges: []*models.Edge{
			{Source: "in", Target: "out"},
		},
	}

	seed := "from the request"

	result, err := executor.Run(context.Background(), wf, nil, false, &seed)

	require.NoError(t, err)
	assert.Equal(t, "from the request", result)

	// Without a seed the placeholder propagates verbatim.
	result, err = executor.Run(context.Background(), wf, nil, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "${input}", result)
}

func TestExecutor_Run_RecordsExecution(t *testing.T) {
	executor, persistence := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-rec",
		Name: "recorded",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "x"}},
		},
	}

	_, err := executor.Run(context.Background(), wf, nil, true, nil)
	require.NoError(t, err)

	executions, err := persistence.ExecutionRepository().ListByWorkflow(context.Background(), "wf-rec")
	require.NoError(t, err)
	require.Len(t, executions, 1)

	execution := executions[0]
	assert.NotEmpty(t, execution.ID)
	assert.Equal(t, models.ExecutionStatusCompleted, execution.Status)
	assert.GreaterOrEqual(t, execution.Duration, int64(0))

	// node_start, input, node_complete.
	assert.Len(t, execution.Logs, 3)
}

func TestExecutor_Run_NotRecordedWhenDisabled(t *testing.T) {
	executor, persistence := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-norec",
		Name: "ad hoc",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "x"}},
		},
	}

	_, err := executor.Run(context.Background(), wf, nil, false, nil)
	require.NoError(t, err)

	executions, err := persistence.ExecutionRepository().ListByWorkflow(context.Background(), "wf-norec")
	require.NoError(t, err)
	assert.Empty(t, executions)
}

func TestExecutor_Run_CycleDetected(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-cycle",
		Name: "cyclic",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "x"}},
			{ID: "a", Kind: models.NodeKindInput, Config: map[string]string{"input": "y"}},
			{ID: "b", Kind: models.NodeKindInput, Config: map[string]string{"input": "z"}},
		},
		Edges: []*models.Edge{
			{Source: "in", Target: "a"},
			{Source: "a", Target: "b"},
			{Source: "b", Target: "a"},
		},
	}

	sink := stream.NewSink()

	_, err := executor.Run(context.Background(), wf, sink, false, nil)
	sink.Close()

	require.ErrorIs(t, err, ErrCycleDetected)

	events := drain(sink)
	last := events[len(events)-1]
	assert.Equal(t, "error", last.Name)
	assert.Contains(t, last.Data, "cycle")
}

func TestExecutor_Run_UnknownKindAborts(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-unknown",
		Name: "unknown kind",
		Nodes: []*models.Node{
			{ID: "x", Kind: "teleport", Config: map[string]string{}},
		},
	}

	sink := stream.NewSink()

	_, err := executor.Run(context.Background(), wf, sink, false, nil)
	sink.Close()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")

	events := drain(sink)
	last := events[len(events)-1]
	assert.Equal(t, "error", last.Name)
}

func TestExecutor_Run_DanglingEdgeIsSkipped(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-dangling",
		Name: "dangling",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "x"}},
		},
		Edges: []*models.Edge{
			{Source: "in", Target: "ghost"},
		},
	}

	_, err := executor.Run(context.Background(), wf, nil, false, nil)

	require.NoError(t, err)
}

func TestExecutor_Run_FanInLastWriterWins(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-fanin",
		Name: "fan in",
		Nodes: []*models.Node{
			{ID: "a", Kind: models.NodeKindInput, Config: map[string]string{"input": "from a"}},
			{ID: "b", Kind: models.NodeKindInput, Config: map[string]string{"input": "from b"}},
			{ID: "out", Kind: models.NodeKindOutput, Config: map[string]string{"output": "${input}"}},
		},
		Edges: []*models.Edge{
			{Source: "a", Target: "out"},
			{Source: "b", Target: "out"},
		},
	}

	result, err := executor.Run(context.Background(), wf, nil, false, nil)

	require.NoError(t, err)
	// Inputs are not merged; the later writer in frontier order wins.
	assert.Equal(t, "from b", result)
}

func TestExecutor_Run_ConditionBranchValuePropagates(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{
		ID:   "wf-cond",
		Name: "condition",
		Nodes: []*models.Node{
			{ID: "in", Kind: models.NodeKindInput, Config: map[string]string{"input": "5"}},
			{ID: "check", Kind: models.NodeKindCondition, Config: map[string]string{"condition": "${input} > 3"}},
			{ID: "out", Kind: models.NodeKindOutput, Config: map[string]string{"output": "${input}"}},
		},
		Edges: []*models.Edge{
			{Source: "in", Target: "check"},
			{Source: "check", Target: "out"},
		},
	}

	result, err := executor.Run(context.Background(), wf, nil, false, nil)

	require.NoError(t, err)
	assert.Equal(t, "true", result)
}

func TestExecutor_Run_EmptyWorkflow(t *testing.T) {
	executor, _ := testExecutor(t)

	wf := &models.Workflow{ID: "wf-empty", Name: "empty"}

	sink := stream.NewSink()

	result, err := executor.Run(context.Background(), wf, sink, false, nil)
	sink.Close()

	require.NoError(t, err)
	assert.Empty(t, result)

	events := drain(sink)
	require.Len(t, events, 1)
	assert.Equal(t, stream.DoneSentinel, events[0].Data)
}
