// Package workflow implements the graph execution engine: layered frontier
// traversal over the node graph with input propagation along edges.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/otelhelper"
	"github.com/canvasflow/canvasflow/pkg/registry"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// ErrCycleDetected is returned when traversal revisits a node that already
// executed in the same run.
var ErrCycleDetected = errors.New("workflow graph contains a cycle")

// Executor runs workflow graphs. Traversal is layered: the frontier starts
// at the nodes with no incoming edge and advances to their successors until
// the graph is exhausted.
type Executor struct {
	logger   *slog.Logger
	registry *registry.Registry
	recorder *Recorder
	tracer   trace.Tracer
}

// NewExecutor creates an executor. The recorder may be nil when runs are
// never recorded.
func NewExecutor(logger *slog.Logger, registry *registry.Registry, recorder *Recorder) *Executor {
	return &Executor{
		logger:   logger.With("module", "executor"),
		registry: registry,
		recorder: recorder,
	}
}

// WithTracer enables a span per run and per node dispatch.
func (e *Executor) WithTracer(tracer trace.Tracer) *Executor {
	e.tracer = tracer

	return e
}

// Run executes the workflow graph and returns the value produced by the
// output node, or "" if the graph has none. Progress is streamed through
// sink; when record is true the run is persisted as an Execution. A non-nil
// input seeds every start node's pending input.
//
// Any capability error, an unknown node kind, or a cycle aborts the run
// with an error frame on sink. The [DONE] sentinel is sent only when the
// run completes.
func (e *Executor) Run(ctx context.Context, wf *models.Workflow, sink *stream.Sink, record bool, input *string) (string, error) {
	logger := e.logger.With("workflow_id", wf.ID)
	logger.Info("Starting workflow run", "nodes", len(wf.Nodes), "edges", len(wf.Edges), "record", record)

	recording := e.recorder.Begin(wf)

	if e.tracer != nil {
		attrs := []attribute.KeyValue{
			attribute.String(otelhelper.WorkflowIDKey, wf.ID),
			attribute.String(otelhelper.WorkflowNameKey, wf.Name),
		}
		if record {
			attrs = append(attrs, attribute.String(otelhelper.ExecutionIDKey, recording.ID()))
		}

		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "workflow.run", attrs...)
		defer span.End()
	}

	// Last edge out of a source wins for input propagation.
	next := make(map[string]string, len(wf.Edges))
	for _, edge := range wf.Edges {
		next[edge.Source] = edge.Target
	}

	frontier := startNodes(wf)

	pending := make(map[string]string)

	if input != nil {
		for _, nodeID := range frontier {
			pending[nodeID] = *input
		}
	}

	var result string

	executed := make(map[string]bool, len(wf.Nodes))

	for {
		executedAny := false

		for _, nodeID := range frontier {
			node := wf.FindNode(nodeID)
			if node == nil {
				// Dangling edge target; skip silently.
				continue
			}

			if executed[nodeID] {
				sink.SendError(fmt.Sprintf("Node execution failed: %v", ErrCycleDetected))
				logger.Error("Aborting run", "node_id", nodeID, "error", ErrCycleDetected)

				return "", ErrCycleDetected
			}

			executed[nodeID] = true

			if upstream, ok := pending[nodeID]; ok {
				node = node.WithInput(upstream)
			}

			logs, output, err := e.executeNode(ctx, node, sink)
			recording.Append(logs)

			if err != nil {
				sink.SendError(fmt.Sprintf("Node execution failed: %v", err))
				logger.Error("Aborting run", "node_id", nodeID, "error", err)

				return "", err
			}

			if target, ok := next[nodeID]; ok {
				pending[target] = output
			}

			if node.Kind == models.NodeKindOutput {
				result = output
			}

			executedAny = true
		}

		frontier = successors(wf.Edges, frontier)

		if !executedAny || len(frontier) == 0 {
			break
		}
	}

	if record {
		if err := recording.Save(ctx); err != nil {
			logger.Error("Failed to record execution", "error", err)
		}
	}

	sink.SendString(stream.DoneSentinel)
	logger.Info("Workflow run completed")

	return result, nil
}

// executeNode dispatches one node through its capability, wrapping it in
// node_start/node_complete events.
func (e *Executor) executeNode(ctx context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	e.logger.Info("Executing node", "node_id", node.ID, "kind", node.Kind)

	var span trace.Span

	if e.tracer != nil {
		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "workflow.node",
			attribute.String(otelhelper.NodeIDKey, node.ID),
			attribute.String(otelhelper.NodeKindKey, node.Kind),
		)
		defer span.End()
	}

	logs := make([]models.Log, 0, 4)

	startData := models.LogData{
		Kind:     models.EventNodeStart,
		NodeID:   node.ID,
		NodeType: models.StringPtr(node.Kind),
	}
	logs = append(logs, models.NewLog(startData))
	sink.SendJSON(startData)

	capability, err := e.registry.CreateCapability(ctx, node.Kind)
	if err != nil {
		if span != nil {
			otelhelper.SetError(span, err)
		}

		return logs, "", err
	}

	nodeLogs, output, err := capability.Execute(ctx, node, sink)
	logs = append(logs, nodeLogs...)

	if err != nil {
		if span != nil {
			otelhelper.SetError(span, err)
		}

		return logs, "", err
	}

	completeData := models.LogData{
		Kind:     models.EventNodeComplete,
		NodeID:   node.ID,
		NodeType: models.StringPtr(node.Kind),
	}
	logs = append(logs, models.NewLog(completeData))
	sink.SendJSON(completeData)

	return logs, output, nil
}

// startNodes returns the ids of nodes that are no edge's target, in node
// declaration order.
func startNodes(wf *models.Workflow) []string {
	targets := make(map[string]bool, len(wf.Edges))
	for _, edge := range wf.Edges {
		targets[edge.Target] = true
	}

	frontier := make([]string, 0, len(wf.Nodes))

	for _, node := range wf.Nodes {
		if !targets[node.ID] {
			frontier = append(frontier, node.ID)
		}
	}

	return frontier
}

// successors returns the targets of every edge whose source is in the
// current frontier, deduplicated so fan-in nodes appear once.
func successors(edges []*models.Edge, frontier []string) []string {
	current := make(map[string]bool, len(frontier))
	for _, nodeID := range frontier {
		current[nodeID] = true
	}

	seen := make(map[string]bool, len(frontier))
	targets := make([]string, 0, len(frontier))

	for _, edge := range edges {
		if current[edge.Source] && !seen[edge.Target] {
			seen[edge.Target] = true
			targets = append(targets, edge.Target)
		}
	}

	return targets
}
