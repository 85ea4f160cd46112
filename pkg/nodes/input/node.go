// Package input provides the static input node, the usual entry point of a
// graph.
package input

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// InputNode emits the configured (or propagated) value unchanged.
type InputNode struct{}

// NewInputNode creates a new input node capability.
func NewInputNode() *InputNode {
	return &InputNode{}
}

// Execute reads the "input" config value and emits it as an input log.
func (n *InputNode) Execute(_ context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	value, ok := node.Config["input"]

	logData := models.LogData{Kind: models.EventInput, NodeID: node.ID}
	if ok {
		logData.Data = models.StringPtr(value)
	}

	sink.SendJSON(logData)

	return []models.Log{models.NewLog(logData)}, value, nil
}
