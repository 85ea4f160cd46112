// Package output provides the terminal output node whose value becomes the
// run's final result.
package output

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// OutputNode emits the configured value and marks the run's terminal result.
type OutputNode struct{}

// NewOutputNode creates a new output node capability.
func NewOutputNode() *OutputNode {
	return &OutputNode{}
}

// Execute reads the "output" config value and emits it as an output log.
func (n *OutputNode) Execute(_ context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	value, ok := node.Config["output"]

	logData := models.LogData{Kind: models.EventOutput, NodeID: node.ID}
	if ok {
		logData.Data = models.StringPtr(value)
	}

	sink.SendJSON(logData)

	return []models.Log{models.NewLog(logData)}, value, nil
}
