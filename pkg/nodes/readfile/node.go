// Package readfile provides the file content source node.
package readfile

import (
	"context"
	"fmt"
	"os"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// ReadFileNode reads a file and propagates its content as text. I/O errors
// become descriptive output text; they never abort the run.
type ReadFileNode struct{}

// NewReadFileNode creates a new read-file node capability.
func NewReadFileNode() *ReadFileNode {
	return &ReadFileNode{}
}

// Execute reads the file at the "path" config value.
func (n *ReadFileNode) Execute(_ context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	path, ok := node.Config["path"]
	if !ok || path == "" {
		logData := models.LogData{
			Kind:   models.EventReadFileError,
			NodeID: node.ID,
			Data:   models.StringPtr("path is empty"),
		}
		sink.SendJSON(logData)

		return []models.Log{models.NewLog(logData)}, "", nil
	}

	content, err := os.ReadFile(path)

	var logData models.LogData

	var output string

	if err != nil {
		output = fmt.Sprintf("error: %v", err)
		logData = models.LogData{
			Kind:   models.EventOutput,
			NodeID: node.ID,
			Data:   models.StringPtr(output),
		}
	} else {
		output = string(content)
		logData = models.LogData{
			Kind:   models.EventOutput,
			NodeID: node.ID,
			Data:   models.StringPtr(output),
			Result: models.StringPtr(output),
		}
	}

	sink.SendJSON(logData)

	return []models.Log{models.NewLog(logData)}, output, nil
}
