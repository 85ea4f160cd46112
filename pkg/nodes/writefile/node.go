// Package writefile provides the side-effecting file output node.
package writefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// WriteFileNode writes content to a path, creating parent directories as
// needed. Its output is always empty; success or failure is reported
// through logs only.
type WriteFileNode struct{}

// NewWriteFileNode creates a new write-file node capability.
func NewWriteFileNode() *WriteFileNode {
	return &WriteFileNode{}
}

// Execute writes the "content" config value to the "path" config value.
func (n *WriteFileNode) Execute(_ context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	path, hasPath := node.Config["path"]
	content, hasContent := node.Config["content"]

	if !hasPath || path == "" || !hasContent {
		logData := models.LogData{
			Kind:   models.EventWriteFileError,
			NodeID: node.ID,
			Data:   models.StringPtr("path or content is empty"),
		}
		sink.SendJSON(logData)

		return []models.Log{models.NewLog(logData)}, "", nil
	}

	logData := n.write(node.ID, path, content)
	sink.SendJSON(logData)

	return []models.Log{models.NewLog(logData)}, "", nil
}

func (n *WriteFileNode) write(nodeID, path, content string) models.LogData {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0750); err != nil {
			return models.LogData{
				Kind:   models.EventOutput,
				NodeID: nodeID,
				Data:   models.StringPtr(fmt.Sprintf("error: %v", err)),
			}
		}
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return models.LogData{
			Kind:   models.EventOutput,
			NodeID: nodeID,
			Data:   models.StringPtr(fmt.Sprintf("error: %v", err)),
		}
	}

	return models.LogData{
		Kind:   models.EventOutput,
		NodeID: nodeID,
		Data:   models.StringPtr("file written successfully"),
		Result: models.StringPtr("file written successfully"),
	}
}
