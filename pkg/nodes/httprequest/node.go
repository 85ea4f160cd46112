// Package httprequest provides the HTTP call node for workflow graphs.
package httprequest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// HTTPRequestNode issues one HTTP request and propagates the response body
// as text. Transport failures become descriptive output text instead of
// aborting the run; only a request that cannot be constructed at all is a
// hard failure.
type HTTPRequestNode struct {
	client *http.Client
}

// NewHTTPRequestNode creates a new HTTP request node capability.
func NewHTTPRequestNode() *HTTPRequestNode {
	return &HTTPRequestNode{client: &http.Client{}}
}

// Execute reads url, method, headers and body from the node config and
// performs the request.
func (n *HTTPRequestNode) Execute(ctx context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	logs := make([]models.Log, 0, 1)

	url, ok := node.Config["url"]
	if !ok || url == "" {
		logData := models.LogData{
			Kind:   models.EventHTTPError,
			NodeID: node.ID,
			Data:   models.StringPtr("url is empty"),
		}
		logs = append(logs, models.NewLog(logData))
		sink.SendJSON(logData)

		return logs, "", nil
	}

	method := node.Config["method"]
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if raw := node.Config["body"]; raw != "" {
		body = strings.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, body)
	if err != nil {
		return logs, "", fmt.Errorf("failed to build request: %w", err)
	}

	applyHeaders(request, node.Config["headers"])

	output := n.perform(request)

	logData := models.LogData{
		Kind:   models.EventOutput,
		NodeID: node.ID,
		Data:   models.StringPtr(output),
		Result: models.StringPtr(output),
	}
	logs = append(logs, models.NewLog(logData))
	sink.SendJSON(logData)

	return logs, output, nil
}

// perform sends the request and renders the result as text. Any transport
// or read error is folded into the output string so a flaky endpoint does
// not kill the graph.
func (n *HTTPRequestNode) perform(request *http.Request) string {
	response, err := n.client.Do(request)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	text, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	return string(text)
}

// applyHeaders parses newline-separated "Name: Value" pairs. Malformed
// lines are skipped.
func applyHeaders(request *http.Request, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		request.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}
