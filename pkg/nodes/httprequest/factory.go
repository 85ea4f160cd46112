package httprequest

import (
	"context"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/protocol"
)

// HTTPRequestNodeFactory creates HTTPRequestNode instances.
type HTTPRequestNodeFactory struct{}

// Create creates a new HTTPRequestNode instance.
func (f *HTTPRequestNodeFactory) Create(_ context.Context) (protocol.Capability, error) {
	return NewHTTPRequestNode(), nil
}

// ID returns the factory ID.
func (f *HTTPRequestNodeFactory) ID() string {
	return models.NodeKindHTTP
}

// Name returns the factory name.
func (f *HTTPRequestNodeFactory) Name() string {
	return "HTTP Request"
}

// Description returns the factory description.
func (f *HTTPRequestNodeFactory) Description() string {
	return "Issues an HTTP request and propagates the response body as text."
}

// Schema returns the JSON schema for HTTP Request node configuration.
func (f *HTTPRequestNodeFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Request URL.",
			},
			"method": map[string]any{
				"type":        "string",
				"description": "HTTP method. Defaults to GET.",
			},
			"headers": map[string]any{
				"type":        "string",
				"description": "Newline-separated 'Name: Value' pairs.",
			},
			"body": map[string]any{
				"type":        "string",
				"description": "Request body sent verbatim.",
			},
		},
	}
}

// NewHTTPRequestNodeFactory creates a new factory instance.
func NewHTTPRequestNodeFactory() protocol.CapabilityFactory {
	return &HTTPRequestNodeFactory{}
}
