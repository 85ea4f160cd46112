package httprequest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/models"
)

func TestHTTPRequestNode_Execute_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("response body"))
	}))
	defer server.Close()

	node := &models.Node{
		ID:     "http-1",
		Kind:   models.NodeKindHTTP,
		Config: map[string]string{"url": server.URL},
	}

	logs, output, err := NewHTTPRequestNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Equal(t, "response body", output)

	require.Len(t, logs, 1)
	assert.Equal(t, models.EventOutput, logs[0].Data.Kind)
	assert.Equal(t, "response body", *logs[0].Data.Result)
}

func TestHTTPRequestNode_Execute_MethodBodyAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(body))

		_, _ = w.Write([]byte("created"))
	}))
	defer server.Close()

	node := &models.Node{
		ID:   "http-2",
		Kind: models.NodeKindHTTP,
		Config: map[string]string{
			"url":     server.URL,
			"method":  "post",
			"body":    `{"a":1}`,
			"headers": "Content-Type: application/json\nAuthorization: token\nmalformed line",
		},
	}

	_, output, err := NewHTTPRequestNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Equal(t, "created", output)
}

func TestHTTPRequestNode_Execute_MissingURL(t *testing.T) {
	node := &models.Node{
		ID:     "http-3",
		Kind:   models.NodeKindHTTP,
		Config: map[string]string{},
	}

	logs, output, err := NewHTTPRequestNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Empty(t, output)

	require.Len(t, logs, 1)
	assert.Equal(t, models.EventHTTPError, logs[0].Data.Kind)
	assert.Equal(t, "url is empty", *logs[0].Data.Data)
}

func TestHTTPRequestNode_Execute_TransportErrorBecomesOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	node := &models.Node{
		ID:     "http-4",
		Kind:   models.NodeKindHTTP,
		Config: map[string]string{"url": server.URL},
	}

	logs, output, err := NewHTTPRequestNode().Execute(context.Background(), node, nil)

	require.NoError(t, err)
	assert.Contains(t, output, "error: ")
	require.Len(t, logs, 1)
	assert.Equal(t, models.EventOutput, logs[0].Data.Kind)
}

func TestHTTPRequestNode_Execute_UnparsableURLIsHardFailure(t *testing.T) {
	node := &models.Node{
		ID:     "http-5",
		Kind:   models.NodeKindHTTP,
		Config: map[string]string{"url": "http://example.com", "method": "bad method"},
	}

	_, output, err := NewHTTPRequestNode().Execute(context.Background(), node, nil)

	require.Error(t, err)
	assert.Empty(t, output)
}
