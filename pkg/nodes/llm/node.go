// Package llm provides the streaming chat-completion node. It talks to any
// OpenAI-compatible endpoint, which covers local Ollama and vLLM deployments.
package llm

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultAPIKey  = "None"
	defaultModel   = "qwen3:14b"
	defaultPrompt  = "Hello"
)

// LLMNode streams a chat completion and propagates the concatenated response
// text. Each delta is relayed live as an ai_response_chunk event.
type LLMNode struct{}

// NewLLMNode creates a new LLM node capability.
func NewLLMNode() *LLMNode {
	return &LLMNode{}
}

// Execute sends the configured prompt and consumes the completion stream.
// Failing to open the stream aborts the run; an error mid-stream stops
// reading and keeps the partial output.
func (n *LLMNode) Execute(ctx context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	baseURL := configOrDefault(node, "baseUrl", defaultBaseURL)
	apiKey := configOrDefault(node, "apiKey", defaultAPIKey)
	model := configOrDefault(node, "model", defaultModel)
	prompt := configOrDefault(node, "prompt", defaultPrompt)

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	client := openai.NewClientWithConfig(config)

	logs := make([]models.Log, 0, 8)

	logData := models.LogData{
		Kind:   models.EventModelChunk,
		NodeID: node.ID,
		Data:   models.StringPtr("Input: " + prompt + "\n\nOutput:"),
	}
	logs = append(logs, models.NewLog(logData))
	sink.SendJSON(logData)

	completionStream, err := client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: true,
	})
	if err != nil {
		return logs, "", err
	}
	defer completionStream.Close()

	var output string

	for {
		response, recvErr := completionStream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}

		if recvErr != nil {
			// Keep whatever arrived before the stream broke.
			break
		}

		for _, choice := range response.Choices {
			delta := choice.Delta.Content

			logData := models.LogData{
				Kind:   models.EventModelChunk,
				NodeID: node.ID,
				Data:   models.StringPtr(delta),
			}
			logs = append(logs, models.NewLog(logData))
			sink.SendJSON(logData)

			output += delta
		}
	}

	return logs, output, nil
}

func configOrDefault(node *models.Node, key, fallback string) string {
	if value, ok := node.Config[key]; ok && value != "" {
		return value
	}

	return fallback
}
