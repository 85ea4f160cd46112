package models

import "time"

// Event kinds carried by LogData. node_start/node_complete wrap every
// dispatch; the remaining kinds are emitted by individual capabilities.
const (
	EventNodeStart    = "node_start"
	EventNodeComplete = "node_complete"
	EventInput        = "input"
	EventOutput       = "output"
	EventModelChunk   = "ai_response_chunk"

	EventHTTPError       = "http-request-error"
	EventScriptError     = "script-error"
	EventPostgreSQLError = "postgresql-error"
	EventPostgreSQLInfo  = "postgresql-info"
	EventReadFileError   = "read-file-error"
	EventWriteFileError  = "write-file-error"
)

// ExecutionStatusCompleted is the status stamped on recorded runs.
const ExecutionStatusCompleted = "completed"

// LogData is the wire shape shared by streamed progress events and
// persisted execution logs.
type LogData struct {
	Kind     string  `json:"type"`
	NodeID   string  `json:"nodeId"`
	NodeType *string `json:"nodeType,omitempty"`
	Result   *string `json:"result,omitempty"`
	Data     *string `json:"data,omitempty"`
}

// Log is one timestamped progress entry emitted by the engine.
type Log struct {
	Timestamp time.Time `json:"timestamp"`
	Data      LogData   `json:"data"`
}

// NewLog stamps a LogData with the current time.
func NewLog(data LogData) Log {
	return Log{Timestamp: time.Now().UTC(), Data: data}
}

// Execution is the immutable record of one completed run.
type Execution struct {
	ID         string            `json:"id"`
	WorkflowID string            `json:"workflowId"`
	Input      map[string]string `json:"input"`
	Logs       []Log             `json:"logs"`
	Duration   int64             `json:"duration"`
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
}

// StringPtr is a convenience for optional LogData fields.
func StringPtr(s string) *string {
	return &s
}
