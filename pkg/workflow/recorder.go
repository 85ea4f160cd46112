package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence"
)

// Recorder turns finished runs into persisted Execution records.
type Recorder struct {
	executions persistence.ExecutionRepository
}

// NewRecorder creates a recorder backed by the execution repository.
func NewRecorder(executions persistence.ExecutionRepository) *Recorder {
	return &Recorder{executions: executions}
}

// Recording accumulates the logs of one run in progress. All methods are
// nil-safe so callers never have to branch on whether recording is enabled.
type Recording struct {
	recorder   *Recorder
	id         string
	workflowID string
	started    time.Time
	logs       []models.Log
}

// Begin opens a recording for one run of wf.
func (r *Recorder) Begin(wf *models.Workflow) *Recording {
	if r == nil {
		return nil
	}

	workflowID := wf.ID
	if workflowID == "" {
		workflowID = "unknown"
	}

	return &Recording{
		recorder:   r,
		id:         uuid.New().String(),
		workflowID: workflowID,
		started:    time.Now().UTC(),
	}
}

// ID returns the execution id the recording will be saved under.
func (rec *Recording) ID() string {
	if rec == nil {
		return ""
	}

	return rec.id
}

// Append adds the logs produced by one node dispatch.
func (rec *Recording) Append(logs []models.Log) {
	if rec == nil {
		return
	}

	rec.logs = append(rec.logs, logs...)
}

// Save persists the run as a completed Execution.
func (rec *Recording) Save(ctx context.Context) error {
	if rec == nil {
		return nil
	}

	execution := &models.Execution{
		ID:         rec.id,
		WorkflowID: rec.workflowID,
		Input:      map[string]string{},
		Logs:       rec.logs,
		Duration:   time.Since(rec.started).Milliseconds(),
		Status:     models.ExecutionStatusCompleted,
		Timestamp:  rec.started,
	}

	return rec.recorder.executions.Create(ctx, execution)
}
