// Package web provides the HTTP handlers for workflow management, execution
// and live progress streaming.
package web

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/persistence"
	"github.com/canvasflow/canvasflow/pkg/registry"
	"github.com/canvasflow/canvasflow/pkg/stream"
	"github.com/canvasflow/canvasflow/pkg/workflow"
)

type APIHandlers struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	validator   *validator.Validate
	registry    *registry.Registry
	executor    *workflow.Executor
}

func NewAPIHandlers(
	logger *slog.Logger,
	persistence persistence.Persistence,
	validator *validator.Validate,
	registry *registry.Registry,
	executor *workflow.Executor,
) *APIHandlers {
	return &APIHandlers{
		logger:      logger.With("module", "web"),
		persistence: persistence,
		validator:   validator,
		registry:    registry,
		executor:    executor,
	}
}

// GetWorkflows returns every stored workflow, newest-first.
func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.persistence.WorkflowRepository().List(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(workflows)
}

// SaveWorkflow creates or updates a workflow from the full document posted
// by the editor. An absent id means create; a present id means replace.
func (h *APIHandlers) SaveWorkflow(c fiber.Ctx) error {
	var wf models.Workflow
	if err := c.Bind().JSON(&wf); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(wf); err != nil {
		return badRequest(c, err.Error())
	}

	for _, node := range wf.Nodes {
		if err := h.registry.ValidateNode(node); err != nil {
			return badRequest(c, err.Error())
		}
	}

	now := time.Now().UTC()

	if wf.ID == "" {
		wf.ID = uuid.New().String()
		wf.CreatedAt = &now
		wf.UpdatedAt = &now

		if err := h.persistence.WorkflowRepository().Create(c.Context(), &wf); err != nil {
			return handleStoreError(c, err)
		}

		return c.JSON(wf)
	}

	wf.UpdatedAt = &now

	if err := h.persistence.WorkflowRepository().Update(c.Context(), &wf); err != nil {
		return handleStoreError(c, err)
	}

	return c.JSON(wf)
}

// GetWorkflow returns one workflow by id.
func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.persistence.WorkflowRepository().GetByID(c.Context(), id)
	if err != nil {
		return handleStoreError(c, err)
	}

	return c.JSON(wf)
}

// DeleteWorkflow removes a workflow by id.
func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.persistence.WorkflowRepository().Delete(c.Context(), id); err != nil {
		return handleStoreError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RunAdHocWorkflow executes the workflow document in the request body and
// streams progress over SSE. Nothing is persisted.
func (h *APIHandlers) RunAdHocWorkflow(c fiber.Ctx) error {
	var wf models.Workflow
	if err := c.Bind().JSON(&wf); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	sink := stream.NewSink()

	go func() {
		defer sink.Close()

		_, _ = h.executor.Run(context.Background(), &wf, sink, false, nil)
	}()

	return h.sendEventStream(c, sink)
}

// RunWorkflow executes a stored workflow with recording enabled. Graphs
// with an output node answer with a single buffered text response; all
// other graphs stream progress over SSE.
func (h *APIHandlers) RunWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.persistence.WorkflowRepository().GetByID(c.Context(), id)
	if err != nil {
		return handleStoreError(c, err)
	}

	input := queryInput(c)

	if wf.HasOutputNode() {
		result, err := h.executor.Run(c.Context(), wf, nil, true, input)
		if err != nil {
			return internalError(c, err)
		}

		return c.SendString(result)
	}

	sink := stream.NewSink()

	go func() {
		defer sink.Close()

		_, _ = h.executor.Run(context.Background(), wf, sink, true, input)
	}()

	return h.sendEventStream(c, sink)
}

// GetWorkflowHistory returns the recorded executions of one workflow,
// newest-first.
func (h *APIHandlers) GetWorkflowHistory(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	executions, err := h.persistence.ExecutionRepository().ListByWorkflow(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(executions)
}

// GetNodes returns the capability catalog for the editor sidebar.
func (h *APIHandlers) GetNodes(c fiber.Ctx) error {
	return c.JSON(h.registry.Catalog())
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()

	repositoryCheck := "ok"
	repOk := true

	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		repositoryCheck = err.Error()
		repOk = false
	}

	status := "unhealthy"
	message := "Canvasflow API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "Canvasflow API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

// sendEventStream relays sink frames to the client in text/event-stream
// framing until the producing run closes the sink.
func (h *APIHandlers) sendEventStream(c fiber.Ctx, sink *stream.Sink) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	return c.SendStreamWriter(func(w *bufio.Writer) {
		for event := range sink.Events() {
			if err := stream.WriteSSE(w, event); err != nil {
				// Client went away; the run keeps going and drops frames.
				return
			}
		}
	})
}
