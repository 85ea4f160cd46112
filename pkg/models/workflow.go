// Package models defines the core domain models for node-graph workflow execution.
package models

import (
	"strings"
	"time"
)

// Node kind tags understood by the capability registry. The tags are part of
// the wire format shared with the visual editor and must not change.
const (
	NodeKindInput      = "input"
	NodeKindOutput     = "output"
	NodeKindCondition  = "condition"
	NodeKindHTTP       = "http-request"
	NodeKindScript     = "lua-script"
	NodeKindPostgreSQL = "postgresql"
	NodeKindReadFile   = "read-file"
	NodeKindWriteFile  = "write-file"
	NodeKindModel      = "ai-model"
)

// InputPlaceholder is the literal token replaced by the upstream node's
// output when input is propagated along an edge.
const InputPlaceholder = "${input}"

// Position is the node's location on the editor canvas. The engine never
// interprets it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one typed processing step in a workflow graph. Kind selects the
// capability; Config is a free-form, capability-specific parameter bag.
type Node struct {
	ID       string            `json:"id"       validate:"required"`
	Kind     string            `json:"type"     validate:"required"`
	Position Position          `json:"position"`
	Config   map[string]string `json:"config"`
	Label    *string           `json:"label,omitempty"`
}

// WithInput returns a copy of the node whose config values have every
// occurrence of the input placeholder replaced by input. The receiver is
// left untouched so the stored workflow is never mutated by a run.
func (n *Node) WithInput(input string) *Node {
	substituted := *n
	substituted.Config = make(map[string]string, len(n.Config))

	for key, value := range n.Config {
		substituted.Config[key] = strings.ReplaceAll(value, InputPlaceholder, input)
	}

	return &substituted
}

// Edge is a directed arc between two nodes. SourceHandle discriminates
// which editor-side handle the arc leaves from; the engine ignores it.
type Edge struct {
	Source       string  `json:"source" validate:"required"`
	Target       string  `json:"target" validate:"required"`
	SourceHandle *string `json:"sourceHandle,omitempty"`
}

// Workflow is a stored node graph. ID is empty until the first save.
type Workflow struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"      validate:"required"`
	Nodes     []*Node    `json:"nodes"`
	Edges     []*Edge    `json:"edges"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// HasOutputNode reports whether the graph contains a terminal output node.
// Runs of such graphs can be answered with a single buffered response
// instead of an event stream.
func (w *Workflow) HasOutputNode() bool {
	for _, node := range w.Nodes {
		if node.Kind == NodeKindOutput {
			return true
		}
	}

	return false
}

// FindNode returns the node with the given id, or nil.
func (w *Workflow) FindNode(id string) *Node {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}
