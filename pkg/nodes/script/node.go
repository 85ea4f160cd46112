// Package script provides the embedded Lua evaluation node. Scripts run in
// a fresh sandboxed interpreter with a JSON encode/decode helper preloaded
// as require("json").
package script

import (
	"context"
	"fmt"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

// ScriptNode evaluates a Lua script and propagates its stringified result.
// Evaluation errors are hard failures that abort the run.
type ScriptNode struct{}

// NewScriptNode creates a new script node capability.
func NewScriptNode() *ScriptNode {
	return &ScriptNode{}
}

// Execute runs the "script" config value in a fresh interpreter.
func (n *ScriptNode) Execute(ctx context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	source := node.Config["script"]

	state := lua.NewState()
	defer state.Close()

	state.SetContext(ctx)
	luajson.Preload(state)

	if err := state.DoString(source); err != nil {
		logData := models.LogData{
			Kind:   models.EventScriptError,
			NodeID: node.ID,
			Data:   models.StringPtr(err.Error()),
		}
		sink.SendJSON(logData)

		return []models.Log{models.NewLog(logData)}, "", fmt.Errorf("script evaluation failed: %w", err)
	}

	output := stringifyResult(state)

	logData := models.LogData{
		Kind:   models.EventOutput,
		NodeID: node.ID,
		Data:   models.StringPtr(output),
		Result: models.StringPtr(output),
	}
	sink.SendJSON(logData)

	return []models.Log{models.NewLog(logData)}, output, nil
}

// stringifyResult renders the script's return value. Strings pass through,
// nil becomes "null", booleans and numbers their literals; tables,
// functions and other complex values are not propagated.
func stringifyResult(state *lua.LState) string {
	if state.GetTop() == 0 {
		return "null"
	}

	value := state.Get(-1)

	switch value.Type() {
	case lua.LTNil:
		return "null"
	case lua.LTBool, lua.LTNumber, lua.LTString:
		return value.String()
	default:
		return "unsupported result type"
	}
}
