// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"log/slog"

	"github.com/canvasflow/canvasflow/pkg/nodes/condition"
	"github.com/canvasflow/canvasflow/pkg/nodes/httprequest"
	"github.com/canvasflow/canvasflow/pkg/nodes/input"
	"github.com/canvasflow/canvasflow/pkg/nodes/llm"
	"github.com/canvasflow/canvasflow/pkg/nodes/output"
	"github.com/canvasflow/canvasflow/pkg/nodes/postgresql"
	"github.com/canvasflow/canvasflow/pkg/nodes/readfile"
	"github.com/canvasflow/canvasflow/pkg/nodes/script"
	"github.com/canvasflow/canvasflow/pkg/nodes/writefile"
	"github.com/canvasflow/canvasflow/pkg/registry"
)

func registerNativeNodes(reg *registry.Registry) {
	reg.Register(input.NewInputNodeFactory())
	reg.Register(output.NewOutputNodeFactory())
	reg.Register(condition.NewConditionNodeFactory())
	reg.Register(httprequest.NewHTTPRequestNodeFactory())
	reg.Register(script.NewScriptNodeFactory())
	reg.Register(postgresql.NewPostgreSQLNodeFactory())
	reg.Register(readfile.NewReadFileNodeFactory())
	reg.Register(writefile.NewWriteFileNodeFactory())
	reg.Register(llm.NewLLMNodeFactory())
}

func NewRegistry(log *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(log)

	registerNativeNodes(reg)

	return reg
}
