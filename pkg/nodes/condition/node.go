// Package condition provides conditional evaluation for workflow graphs
// using a deliberately small expression grammar.
package condition

import (
	"context"
	"strconv"
	"strings"

	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/stream"
)

// ConditionNode evaluates a boolean expression and outputs "true" or
// "false" as a string, so the result can propagate like any other value.
type ConditionNode struct{}

// NewConditionNode creates a new condition node capability.
func NewConditionNode() *ConditionNode {
	return &ConditionNode{}
}

// Execute evaluates the "condition" config expression.
func (n *ConditionNode) Execute(_ context.Context, node *models.Node, sink *stream.Sink) ([]models.Log, string, error) {
	expression := node.Config["condition"]
	logs := make([]models.Log, 0, 2)

	inputLog := models.LogData{
		Kind:     models.EventInput,
		NodeID:   node.ID,
		NodeType: models.StringPtr(models.NodeKindCondition),
		Data:     models.StringPtr(expression),
	}
	logs = append(logs, models.NewLog(inputLog))
	sink.SendJSON(inputLog)

	output := "false"
	if Evaluate(expression) {
		output = "true"
	}

	outputLog := models.LogData{
		Kind:     models.EventOutput,
		NodeID:   node.ID,
		NodeType: models.StringPtr(models.NodeKindCondition),
		Data:     models.StringPtr(output),
	}
	logs = append(logs, models.NewLog(outputLog))
	sink.SendJSON(outputLog)

	return logs, output, nil
}

// Evaluate applies the expression grammar: the literals true/false
// (case-insensitive), string equality with == and !=, and numeric
// comparison with > and <. Anything else, including comparisons with
// non-numeric operands, is false.
func Evaluate(expression string) bool {
	expression = strings.TrimSpace(expression)

	if strings.EqualFold(expression, "true") {
		return true
	}

	if strings.EqualFold(expression, "false") {
		return false
	}

	if left, right, ok := splitOperands(expression, "=="); ok {
		return left == right
	}

	if left, right, ok := splitOperands(expression, "!="); ok {
		return left != right
	}

	if left, right, ok := splitOperands(expression, ">"); ok {
		return compareNumeric(left, right, func(a, b float64) bool { return a > b })
	}

	if left, right, ok := splitOperands(expression, "<"); ok {
		return compareNumeric(left, right, func(a, b float64) bool { return a < b })
	}

	return false
}

// splitOperands splits a binary expression on its operator, trimming both
// sides. Expressions with more than one operator occurrence are rejected.
func splitOperands(expression, operator string) (string, string, bool) {
	if !strings.Contains(expression, operator) {
		return "", "", false
	}

	parts := strings.Split(expression, operator)
	if len(parts) != 2 {
		return "", "", false
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func compareNumeric(left, right string, compare func(a, b float64) bool) bool {
	leftValue, err := strconv.ParseFloat(left, 64)
	if err != nil {
		return false
	}

	rightValue, err := strconv.ParseFloat(right, 64)
	if err != nil {
		return false
	}

	return compare(leftValue, rightValue)
}
