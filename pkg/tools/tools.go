// Package tools is the catalog of actions the model may request. Every tool
// validates its own preconditions and reports failures through the Outcome
// envelope; nothing escapes a handler as a Go error.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobdeck/jobdeck/pkg/session"
)

// maxListItems caps list-shaped tool payloads so results stay small enough
// for the model context.
const maxListItems = 20

// Param describes one schema property of a tool.
type Param struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

// Spec is the immutable, schema-described surface of a tool.
type Spec struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  map[string]Param `json:"parameters"`
	Required    []string         `json:"required,omitempty"`
}

// Outcome is the envelope every tool handler returns.
type Outcome struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Outcome {
	return Outcome{Success: true, Data: data}
}

func Fail(format string, args ...any) Outcome {
	return Outcome{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Tool binds a spec to an executable handler.
type Tool interface {
	Spec() Spec
	Execute(ctx context.Context, params map[string]any, sctx session.Context) Outcome
}

// stringArg reads an optional string parameter; absent or non-string values
// yield "".
func stringArg(params map[string]any, key string) string {
	val, ok := params[key]
	if !ok || val == nil {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return strings.TrimSpace(fmt.Sprint(val))
	}
	return strings.TrimSpace(s)
}

// intArg reads an optional integer parameter. JSON numbers arrive as float64.
func intArg(params map[string]any, key string) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// requireCandidate gates candidate-only tools on role and bound candidate id.
func requireCandidate(sctx session.Context) (string, *Outcome) {
	if !sctx.IsCandidate() {
		out := Fail("this action is only available to logged-in candidate accounts")
		return "", &out
	}
	return sctx.CandidateID, nil
}
