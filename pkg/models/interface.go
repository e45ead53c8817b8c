// Package models adapts the neutral conversation transcript to concrete LLM
// providers. The Gemini adapter is the resilient primary path with model
// fallback; the others are lighter-weight alternates.
package models

import (
	"context"
	"errors"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

// ErrToolsUnsupported is returned by adapters that only do plain completion.
var ErrToolsUnsupported = errors.New("model does not support tool calling")

// Reply is one model turn: text, tool-invocation requests, or both.
type Reply struct {
	Text      string
	ToolCalls []chat.ToolCall
}

// ChatModel is the contract every provider adapter implements. The system
// argument, when non-empty, overrides any system-role message embedded in the
// transcript.
type ChatModel interface {
	Complete(ctx context.Context, messages []chat.Message, system string) (string, error)
	CompleteWithTools(ctx context.Context, messages []chat.Message, system string, specs []tools.Spec) (*Reply, error)
}
