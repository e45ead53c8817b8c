// Package chat defines the provider-neutral conversation transcript. Provider
// adapters translate these messages into their own wire shapes.
package chat

import "github.com/jobdeck/jobdeck/pkg/rag"

// Role is a transcript turn's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// ToolCall is a model-issued request to invoke a named tool. Arguments is a
// serialized JSON object and must be parsed before use.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one transcript turn.
//
// ToolCalls is set on assistant turns when the model chose to call tools.
// ToolCallID and ToolName are set on tool turns and must reference a call from
// the immediately preceding assistant turn.
type Message struct {
	Role       Role           `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []ToolCall     `json:"toolCalls,omitempty"`
	ToolCallID string         `json:"toolCallId,omitempty"`
	ToolName   string         `json:"toolName,omitempty"`
	Documents  []rag.Document `json:"documents,omitempty"`
	ToolsUsed  []string       `json:"toolsUsed,omitempty"`
}

func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// ToolResult builds the tool-role response for one tool call.
func ToolResult(call ToolCall, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}
