package models

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

const anthropicTimeout = 30 * time.Second

// AnthropicModel is a plain-completion alternate using the Messages API.
type AnthropicModel struct {
	Client    *anthropic.Client
	Model     string
	MaxTokens int
}

// NewAnthropicModel reads ANTHROPIC_API_KEY from the env.
func NewAnthropicModel(model string) *AnthropicModel {
	key := os.Getenv("ANTHROPIC_API_KEY")
	cl := anthropic.NewClient(
		anthropicopt.WithAPIKey(key),
	)
	if model == "" {
		model = "claude-3-5-sonnet-latest"
	}
	return &AnthropicModel{
		Client:    &cl,
		Model:     model,
		MaxTokens: 1024,
	}
}

func (a *AnthropicModel) Complete(ctx context.Context, messages []chat.Message, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, anthropicTimeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: int64(a.MaxTokens),
	}

	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			if system == "" {
				system = msg.Content
			}
		case chat.RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case chat.RoleAssistant:
			if msg.Content != "" {
				params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case chat.RoleTool:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock("Tool result ("+msg.ToolName+"): "+msg.Content)))
		}
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(params.Messages) == 0 {
		return "", errors.New("anthropic: empty transcript")
	}

	msg, err := a.Client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

func (a *AnthropicModel) CompleteWithTools(context.Context, []chat.Message, string, []tools.Spec) (*Reply, error) {
	return nil, ErrToolsUnsupported
}
