package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

const (
	openAITemperature = 0.7
	openAIMaxTokens   = 1024
	openAITimeout     = 30 * time.Second
)

// OpenAIModel is the lighter-weight secondary adapter: one fixed model, plain
// chat completion only, failures surfaced as-is with no fallback list.
type OpenAIModel struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIModel(model string) *OpenAIModel {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_KEY") // fallback
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIModel{Client: openai.NewClient(apiKey), Model: model}
}

func (o *OpenAIModel) Complete(ctx context.Context, messages []chat.Message, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, openAITimeout)
	defer cancel()

	resp, err := o.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.Model,
		Messages:    toOpenAIMessages(messages, system),
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIModel) CompleteWithTools(context.Context, []chat.Message, string, []tools.Spec) (*Reply, error) {
	return nil, ErrToolsUnsupported
}

// toOpenAIMessages flattens the transcript to role/content pairs. Tool turns
// are folded into user-role text since this path has no tool support.
func toOpenAIMessages(messages []chat.Message, system string) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			if system == "" {
				out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: msg.Content})
			}
		case chat.RoleUser:
			out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: msg.Content})
		case chat.RoleAssistant:
			if msg.Content != "" {
				out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: msg.Content})
			}
		case chat.RoleTool:
			out = append(out, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Tool result (%s): %s", msg.ToolName, msg.Content),
			})
		}
	}
	return out
}
