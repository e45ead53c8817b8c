package models

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

// ---------------------------- Ollama -----------------------------------------

// OllamaModel is a plain-completion alternate for local models.
type OllamaModel struct {
	Client *ollama.Client
	Model  string
}

func NewOllamaModel(model string) (*OllamaModel, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
	}

	if model == "" {
		model = "llama3.1"
	}
	return &OllamaModel{Client: ollama.NewClient(u, httpClient), Model: model}, nil
}

func (o *OllamaModel) Complete(ctx context.Context, messages []chat.Message, system string) (string, error) {
	var text strings.Builder

	req := &ollama.GenerateRequest{
		Model:  o.Model,
		Prompt: flattenTranscript(messages),
		System: system,
	}

	if err := o.Client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		if gr.Response != "" {
			text.WriteString(gr.Response)
		}
		return nil
	}); err != nil {
		return "", err
	}
	return text.String(), nil
}

func (o *OllamaModel) CompleteWithTools(context.Context, []chat.Message, string, []tools.Spec) (*Reply, error) {
	return nil, ErrToolsUnsupported
}

// flattenTranscript renders the transcript as labelled plain text for
// single-prompt backends.
func flattenTranscript(messages []chat.Message) string {
	var sb strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			sb.WriteString("User: ")
		case chat.RoleAssistant:
			sb.WriteString("Assistant: ")
		case chat.RoleTool:
			sb.WriteString("Tool result (" + msg.ToolName + "): ")
		default:
			continue
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}
