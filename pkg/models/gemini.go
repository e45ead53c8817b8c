package models

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

// ---------------------------- Google Gemini ----------------------------------

const (
	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 2048
	geminiAttemptTimeout  = 45 * time.Second
)

// The static preference list, most capable/recent first. Every entry is tried
// before the dynamic listing is consulted.
var defaultGeminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
}

// GeminiModel is the primary adapter: tool calling plus model fallback.
type GeminiModel struct {
	Client         *genai.Client
	Models         []string
	AttemptTimeout time.Duration
}

// NewGeminiModel reads GEMINI_API_KEY (or GOOGLE_API_KEY) from the env. An
// invalid or missing key is not detected here; it surfaces as every model
// attempt failing.
func NewGeminiModel(ctx context.Context, preferred ...string) (*GeminiModel, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY or GOOGLE_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}

	if len(preferred) == 0 {
		preferred = defaultGeminiModels
	}
	return &GeminiModel{
		Client:         client,
		Models:         preferred,
		AttemptTimeout: geminiAttemptTimeout,
	}, nil
}

func (g *GeminiModel) Close() error {
	if g == nil || g.Client == nil {
		return nil
	}
	return g.Client.Close()
}

func (g *GeminiModel) Complete(ctx context.Context, messages []chat.Message, system string) (string, error) {
	reply, err := g.complete(ctx, messages, system, nil)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

func (g *GeminiModel) CompleteWithTools(ctx context.Context, messages []chat.Message, system string, specs []tools.Spec) (*Reply, error) {
	return g.complete(ctx, messages, system, specs)
}

func (g *GeminiModel) complete(ctx context.Context, messages []chat.Message, system string, specs []tools.Spec) (*Reply, error) {
	attempt := func(ctx context.Context, model string) (*Reply, error) {
		return g.generate(ctx, model, messages, system, specs)
	}
	return tryModels(ctx, g.Models, attempt, g.listGenerationModels)
}

func (g *GeminiModel) generate(ctx context.Context, modelName string, messages []chat.Message, system string, specs []tools.Spec) (*Reply, error) {
	timeout := g.AttemptTimeout
	if timeout <= 0 {
		timeout = geminiAttemptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model := g.Client.GenerativeModel(modelName)
	model.SetTemperature(geminiTemperature)
	model.SetMaxOutputTokens(geminiMaxOutputTokens)

	contents, systemText := translateTranscript(messages, system)
	if len(contents) == 0 {
		return nil, errors.New("gemini: empty transcript")
	}
	if systemText != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemText)}}
	}
	if len(specs) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: declarationsFromSpecs(specs)}}
	}

	last := contents[len(contents)-1]
	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", modelName, err)
	}
	return parseGeminiResponse(resp)
}

// listGenerationModels queries the live model listing and returns usable
// text-generation models, newest first. Used only when the static preference
// list is exhausted.
func (g *GeminiModel) listGenerationModels(ctx context.Context) ([]string, error) {
	timeout := g.AttemptTimeout
	if timeout <= 0 {
		timeout = geminiAttemptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var entries []modelEntry
	it := g.Client.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gemini list models: %w", err)
		}
		entries = append(entries, modelEntry{
			Name:    info.Name,
			Methods: info.SupportedGenerationMethods,
		})
	}
	return rankGenerationModels(entries), nil
}
