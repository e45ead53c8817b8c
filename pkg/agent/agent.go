// Package agent orchestrates one ChatBox turn: session identity, retrieval
// context, the model call, tool execution, and the final answer.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/rag"
	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

const defaultSystemPrompt = "You are the JobDeck assistant embedded in a job-board application. " +
	"Answer questions about job offers, applications, favorites and profiles. " +
	"Use the provided tools to read or change platform data instead of guessing, " +
	"and explain tool failures to the user in plain language."

const defaultHistoryWindow = 12

// ErrNoSession is returned when a chat turn arrives for an unknown session.
var ErrNoSession = errors.New("no active session")

// Agent binds the model, tool catalog, session store and RAG index into the
// conversational loop.
type Agent struct {
	model        models.ChatModel
	fallback     models.ChatModel
	catalog      *tools.Catalog
	sessions     *session.Store
	indexer      *rag.Indexer
	systemPrompt string
	window       int
	logger       *slog.Logger

	mu      sync.Mutex
	history map[string][]chat.Message
}

// Options configure a new Agent. Fallback, when set, is a plain-completion
// model consulted after the primary is exhausted.
type Options struct {
	Model         models.ChatModel
	Fallback      models.ChatModel
	Catalog       *tools.Catalog
	Sessions      *session.Store
	Indexer       *rag.Indexer
	SystemPrompt  string
	HistoryWindow int
	Logger        *slog.Logger
}

// New creates an Agent with the provided options.
func New(opts Options) (*Agent, error) {
	if opts.Model == nil {
		return nil, errors.New("agent requires a language model")
	}
	if opts.Catalog == nil {
		return nil, errors.New("agent requires a tool catalog")
	}
	if opts.Sessions == nil {
		return nil, errors.New("agent requires a session store")
	}
	if opts.Indexer == nil {
		return nil, errors.New("agent requires a RAG indexer")
	}

	systemPrompt := opts.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = defaultSystemPrompt
	}
	window := opts.HistoryWindow
	if window <= 0 {
		window = defaultHistoryWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Agent{
		model:        opts.Model,
		fallback:     opts.Fallback,
		catalog:      opts.Catalog,
		sessions:     opts.Sessions,
		indexer:      opts.Indexer,
		systemPrompt: systemPrompt,
		window:       window,
		logger:       logger,
		history:      make(map[string][]chat.Message),
	}, nil
}

// Chat processes one user message and returns the assistant's answer. The
// only terminal failure paths are a missing session and provider exhaustion;
// tool-level errors are fed back to the model, which explains them.
func (a *Agent) Chat(ctx context.Context, sessionID, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", errors.New("user input is empty")
	}

	sctx, ok := a.sessions.Get(sessionID)
	if !ok {
		return "", fmt.Errorf("session %s: %w", sessionID, ErrNoSession)
	}

	docs := a.retrieveContext(ctx, sctx, userInput)
	system := a.buildSystemPrompt(sctx, docs)

	transcript := append(a.snapshotHistory(sessionID), chat.User(userInput))

	reply, err := a.model.CompleteWithTools(ctx, transcript, system, a.catalog.Specs())
	if errors.Is(err, models.ErrToolsUnsupported) {
		// Plain-completion model: skip the tool loop entirely.
		text, cerr := a.complete(ctx, transcript, system)
		if cerr != nil {
			return "", cerr
		}
		reply, err = &models.Reply{Text: text}, nil
	}
	if err != nil {
		text, cerr := a.completeWithFallback(ctx, transcript, system, err)
		if cerr != nil {
			return "", cerr
		}
		reply = &models.Reply{Text: text}
	}

	if len(reply.ToolCalls) == 0 {
		final := chat.Assistant(reply.Text)
		final.Documents = docs
		a.appendHistory(sessionID, chat.User(userInput), final)
		return reply.Text, nil
	}

	assistantMsg := chat.Message{
		Role:      chat.RoleAssistant,
		Content:   reply.Text,
		ToolCalls: reply.ToolCalls,
	}
	toolMsgs := a.executeToolCalls(ctx, reply.ToolCalls, sctx)

	transcript = append(transcript, assistantMsg)
	transcript = append(transcript, toolMsgs...)

	finalText, err := a.complete(ctx, transcript, system)
	if err != nil {
		return "", err
	}

	final := chat.Assistant(finalText)
	final.Documents = docs
	for _, call := range reply.ToolCalls {
		final.ToolsUsed = append(final.ToolsUsed, call.Name)
	}

	turn := append([]chat.Message{chat.User(userInput), assistantMsg}, toolMsgs...)
	turn = append(turn, final)
	a.appendHistory(sessionID, turn...)
	return finalText, nil
}

// complete runs a plain completion on the primary model, handing the turn to
// the fallback model when the primary is exhausted.
func (a *Agent) complete(ctx context.Context, transcript []chat.Message, system string) (string, error) {
	text, err := a.model.Complete(ctx, transcript, system)
	if err == nil {
		return text, nil
	}
	return a.completeWithFallback(ctx, transcript, system, err)
}

// completeWithFallback is the degraded path after a primary failure.
func (a *Agent) completeWithFallback(ctx context.Context, transcript []chat.Message, system string, primaryErr error) (string, error) {
	if a.fallback == nil {
		return "", fmt.Errorf("assistant unavailable: %w", primaryErr)
	}

	a.logger.Warn("primary model failed, trying fallback", "error", primaryErr)
	text, err := a.fallback.Complete(ctx, transcript, system)
	if err != nil {
		return "", fmt.Errorf("assistant unavailable: %w", errors.Join(primaryErr, err))
	}
	return text, nil
}

// executeToolCalls runs the requested calls concurrently and returns their
// tool-role responses in issuance order, each bound to its originating call
// id.
func (a *Agent) executeToolCalls(ctx context.Context, calls []chat.ToolCall, sctx session.Context) []chat.Message {
	results := make([]tools.Outcome, len(calls))

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call chat.ToolCall) {
			defer wg.Done()
			results[i] = a.executeCall(ctx, call, sctx)
		}(i, call)
	}
	wg.Wait()

	msgs := make([]chat.Message, len(calls))
	for i, call := range calls {
		payload, err := json.Marshal(results[i])
		if err != nil {
			payload = []byte(`{"success":false,"error":"failed to encode tool outcome"}`)
		}
		msgs[i] = chat.ToolResult(call, string(payload))
	}
	return msgs
}

func (a *Agent) executeCall(ctx context.Context, call chat.ToolCall, sctx session.Context) tools.Outcome {
	tool, ok := a.catalog.Lookup(call.Name)
	if !ok {
		return tools.Fail("unknown tool: %s", call.Name)
	}

	var params map[string]any
	raw := strings.TrimSpace(call.Arguments)
	if raw == "" {
		params = map[string]any{}
	} else if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return tools.Fail("invalid tool arguments: %v", err)
	}

	outcome := tool.Execute(ctx, params, sctx)
	if !outcome.Success {
		a.logger.Debug("tool call failed", "tool", call.Name, "error", outcome.Error)
	}
	return outcome
}

// retrieveContext rebuilds the index for this turn and picks the documents
// most relevant to the user's message. A degraded or empty index is fine;
// partial context beats no answer.
func (a *Agent) retrieveContext(ctx context.Context, sctx session.Context, query string) []rag.Document {
	docs := a.indexer.AllJobOffers(ctx)
	switch {
	case sctx.IsCandidate():
		docs = append(docs, a.indexer.AllUserData(ctx, sctx.CandidateID)...)
	case sctx.IsCompany():
		docs = append(docs, a.indexer.CompanyProfile(ctx, sctx.CompanyID)...)
	}
	return rag.Search(docs, query, rag.Options{Limit: 5})
}

func (a *Agent) buildSystemPrompt(sctx session.Context, docs []rag.Document) string {
	var sb strings.Builder
	sb.WriteString(a.systemPrompt)
	sb.WriteString(fmt.Sprintf("\n\nThe user is logged in as a %s account (user id %s).", sctx.Role, sctx.UserID))

	if block := rag.FormatContext(docs); block != "" {
		sb.WriteString("\n\n")
		sb.WriteString(block)
	}
	return sb.String()
}

func (a *Agent) snapshotHistory(sessionID string) []chat.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]chat.Message(nil), a.history[sessionID]...)
}

func (a *Agent) appendHistory(sessionID string, msgs ...chat.Message) {
	a.mu.Lock()
	defer a.mu.Unlock()

	history := append(a.history[sessionID], msgs...)
	if len(history) > a.window {
		history = history[len(history)-a.window:]
		// The cut can land inside a tool turn. A transcript must never open
		// with tool responses whose assistant call turn is gone; providers
		// reject a function response with no preceding function call.
		for len(history) > 0 && history[0].Role == chat.RoleTool {
			history = history[1:]
		}
	}
	a.history[sessionID] = history
}

// History returns a copy of the stored transcript for a session.
func (a *Agent) History(sessionID string) []chat.Message {
	return a.snapshotHistory(sessionID)
}

// ClearHistory drops a session's transcript, e.g. on logout.
func (a *Agent) ClearHistory(sessionID string) {
	a.mu.Lock()
	delete(a.history, sessionID)
	a.mu.Unlock()
}
