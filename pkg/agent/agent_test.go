package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/models"
	"github.com/jobdeck/jobdeck/pkg/rag"
	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

type fixture struct {
	agent    *Agent
	model    *models.DummyModel
	sessions *session.Store
	sctx     session.Context
}

func newFixture(t *testing.T, script ...*models.Reply) *fixture {
	t.Helper()

	mem := store.NewMemory()
	store.SeedDemo(mem)

	model := models.NewDummyModel(script...)
	sessions := session.NewStore()
	sctx := sessions.Create("user-demo", session.RoleCandidate, session.WithCandidateID("cand-demo"))

	ag, err := New(Options{
		Model:    model,
		Catalog:  tools.DefaultCatalog(mem),
		Sessions: sessions,
		Indexer:  rag.NewIndexer(mem),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{agent: ag, model: model, sessions: sessions, sctx: sctx}
}

func TestChatPlainAnswer(t *testing.T) {
	f := newFixture(t, &models.Reply{Text: "Three offers are open right now."})

	answer, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "any open go developer roles?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if answer != "Three offers are open right now." {
		t.Fatalf("unexpected answer %q", answer)
	}

	history := f.agent.History(f.sctx.SessionID)
	if len(history) != 2 {
		t.Fatalf("expected user+assistant history, got %d messages", len(history))
	}
	if history[0].Role != chat.RoleUser || history[1].Role != chat.RoleAssistant {
		t.Fatalf("unexpected roles %s, %s", history[0].Role, history[1].Role)
	}
	if len(history[1].Documents) == 0 {
		t.Fatal("assistant message should carry the retrieved documents")
	}
}

func TestChatToolCallFlow(t *testing.T) {
	f := newFixture(t,
		&models.Reply{ToolCalls: []chat.ToolCall{{
			ID:        "call-1",
			Name:      "searchJobOffers",
			Arguments: `{"query":"go","location":"Paris"}`,
		}}},
		// Second scripted reply never fires: the final pass uses Complete,
		// which pops the script too, so leave it to the echo fallback.
	)

	answer, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "find go jobs in paris")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if answer == "" {
		t.Fatal("expected a final answer")
	}

	// The final model pass must have seen the assistant call and its result.
	if len(f.model.Calls) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(f.model.Calls))
	}
	final := f.model.Calls[1]

	var assistantIdx = -1
	for i, msg := range final {
		if msg.Role == chat.RoleAssistant && len(msg.ToolCalls) > 0 {
			assistantIdx = i
		}
	}
	if assistantIdx == -1 {
		t.Fatal("assistant tool-call message missing from final transcript")
	}
	result := final[assistantIdx+1]
	if result.Role != chat.RoleTool {
		t.Fatalf("expected tool result after assistant message, got %s", result.Role)
	}
	if result.ToolCallID != "call-1" || result.ToolName != "searchJobOffers" {
		t.Fatalf("tool result not bound to its call: %+v", result)
	}

	var outcome tools.Outcome
	if err := json.Unmarshal([]byte(result.Content), &outcome); err != nil {
		t.Fatalf("tool result is not an outcome envelope: %v", err)
	}
	if !outcome.Success {
		t.Fatalf("search should have succeeded: %s", outcome.Error)
	}

	history := f.agent.History(f.sctx.SessionID)
	last := history[len(history)-1]
	if last.Role != chat.RoleAssistant || len(last.ToolsUsed) != 1 || last.ToolsUsed[0] != "searchJobOffers" {
		t.Fatalf("final history entry missing tools used: %+v", last)
	}
}

func TestChatToolResultsKeepIssuanceOrder(t *testing.T) {
	calls := []chat.ToolCall{
		{ID: "call-a", Name: "getMyProfile", Arguments: "{}"},
		{ID: "call-b", Name: "getMyFavorites", Arguments: "{}"},
		{ID: "call-c", Name: "getMyApplications", Arguments: "{}"},
	}
	f := newFixture(t, &models.Reply{ToolCalls: calls})

	if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "summarize my account"); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	final := f.model.Calls[1]
	var ids []string
	for _, msg := range final {
		if msg.Role == chat.RoleTool {
			ids = append(ids, msg.ToolCallID)
		}
	}
	if len(ids) != 3 || ids[0] != "call-a" || ids[1] != "call-b" || ids[2] != "call-c" {
		t.Fatalf("tool results out of issuance order: %v", ids)
	}
}

func TestChatUnknownToolIsRecoverable(t *testing.T) {
	f := newFixture(t, &models.Reply{ToolCalls: []chat.ToolCall{{
		ID:        "call-1",
		Name:      "launchMissiles",
		Arguments: "{}",
	}}})

	if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "do something odd"); err != nil {
		t.Fatalf("unknown tool must not fail the turn: %v", err)
	}

	final := f.model.Calls[1]
	var outcome tools.Outcome
	for _, msg := range final {
		if msg.Role == chat.RoleTool {
			if err := json.Unmarshal([]byte(msg.Content), &outcome); err != nil {
				t.Fatalf("decode outcome: %v", err)
			}
		}
	}
	if outcome.Success {
		t.Fatal("unknown tool must produce a failed outcome")
	}
	if !strings.Contains(outcome.Error, "launchMissiles") {
		t.Fatalf("error should name the tool: %q", outcome.Error)
	}
}

func TestChatMalformedArgumentsAreRecoverable(t *testing.T) {
	f := newFixture(t, &models.Reply{ToolCalls: []chat.ToolCall{{
		ID:        "call-1",
		Name:      "searchJobOffers",
		Arguments: `{"query":`,
	}}})

	if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "find jobs"); err != nil {
		t.Fatalf("malformed arguments must not fail the turn: %v", err)
	}

	var outcome tools.Outcome
	for _, msg := range f.model.Calls[1] {
		if msg.Role == chat.RoleTool {
			if err := json.Unmarshal([]byte(msg.Content), &outcome); err != nil {
				t.Fatalf("decode outcome: %v", err)
			}
		}
	}
	if outcome.Success {
		t.Fatal("expected failed outcome for malformed arguments")
	}
}

func TestChatMissingSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.agent.Chat(context.Background(), "sess-unknown", "hello")
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestChatEmptyInput(t *testing.T) {
	f := newFixture(t)

	if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "   "); err == nil {
		t.Fatal("expected error for empty input")
	}
	if len(f.model.Calls) != 0 {
		t.Fatal("model must not be called for empty input")
	}
}

func TestChatModelFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.model.Err = errors.New("all models failed: quota")

	_, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "hello")
	if err == nil {
		t.Fatal("expected provider failure to surface")
	}
	if !strings.Contains(err.Error(), "assistant unavailable") {
		t.Fatalf("unexpected error %v", err)
	}
}

// toollessModel only does plain completion, like the lighter adapters.
type toollessModel struct {
	models.DummyModel
}

func (m *toollessModel) CompleteWithTools(context.Context, []chat.Message, string, []tools.Spec) (*models.Reply, error) {
	return nil, models.ErrToolsUnsupported
}

func TestChatToollessModelSkipsToolLoop(t *testing.T) {
	f := newFixture(t)

	mem := store.NewMemory()
	store.SeedDemo(mem)
	ag, err := New(Options{
		Model:    &toollessModel{},
		Catalog:  tools.DefaultCatalog(mem),
		Sessions: f.sessions,
		Indexer:  rag.NewIndexer(mem),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	answer, err := ag.Chat(context.Background(), f.sctx.SessionID, "hello")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if answer != "Dummy response: hello" {
		t.Fatalf("unexpected answer %q", answer)
	}
}

func TestChatFallbackModelAnswers(t *testing.T) {
	f := newFixture(t)
	f.model.Err = errors.New("all models failed: quota")

	mem := store.NewMemory()
	store.SeedDemo(mem)
	fallback := models.NewDummyModel(&models.Reply{Text: "from fallback"})
	ag, err := New(Options{
		Model:    f.model,
		Fallback: fallback,
		Catalog:  tools.DefaultCatalog(mem),
		Sessions: f.sessions,
		Indexer:  rag.NewIndexer(mem),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	answer, err := ag.Chat(context.Background(), f.sctx.SessionID, "hello")
	if err != nil {
		t.Fatalf("fallback should have answered: %v", err)
	}
	if answer != "from fallback" {
		t.Fatalf("unexpected answer %q", answer)
	}
}

func TestChatHistoryWindow(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 10; i++ {
		if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "ping"); err != nil {
			t.Fatalf("Chat: %v", err)
		}
	}

	if got := len(f.agent.History(f.sctx.SessionID)); got > defaultHistoryWindow {
		t.Fatalf("history grew past the window: %d", got)
	}
}

func TestChatHistoryWindowKeepsTurnsIntact(t *testing.T) {
	// Each turn with two tool calls stores five messages; three turns
	// overflow the window, and the cut lands inside the oldest turn.
	toolTurn := func(n string) *models.Reply {
		return &models.Reply{ToolCalls: []chat.ToolCall{
			{ID: "call-" + n + "-a", Name: "getMyProfile", Arguments: "{}"},
			{ID: "call-" + n + "-b", Name: "getMyFavorites", Arguments: "{}"},
		}}
	}
	f := newFixture(t,
		toolTurn("1"), &models.Reply{Text: "turn 1 done"},
		toolTurn("2"), &models.Reply{Text: "turn 2 done"},
		toolTurn("3"), &models.Reply{Text: "turn 3 done"},
	)

	for i := 0; i < 3; i++ {
		if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "summarize my account"); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}

	history := f.agent.History(f.sctx.SessionID)
	if len(history) == 0 || len(history) > defaultHistoryWindow {
		t.Fatalf("unexpected history length %d", len(history))
	}
	if history[0].Role == chat.RoleTool {
		t.Fatalf("history opens with an orphaned tool message: %+v", history[0])
	}

	// Every surviving tool message must answer a call from the nearest
	// preceding assistant message.
	live := map[string]bool{}
	for _, msg := range history {
		switch msg.Role {
		case chat.RoleAssistant:
			live = map[string]bool{}
			for _, call := range msg.ToolCalls {
				live[call.ID] = true
			}
		case chat.RoleTool:
			if !live[msg.ToolCallID] {
				t.Fatalf("tool message %q has no preceding assistant call", msg.ToolCallID)
			}
		}
	}
}

func TestClearHistory(t *testing.T) {
	f := newFixture(t, &models.Reply{Text: "ok"})

	if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "hello"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	f.agent.ClearHistory(f.sctx.SessionID)
	if got := len(f.agent.History(f.sctx.SessionID)); got != 0 {
		t.Fatalf("history survived clear: %d messages", got)
	}
}

func TestSystemPromptCarriesRetrievedContext(t *testing.T) {
	f := newFixture(t, &models.Reply{Text: "ok"})

	if _, err := f.agent.Chat(context.Background(), f.sctx.SessionID, "senior go developer paris"); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	history := f.agent.History(f.sctx.SessionID)
	docs := history[len(history)-1].Documents
	if len(docs) == 0 {
		t.Fatal("expected retrieved documents for a matching query")
	}
	found := false
	for _, doc := range docs {
		if doc.Type == rag.DocJobOffer && strings.Contains(doc.Content, "Senior Go Developer") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the matching job offer among documents: %+v", docs)
	}
}
