package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

func candidateSession() session.Context {
	return session.Context{
		UserID:      "user-demo",
		Role:        session.RoleCandidate,
		SessionID:   "sess-user-demo-1",
		CandidateID: "cand-demo",
	}
}

func companySession() session.Context {
	return session.Context{
		UserID:    "user-nova",
		Role:      session.RoleCompany,
		SessionID: "sess-user-nova-1",
		CompanyID: "comp-nova",
	}
}

func seededStore() *store.Memory {
	mem := store.NewMemory()
	store.SeedDemo(mem)
	return mem
}

// spyFacade records whether any write reached the store.
type spyFacade struct {
	store.Facade
	writes int
}

func (s *spyFacade) CreateApplication(ctx context.Context, app store.Application) (*store.Application, error) {
	s.writes++
	return s.Facade.CreateApplication(ctx, app)
}

func (s *spyFacade) AddFavorite(ctx context.Context, candidateID, jobOfferID string) (*store.Favorite, error) {
	s.writes++
	return s.Facade.AddFavorite(ctx, candidateID, jobOfferID)
}

func TestCatalogRegisterAndLookup(t *testing.T) {
	catalog := DefaultCatalog(seededStore())

	specs := catalog.Specs()
	if len(specs) != 11 {
		t.Fatalf("expected 11 registered tools, got %d", len(specs))
	}

	if _, ok := catalog.Lookup("searchJobOffers"); !ok {
		t.Fatal("searchJobOffers missing from catalog")
	}
	if _, ok := catalog.Lookup("SearchJobOffers"); ok {
		t.Fatal("lookup must be exact, case-variant name resolved")
	}
	if _, ok := catalog.Lookup("dropDatabase"); ok {
		t.Fatal("unknown tool resolved")
	}
}

func TestCatalogRejectsDuplicateNames(t *testing.T) {
	catalog := NewCatalog(nil)
	tool := &SearchJobOffersTool{Store: seededStore()}

	if err := catalog.Register(tool); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := catalog.Register(tool); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

// Round trip the way the agent drives it: resolve by name, decode JSON
// arguments, execute.
func TestSearchJobOffersRoundTrip(t *testing.T) {
	catalog := DefaultCatalog(seededStore())

	tool, ok := catalog.Lookup("searchJobOffers")
	if !ok {
		t.Fatal("searchJobOffers missing")
	}

	var params map[string]any
	if err := json.Unmarshal([]byte(`{"query":"go","location":"Paris","limit":5}`), &params); err != nil {
		t.Fatalf("decode arguments: %v", err)
	}

	out := tool.Execute(context.Background(), params, candidateSession())
	if !out.Success {
		t.Fatalf("expected success, got error %q", out.Error)
	}

	data, ok := out.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data shape %T", out.Data)
	}
	jobs, ok := data["jobs"].([]jobView)
	if !ok {
		t.Fatalf("unexpected jobs shape %T", data["jobs"])
	}
	if len(jobs) != 1 || jobs[0].ID != "job-1" {
		t.Fatalf("expected only job-1 for go in Paris, got %+v", jobs)
	}
	if count := data["count"].(int); count != len(jobs) {
		t.Fatalf("count %d does not match jobs length %d", count, len(jobs))
	}
}

func TestSearchJobOffersLimitCap(t *testing.T) {
	mem := store.NewMemory()
	for i := 0; i < 30; i++ {
		mem.PutJobOffer(store.JobOffer{Title: "Engineer", Location: "Paris"})
	}
	tool := &SearchJobOffersTool{Store: mem}

	out := tool.Execute(context.Background(), map[string]any{"limit": float64(100)}, candidateSession())
	if !out.Success {
		t.Fatalf("unexpected failure: %s", out.Error)
	}
	data := out.Data.(map[string]any)
	if count := data["count"].(int); count != maxListItems {
		t.Fatalf("expected count capped at %d, got %d", maxListItems, count)
	}
}

func TestGetJobOfferDetails(t *testing.T) {
	tool := &GetJobOfferDetailsTool{Store: seededStore()}

	out := tool.Execute(context.Background(), map[string]any{"jobOfferId": "job-1"}, candidateSession())
	if !out.Success {
		t.Fatalf("expected success, got %q", out.Error)
	}

	if out := tool.Execute(context.Background(), map[string]any{"jobOfferId": "job-404"}, candidateSession()); out.Success {
		t.Fatal("expected failure for unknown job offer")
	}
	if out := tool.Execute(context.Background(), map[string]any{}, candidateSession()); out.Success {
		t.Fatal("expected failure for missing jobOfferId")
	}
}

func TestGetJobOfferDetailsTruncatesOnRuneBoundary(t *testing.T) {
	mem := store.NewMemory()
	// The leading ASCII byte misaligns every following two-byte rune, so a
	// byte-indexed cut at 1000 would land mid-rune.
	job := mem.PutJobOffer(store.JobOffer{
		Title:       "Übersetzer",
		Description: "a" + strings.Repeat("é", 600),
	})
	tool := &GetJobOfferDetailsTool{Store: mem}

	out := tool.Execute(context.Background(), map[string]any{"jobOfferId": job.ID}, candidateSession())
	if !out.Success {
		t.Fatalf("unexpected failure: %s", out.Error)
	}

	description := out.Data.(map[string]any)["description"].(string)
	if !utf8.ValidString(description) {
		t.Fatal("truncated description is not valid UTF-8")
	}
	if len(description) > maxDescriptionBytes+len("…") {
		t.Fatalf("description not truncated: %d bytes", len(description))
	}
	if !strings.HasSuffix(description, "…") {
		t.Fatalf("truncated description missing ellipsis: %q", description[len(description)-8:])
	}
}

func TestCreateApplicationRequiresCandidate(t *testing.T) {
	spy := &spyFacade{Facade: seededStore()}
	tool := &CreateApplicationTool{Store: spy}
	params := map[string]any{"jobOfferId": "job-1"}

	for _, sctx := range []session.Context{
		companySession(),
		{UserID: "user-x", Role: session.RoleCandidate}, // candidate role, no bound id
	} {
		out := tool.Execute(context.Background(), params, sctx)
		if out.Success {
			t.Fatalf("expected gating failure for %+v", sctx)
		}
		if out.Error == "" {
			t.Fatal("gating failure must carry an error message")
		}
	}
	if spy.writes != 0 {
		t.Fatalf("gated calls must not reach the store, saw %d writes", spy.writes)
	}

	out := tool.Execute(context.Background(), params, candidateSession())
	if !out.Success {
		t.Fatalf("candidate application failed: %s", out.Error)
	}
	if spy.writes != 1 {
		t.Fatalf("expected exactly one store write, got %d", spy.writes)
	}
}

func TestCreateApplicationRejectsDuplicates(t *testing.T) {
	tool := &CreateApplicationTool{Store: seededStore()}
	params := map[string]any{"jobOfferId": "job-1"}

	if out := tool.Execute(context.Background(), params, candidateSession()); !out.Success {
		t.Fatalf("first application failed: %s", out.Error)
	}
	out := tool.Execute(context.Background(), params, candidateSession())
	if out.Success {
		t.Fatal("expected duplicate application to fail")
	}
}

func TestFavoritesLifecycle(t *testing.T) {
	mem := seededStore()
	sctx := candidateSession()
	ctx := context.Background()

	add := &AddToFavoritesTool{Store: mem}
	list := &GetMyFavoritesTool{Store: mem}
	remove := &RemoveFromFavoritesTool{Store: mem}

	if out := add.Execute(ctx, map[string]any{"jobOfferId": "job-2"}, sctx); !out.Success {
		t.Fatalf("add favorite failed: %s", out.Error)
	}
	out := list.Execute(ctx, nil, sctx)
	if !out.Success {
		t.Fatalf("list favorites failed: %s", out.Error)
	}
	if count := out.Data.(map[string]any)["count"].(int); count != 1 {
		t.Fatalf("expected 1 favorite, got %d", count)
	}
	if out := remove.Execute(ctx, map[string]any{"jobOfferId": "job-2"}, sctx); !out.Success {
		t.Fatalf("remove favorite failed: %s", out.Error)
	}

	// Company accounts are gated out of all three.
	for _, tool := range []Tool{add, list, remove} {
		if out := tool.Execute(ctx, map[string]any{"jobOfferId": "job-2"}, companySession()); out.Success {
			t.Fatalf("%s allowed a company account", tool.Spec().Name)
		}
	}
}

func TestGetMyProfileBranchesOnRole(t *testing.T) {
	tool := &GetMyProfileTool{Store: seededStore()}
	ctx := context.Background()

	if out := tool.Execute(ctx, nil, candidateSession()); !out.Success {
		t.Fatalf("candidate profile failed: %s", out.Error)
	}
	if out := tool.Execute(ctx, nil, companySession()); !out.Success {
		t.Fatalf("company profile failed: %s", out.Error)
	}
	if out := tool.Execute(ctx, nil, session.Context{UserID: "user-x"}); out.Success {
		t.Fatal("expected failure for unbound session")
	}
}

func TestOutcomeNeverPanics(t *testing.T) {
	catalog := DefaultCatalog(seededStore())
	ctx := context.Background()

	// Every tool must absorb empty params and an unbound session without
	// panicking; failures surface only through the envelope.
	for _, spec := range catalog.Specs() {
		tool, ok := catalog.Lookup(spec.Name)
		if !ok {
			t.Fatalf("spec %s has no tool", spec.Name)
		}
		out := tool.Execute(ctx, map[string]any{}, session.Context{})
		if !out.Success && out.Error == "" {
			t.Fatalf("%s failed without an error message", spec.Name)
		}
	}
}

func TestArgHelpers(t *testing.T) {
	params := map[string]any{
		"s":     "  padded  ",
		"n":     float64(7),
		"i":     3,
		"other": true,
	}

	if got := stringArg(params, "s"); got != "padded" {
		t.Fatalf("stringArg trim: got %q", got)
	}
	if got := stringArg(params, "missing"); got != "" {
		t.Fatalf("stringArg missing: got %q", got)
	}
	if got := intArg(params, "n"); got != 7 {
		t.Fatalf("intArg float64: got %d", got)
	}
	if got := intArg(params, "i"); got != 3 {
		t.Fatalf("intArg int: got %d", got)
	}
	if got := intArg(params, "other"); got != 0 {
		t.Fatalf("intArg non-number: got %d", got)
	}
}
