package session

import (
	"strings"
	"testing"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore()

	sctx := s.Create("user-1", RoleCandidate, WithCandidateID("cand-1"))
	if !strings.HasPrefix(sctx.SessionID, "sess-user-1-") {
		t.Fatalf("unexpected session id %q", sctx.SessionID)
	}
	if sctx.Role != RoleCandidate || sctx.CandidateID != "cand-1" {
		t.Fatalf("unexpected context %+v", sctx)
	}

	got, ok := s.Get(sctx.SessionID)
	if !ok {
		t.Fatal("expected session to be retrievable")
	}
	if got != sctx {
		t.Fatalf("retrieved context differs: %+v vs %+v", got, sctx)
	}
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	s := NewStore()

	a := s.Create("user-1", RoleCandidate)
	b := s.Create("user-1", RoleCandidate)
	if a.SessionID == b.SessionID {
		t.Fatalf("expected distinct session ids, both %q", a.SessionID)
	}
	if len(s.ActiveIDs()) != 2 {
		t.Fatalf("expected 2 active sessions, got %d", len(s.ActiveIDs()))
	}
}

func TestApplyMergesOnlyProvidedFields(t *testing.T) {
	s := NewStore()
	sctx := s.Create("user-1", RoleCandidate, WithCandidateID("cand-1"))

	newID := "cand-2"
	s.Apply(sctx.SessionID, Update{CandidateID: &newID})

	got, _ := s.Get(sctx.SessionID)
	if got.CandidateID != "cand-2" {
		t.Fatalf("candidate id not updated: %q", got.CandidateID)
	}
	if got.Role != RoleCandidate {
		t.Fatalf("role changed by partial update: %q", got.Role)
	}

	// An empty update is a no-op.
	s.Apply(sctx.SessionID, Update{})
	again, _ := s.Get(sctx.SessionID)
	if again != got {
		t.Fatalf("empty update changed context: %+v vs %+v", again, got)
	}
}

func TestApplyUnknownSessionIsNoop(t *testing.T) {
	s := NewStore()
	role := RoleCompany
	s.Apply("sess-missing", Update{Role: &role})

	if _, ok := s.Get("sess-missing"); ok {
		t.Fatal("apply must not create sessions")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStore()
	sctx := s.Create("user-1", RoleCompany, WithCompanyID("comp-1"))

	s.Clear(sctx.SessionID)
	if _, ok := s.Get(sctx.SessionID); ok {
		t.Fatal("session survived clear")
	}
	s.Clear(sctx.SessionID)
	s.Clear("sess-never-existed")
}

func TestRoleHelpers(t *testing.T) {
	tests := []struct {
		name      string
		ctx       Context
		candidate bool
		company   bool
	}{
		{"bound candidate", Context{Role: RoleCandidate, CandidateID: "cand-1"}, true, false},
		{"candidate without id", Context{Role: RoleCandidate}, false, false},
		{"bound company", Context{Role: RoleCompany, CompanyID: "comp-1"}, false, true},
		{"company with candidate id only", Context{Role: RoleCompany, CandidateID: "cand-1"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.IsCandidate(); got != tt.candidate {
				t.Fatalf("IsCandidate() = %v, want %v", got, tt.candidate)
			}
			if got := tt.ctx.IsCompany(); got != tt.company {
				t.Fatalf("IsCompany() = %v, want %v", got, tt.company)
			}
		})
	}
}
