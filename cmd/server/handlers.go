package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeck/jobdeck/pkg/agent"
	"github.com/jobdeck/jobdeck/pkg/session"
)

type apiHandler struct {
	agent    *agent.Agent
	sessions *session.Store
}

type createSessionRequest struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	CandidateID string `json:"candidateId,omitempty"`
	CompanyID   string `json:"companyId,omitempty"`
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

func (h *apiHandler) registerRoutes(r chi.Router) {
	r.Post("/api/session", h.createSession)
	r.Delete("/api/session/{id}", h.deleteSession)
	r.Post("/api/chat", h.chat)
}

func (h *apiHandler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	role := session.Role(req.Role)
	if role != session.RoleCandidate && role != session.RoleCompany {
		writeError(w, http.StatusBadRequest, "role must be candidate or company")
		return
	}

	var opts []session.Option
	if req.CandidateID != "" {
		opts = append(opts, session.WithCandidateID(req.CandidateID))
	}
	if req.CompanyID != "" {
		opts = append(opts, session.WithCompanyID(req.CompanyID))
	}

	sctx := h.sessions.Create(req.UserID, role, opts...)
	writeJSON(w, http.StatusCreated, sctx)
}

func (h *apiHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.sessions.Clear(id)
	h.agent.ClearHistory(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *apiHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "sessionId and message are required")
		return
	}

	answer, err := h.agent.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, "session not found")
			return
		}
		slog.Error("Chat turn failed", "session_id", req.SessionID, "error", err)
		writeError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
