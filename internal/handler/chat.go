package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appI18n "github.com/pavelanni/tutorhub/internal/i18n"
	"github.com/pavelanni/tutorhub/internal/tutor"
)

type chatRequest struct {
	Source    string `json:"source"`
	Message   string `json:"message"`
	IsBlind   bool   `json:"is_blind"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Source != h.config.ChatSource {
		respondError(w, http.StatusForbidden, appI18n.T(r.Context(), "AccessDenied"))
		return
	}

	sess, err := h.loadOrCreateSession(req)
	if err != nil {
		slog.Error("session setup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "session error")
		return
	}
	if sess == nil {
		respondError(w, http.StatusNotFound, "unknown session")
		return
	}

	before := len(sess.Turns)
	reply, err := h.engine.Ask(r.Context(), sess, req.Message)
	switch {
	case errors.Is(err, tutor.ErrEmptyQuestion):
		respondError(w, http.StatusBadRequest, "message is empty")
		return
	case errors.Is(err, tutor.ErrUpstream):
		slog.Error("tutoring upstream failed", "session", sess.ID, "error", err)
		respondError(w, http.StatusBadGateway, "the tutor is unavailable, try again")
		return
	case err != nil:
		slog.Error("ask failed", "session", sess.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Persist the user turn and the reply together; a failed ask never
	// reaches this point, so no dangling user turn is ever stored.
	if err := h.db.AppendTurns(sess.ID, sess.Turns[before:]...); err != nil {
		slog.Error("persist turns failed", "session", sess.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{Reply: reply, SessionID: sess.ID})
}

// loadOrCreateSession resumes the session named in the request, or starts
// a new one. Returns (nil, nil) when the named session does not exist.
// For a resumed session the stored accessibility mode wins; the flag in
// the request only seeds new sessions.
func (h *Handler) loadOrCreateSession(req chatRequest) (*tutor.Session, error) {
	if req.SessionID != "" {
		rec, err := h.db.GetSession(req.SessionID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}
		turns, err := h.db.GetTurns(rec.ID)
		if err != nil {
			return nil, err
		}
		return h.engine.Resume(rec.ID, rec.Accessible, turns), nil
	}

	id, err := h.db.CreateSession(req.IsBlind)
	if err != nil {
		return nil, err
	}
	sess := h.engine.NewSession(id, req.IsBlind)
	if err := h.db.AppendTurns(id, sess.Turns[0]); err != nil {
		return nil, err
	}
	return sess, nil
}
