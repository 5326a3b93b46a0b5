// Package handler exposes the academic-support API over HTTP: the
// tutoring chat for students, answer-sheet uploads for guardians, and
// exam publishing, notes, submissions and grading for administrators.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/tutorhub/internal/model"
	"github.com/pavelanni/tutorhub/internal/storage"
	"github.com/pavelanni/tutorhub/internal/store"
	"github.com/pavelanni/tutorhub/internal/tutor"
)

const maxUploadBytes = 10 << 20

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	files  *storage.Store
	db     *store.Store
	engine *tutor.Engine
	config model.AppConfig
}

// New creates a new Handler.
func New(files *storage.Store, db *store.Store, engine *tutor.Engine, cfg model.AppConfig) *Handler {
	if cfg.UploadsBase == "" {
		cfg.UploadsBase = "/uploads"
	}
	return &Handler{files: files, db: db, engine: engine, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/chat", h.handleChat)

	r.Route("/api/guardian", func(gr chi.Router) {
		gr.Use(requireRole(model.UserRoleGuardian, model.UserRoleAdmin))
		gr.Post("/upload-answers", h.handleUploadAnswers)
	})

	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(requireRole(model.UserRoleAdmin))
		ar.Post("/upload-exam", h.handleUploadExam)
		ar.Post("/upload-notes", h.handleUploadNotes)
		ar.Get("/submissions", h.handleListSubmissions)
		ar.Delete("/delete-submission/{filename}", h.handleDeleteSubmission)
		ar.Post("/grade-exam", h.handleGradeExam)
	})

	r.Get("/uploads/*", h.handleServeUpload)
}

// requireRole returns middleware that checks the caller-supplied role
// tag. There are no accounts behind the tag; the frontend declares who is
// calling.
func requireRole(allowed ...model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := model.UserRole(r.Header.Get("X-User-Role"))
			for _, a := range allowed {
				if role == a {
					ctx := model.ContextWithRole(r.Context(), role)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			respondError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// storageStatus maps storage-layer failures to HTTP status codes.
// Validation rejections (bad extension, missing field, unsafe name) are
// the caller's fault; everything else is an I/O failure.
func storageStatus(err error) int {
	switch {
	case storage.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
