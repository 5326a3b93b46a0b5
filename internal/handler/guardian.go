package handler

import (
	"log/slog"
	"net/http"
	"time"

	appI18n "github.com/pavelanni/tutorhub/internal/i18n"
	"github.com/pavelanni/tutorhub/internal/storage"
)

func (h *Handler) handleUploadAnswers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "upload too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	studentName := r.FormValue("studentName")
	if err := storage.ValidateUpload(header.Filename, header.Size, map[string]string{
		"studentName": studentName,
	}); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, err := h.files.SaveSubmission(file, studentName, time.Now())
	if err != nil {
		slog.Error("save submission failed", "student", studentName, "error", err)
		respondError(w, storageStatus(err), err.Error())
		return
	}

	slog.Info("answer sheet received", "student", studentName, "filename", name)
	respondJSON(w, http.StatusOK, map[string]string{
		"message":  appI18n.Td(r.Context(), "AnswersReceived", map[string]any{"Student": studentName}),
		"status":   "submitted",
		"filename": name,
	})
}
