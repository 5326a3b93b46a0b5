package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/pavelanni/tutorhub/internal/i18n"
	"github.com/pavelanni/tutorhub/internal/model"
	"github.com/pavelanni/tutorhub/internal/progression"
	"github.com/pavelanni/tutorhub/internal/storage"
)

func (h *Handler) handleUploadExam(w http.ResponseWriter, r *http.Request) {
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

	classLevel := r.FormValue("classLevel")
	subject := r.FormValue("subject")
	studentType := r.FormValue("studentType")
	if err := storage.ValidateUpload(header.Filename, header.Size, map[string]string{
		"classLevel":  classLevel,
		"subject":     subject,
		"studentType": studentType,
	}); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, err := h.files.PublishExam(file, classLevel, subject, studentType)
	if err != nil {
		slog.Error("publish exam failed", "subject", subject, "class", classLevel, "error", err)
		respondError(w, storageStatus(err), err.Error())
		return
	}

	slog.Info("exam published", "subject", subject, "class", classLevel, "group", studentType, "filename", name)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": appI18n.Td(r.Context(), "ExamUploaded", map[string]any{
			"Subject": subject,
			"Class":   classLevel,
		}),
	})
}

func (h *Handler) handleUploadNotes(w http.ResponseWriter, r *http.Request) {
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

	if err := storage.ValidateUpload(header.Filename, header.Size, nil); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, err := h.files.SaveNotes(file, header.Filename)
	if err != nil {
		slog.Error("save notes failed", "filename", header.Filename, "error", err)
		respondError(w, storageStatus(err), err.Error())
		return
	}

	slog.Info("notes uploaded", "filename", name)
	respondJSON(w, http.StatusOK, map[string]string{
		"message":  appI18n.T(r.Context(), "NotesUploaded"),
		"filename": name,
	})
}

func (h *Handler) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	names, err := h.files.ListSubmissions()
	if err != nil {
		slog.Error("list submissions failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	files := make([]model.SubmissionFile, 0, len(names))
	for _, name := range names {
		files = append(files, model.SubmissionFile{
			Filename: name,
			URL:      h.config.UploadsBase + "/submissions/" + name,
		})
	}
	respondJSON(w, http.StatusOK, files)
}

func (h *Handler) handleDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	err := h.files.DeleteSubmission(filename)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, appI18n.T(r.Context(), "SubmissionNotFound"))
		return
	case err != nil:
		slog.Error("delete submission failed", "filename", filename, "error", err)
		respondError(w, storageStatus(err), err.Error())
		return
	}

	slog.Info("submission deleted", "filename", filename)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": appI18n.T(r.Context(), "SubmissionDeleted"),
	})
}

type gradeRequest struct {
	Result       string `json:"result"`
	CurrentClass string `json:"currentClass"`
}

func (h *Handler) handleGradeExam(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentClass == "" || req.Result == "" {
		respondError(w, http.StatusBadRequest, "result and currentClass are required")
		return
	}

	next := progression.Advance(req.CurrentClass, req.Result)

	if _, err := h.db.InsertGradeRecord(model.GradeRecord{
		Class:     req.CurrentClass,
		Result:    req.Result,
		NextClass: next,
	}); err != nil {
		slog.Error("record grade failed", "class", req.CurrentClass, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("exam graded", "class", req.CurrentClass, "result", req.Result, "next", next)
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"result":    req.Result,
		"nextClass": next,
	})
}

func (h *Handler) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	rc, err := h.files.Open(key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
		return
	case err != nil:
		respondError(w, storageStatus(err), err.Error())
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("stream upload failed", "key", key, "error", err)
	}
}
