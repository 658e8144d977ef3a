// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pdiddy/resume-server/internal/auth"
	"github.com/pdiddy/resume-server/internal/httputil"
	"github.com/pdiddy/resume-server/internal/store"
	"github.com/pdiddy/resume-server/pkg/types"
)

type resumePayload struct {
	Title            string             `json:"title"`
	PersonalInfo     types.PersonalInfo `json:"personalInfo"`
	Experiences      []types.Experience `json:"experiences"`
	Education        []types.Education  `json:"education"`
	Skills           []types.Skill      `json:"skills"`
	SelectedTemplate string             `json:"selectedTemplate"`
}

type resumeUpdatePayload struct {
	Title            *string             `json:"title"`
	PersonalInfo     *types.PersonalInfo `json:"personalInfo"`
	Experiences      *[]types.Experience `json:"experiences"`
	Education        *[]types.Education  `json:"education"`
	Skills           *[]types.Skill      `json:"skills"`
	SelectedTemplate *string             `json:"selectedTemplate"`
}

type resumeResponse struct {
	Message string        `json:"message"`
	Resume  *types.Resume `json:"resume"`
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var payload resumePayload
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(payload.Title) == "" {
		httputil.WriteMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	resume, err := s.store.CreateResume(r.Context(), auth.UserID(r.Context()), types.Resume{
		Title:            payload.Title,
		PersonalInfo:     payload.PersonalInfo,
		Experiences:      payload.Experiences,
		Education:        payload.Education,
		Skills:           payload.Skills,
		SelectedTemplate: payload.SelectedTemplate,
	})
	if err != nil {
		s.logger.Error("create resume", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, resumeResponse{
		Message: "Resume created successfully",
		Resume:  resume,
	})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.ListResumes(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.logger.Error("list resumes", "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resumes)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadOwnedResume(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadOwnedResume(w, r)
	if !ok {
		return
	}

	var payload resumeUpdatePayload
	if err := httputil.DecodeJSON(r, &payload); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.store.UpdateResume(r.Context(), resume.ID, store.ResumeUpdate{
		Title:            payload.Title,
		PersonalInfo:     payload.PersonalInfo,
		Experiences:      payload.Experiences,
		Education:        payload.Education,
		Skills:           payload.Skills,
		SelectedTemplate: payload.SelectedTemplate,
	})
	if err != nil {
		s.logger.Error("update resume", "id", resume.ID, "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resumeResponse{
		Message: "Resume updated successfully",
		Resume:  updated,
	})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadOwnedResume(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteResume(r.Context(), resume.ID); err != nil {
		s.logger.Error("delete resume", "id", resume.ID, "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Resume deleted successfully")
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadOwnedResume(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	// Rendering happens client-side; this endpoint hands back the resume
	// data together with the requested format.
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Resume download as %s", format),
		"resume":  resume,
		"format":  format,
	})
}

// loadOwnedResume resolves the {id} route parameter and enforces that the
// resume belongs to the authenticated user. On failure it writes the error
// response and returns ok=false.
func (s *Server) loadOwnedResume(w http.ResponseWriter, r *http.Request) (*types.Resume, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httputil.WriteMessage(w, http.StatusBadRequest, "Invalid resume ID")
		return nil, false
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if errors.Is(err, store.ErrResumeNotFound) {
		httputil.WriteMessage(w, http.StatusNotFound, "Resume not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("load resume", "id", id, "error", err)
		httputil.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return nil, false
	}
	if resume.UserID != auth.UserID(r.Context()) {
		httputil.WriteMessage(w, http.StatusForbidden, "Not authorized")
		return nil, false
	}
	return resume, true
}
