package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/papertrade/internal/models"
	"github.com/bobmcallan/papertrade/internal/services/lesson"
)

// Lesson update actions for PUT /api/users/{id}/lessons/{lesson}
const (
	lessonActionAdvance    = "advance"
	lessonActionAnswerQuiz = "answer_quiz"
	lessonActionComplete   = "complete"
)

// handleLessons handles GET /api/users/{id}/lessons
func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	all, err := s.app.LessonService.All(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, all)
}

// handleLessonGet handles GET /api/users/{id}/lessons/{lesson}
func (s *Server) handleLessonGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	progress, err := s.app.LessonService.Progress(r.Context(), userID, r.PathValue("lesson"))
	if err != nil {
		writeLessonError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, progress)
}

// handleLessonUpdate handles PUT /api/users/{id}/lessons/{lesson}.
// Body: {"action": "advance"|"answer_quiz"|"complete", "sections": n}
func (s *Server) handleLessonUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Action   string `json:"action"`
		Sections int    `json:"sections"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	lessonID := r.PathValue("lesson")

	var (
		progress models.LessonProgress
		err      error
	)
	switch req.Action {
	case lessonActionAdvance:
		progress, err = s.app.LessonService.Advance(ctx, userID, lessonID, req.Sections)
	case lessonActionAnswerQuiz:
		progress, err = s.app.LessonService.AnswerQuiz(ctx, userID, lessonID)
	case lessonActionComplete:
		progress, err = s.app.LessonService.Complete(ctx, userID, lessonID)
	default:
		WriteError(w, http.StatusBadRequest, "action must be one of advance, answer_quiz, complete")
		return
	}
	if err != nil {
		writeLessonError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, progress)
}

func writeLessonError(w http.ResponseWriter, err error) {
	if errors.Is(err, lesson.ErrInvalidLesson) {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}

// handleThemeGet handles GET /api/users/{id}/theme
func (s *Server) handleThemeGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	theme := s.app.LocalState.Theme(userID).Load(r.Context())
	WriteJSON(w, http.StatusOK, map[string]models.Theme{"theme": theme})
}

// handleThemeSet handles PUT /api/users/{id}/theme
func (s *Server) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Theme models.Theme `json:"theme"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !req.Theme.Valid() {
		WriteError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}

	if err := s.app.LocalState.Theme(userID).Save(r.Context(), req.Theme); err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]models.Theme{"theme": req.Theme})
}

// handleRiskProfileGet handles GET /api/users/{id}/risk-profile
func (s *Server) handleRiskProfileGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	profile, err := s.app.BackendClient.GetRiskProfile(r.Context(), userID)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// handleRiskProfileSet handles PUT /api/users/{id}/risk-profile
func (s *Server) handleRiskProfileSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeUser(w, r)
	if !ok {
		return
	}

	var profile models.RiskProfile
	if !DecodeJSON(w, r, &profile) {
		return
	}
	if profile.RiskTolerance == "" {
		WriteError(w, http.StatusBadRequest, "riskTolerance is required")
		return
	}

	saved, err := s.app.BackendClient.SaveRiskProfile(r.Context(), userID, profile)
	if err != nil {
		WriteUpstreamError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, saved)
}
