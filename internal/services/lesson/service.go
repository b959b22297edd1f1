// Package lesson tracks per-user lesson progress
package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/models"
	"github.com/bobmcallan/papertrade/internal/storage/localstate"
)

// ErrInvalidLesson is returned for an empty lesson id or a non-positive section count
var ErrInvalidLesson = errors.New("invalid lesson")

// Service implements LessonService
type Service struct {
	state  *localstate.Store
	logger *common.Logger
}

// NewService creates a new lesson service
func NewService(state *localstate.Store, logger *common.Logger) *Service {
	return &Service{state: state, logger: logger}
}

// Progress returns one lesson's progress; untouched lessons have zero progress
func (s *Service) Progress(ctx context.Context, userID, lessonID string) (models.LessonProgress, error) {
	if lessonID == "" {
		return models.LessonProgress{}, fmt.Errorf("%w: lesson id is required", ErrInvalidLesson)
	}
	return s.state.Progress(userID).Get(ctx, lessonID), nil
}

// All returns progress for every lesson the user has started
func (s *Service) All(ctx context.Context, userID string) (map[string]models.LessonProgress, error) {
	return s.state.Progress(userID).Load(ctx), nil
}

// Advance moves to the next section, stopping at the last of sections
func (s *Service) Advance(ctx context.Context, userID, lessonID string, sections int) (models.LessonProgress, error) {
	if lessonID == "" {
		return models.LessonProgress{}, fmt.Errorf("%w: lesson id is required", ErrInvalidLesson)
	}
	if sections <= 0 {
		return models.LessonProgress{}, fmt.Errorf("%w: section count must be positive, got %d", ErrInvalidLesson, sections)
	}

	return s.update(ctx, userID, lessonID, func(lp *models.LessonProgress) {
		if lp.CurrentSection < sections-1 {
			lp.CurrentSection++
		} else {
			lp.CurrentSection = sections - 1
		}
	})
}

// AnswerQuiz records one answered quiz question
func (s *Service) AnswerQuiz(ctx context.Context, userID, lessonID string) (models.LessonProgress, error) {
	if lessonID == "" {
		return models.LessonProgress{}, fmt.Errorf("%w: lesson id is required", ErrInvalidLesson)
	}
	return s.update(ctx, userID, lessonID, func(lp *models.LessonProgress) {
		lp.QuizAnswered++
	})
}

// Complete marks the lesson completed
func (s *Service) Complete(ctx context.Context, userID, lessonID string) (models.LessonProgress, error) {
	if lessonID == "" {
		return models.LessonProgress{}, fmt.Errorf("%w: lesson id is required", ErrInvalidLesson)
	}
	lp, err := s.update(ctx, userID, lessonID, func(lp *models.LessonProgress) {
		lp.Completed = true
	})
	if err == nil {
		s.logger.Info().Str("user", userID).Str("lesson", lessonID).Msg("Lesson completed")
	}
	return lp, err
}

func (s *Service) update(ctx context.Context, userID, lessonID string, fn func(*models.LessonProgress)) (models.LessonProgress, error) {
	lp, err := s.state.Progress(userID).Update(ctx, lessonID, fn)
	if err != nil {
		return models.LessonProgress{}, fmt.Errorf("failed to save lesson progress: %w", err)
	}
	return lp, nil
}

var _ interfaces.LessonService = (*Service)(nil)
