package localstate

import (
	"context"

	"github.com/bobmcallan/papertrade/internal/models"
)

// Progress is a user's lesson progress map keyed by lesson id
type Progress struct {
	store *Store
	key   string
}

// Progress returns the lesson progress map for userID
func (s *Store) Progress(userID string) *Progress {
	return &Progress{store: s, key: Key(userID, KeyLessonProgress)}
}

// Load returns the persisted map, or an empty map when none is stored, it is
// malformed, or it cannot be read.
func (p *Progress) Load(ctx context.Context) map[string]models.LessonProgress {
	m := make(map[string]models.LessonProgress)
	if !p.store.loadJSON(ctx, p.key, &m) || m == nil {
		return make(map[string]models.LessonProgress)
	}
	return m
}

func (p *Progress) read(ctx context.Context) (map[string]models.LessonProgress, error) {
	m := make(map[string]models.LessonProgress)
	ok, err := p.store.readJSON(ctx, p.key, &m)
	if err != nil {
		return nil, err
	}
	if !ok || m == nil {
		return make(map[string]models.LessonProgress), nil
	}
	return m, nil
}

// Save replaces the persisted map
func (p *Progress) Save(ctx context.Context, m map[string]models.LessonProgress) error {
	return p.store.saveJSON(ctx, p.key, m)
}

// Get returns progress for one lesson; a lesson never touched has zero progress.
func (p *Progress) Get(ctx context.Context, lessonID string) models.LessonProgress {
	return p.Load(ctx)[lessonID]
}

// Update applies fn to one lesson's progress and persists the result.
// The entry is created on first update. Nothing is written when the current
// map cannot be read.
func (p *Progress) Update(ctx context.Context, lessonID string, fn func(*models.LessonProgress)) (models.LessonProgress, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()

	m, err := p.read(ctx)
	if err != nil {
		return models.LessonProgress{}, err
	}
	lp := m[lessonID]
	fn(&lp)
	m[lessonID] = lp
	if err := p.Save(ctx, m); err != nil {
		return models.LessonProgress{}, err
	}
	return lp, nil
}
