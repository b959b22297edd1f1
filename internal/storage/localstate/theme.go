package localstate

import (
	"context"
	"fmt"

	"github.com/bobmcallan/papertrade/internal/models"
)

// ThemePreference is a user's persisted colour scheme
type ThemePreference struct {
	store *Store
	key   string
}

// Theme returns the theme preference for userID
func (s *Store) Theme(userID string) *ThemePreference {
	return &ThemePreference{store: s, key: Key(userID, KeyTheme)}
}

// Load returns the stored theme, or light when none is stored or it is invalid
func (t *ThemePreference) Load(ctx context.Context) models.Theme {
	var theme models.Theme
	if !t.store.loadJSON(ctx, t.key, &theme) || !theme.Valid() {
		return models.ThemeLight
	}
	return theme
}

// Save persists theme
func (t *ThemePreference) Save(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return t.store.saveJSON(ctx, t.key, theme)
}
