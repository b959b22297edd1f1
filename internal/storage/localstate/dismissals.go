package localstate

import (
	"context"
	"sort"
)

// Dismissals is the set of insight ids a user has closed. Entries never expire;
// only Reset clears them.
type Dismissals struct {
	store *Store
	key   string
}

// Dismissals returns the dismissal set for userID
func (s *Store) Dismissals(userID string) *Dismissals {
	return &Dismissals{store: s, key: Key(userID, KeyDismissedInsights)}
}

// Load returns the persisted set, or an empty set when none is stored, it is
// malformed, or it cannot be read.
func (d *Dismissals) Load(ctx context.Context) map[string]struct{} {
	var ids []string
	if !d.store.loadJSON(ctx, d.key, &ids) {
		return toSet(nil)
	}
	return toSet(ids)
}

func (d *Dismissals) read(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	ok, err := d.store.readJSON(ctx, d.key, &ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return toSet(nil), nil
	}
	return toSet(ids), nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Save replaces the persisted set. Ids are written as a sorted JSON array.
func (d *Dismissals) Save(ctx context.Context, set map[string]struct{}) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return d.store.saveJSON(ctx, d.key, ids)
}

// Dismiss adds id to the set and persists it. Nothing is written when the
// current set cannot be read.
func (d *Dismissals) Dismiss(ctx context.Context, id string) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	set, err := d.read(ctx)
	if err != nil {
		return err
	}
	if _, ok := set[id]; ok {
		return nil
	}
	set[id] = struct{}{}
	return d.Save(ctx, set)
}

// Reset clears the set
func (d *Dismissals) Reset(ctx context.Context) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.Save(ctx, map[string]struct{}{})
}
