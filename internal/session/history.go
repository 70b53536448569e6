package session

import (
	"time"

	"github.com/coldestconcept/beatgenius/internal/db"
	"github.com/coldestconcept/beatgenius/internal/recipe"
)

// AppendHistory records freshly generated recipes at the front of the
// history log, newest first, trimming the log to the configured limit.
func (s *Store) AppendHistory(recipes []recipe.BeatRecipe) {
	if len(recipes) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	items := make([]recipe.HistoryItem, 0, len(recipes)+len(s.history))
	for _, r := range recipes {
		items = append(items, recipe.HistoryItem{BeatRecipe: r, GeneratedAt: now})
	}
	items = append(items, s.history...)
	if limit := s.cfg.HistoryLimit; limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	s.history = items
	s.persist(db.KeyHistory, s.history)
}

// ClearHistory wipes the generation log without touching the vault.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	s.removeKey(db.KeyHistory)
}
