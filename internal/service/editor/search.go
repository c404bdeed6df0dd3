package editor

import (
	"context"
	"strings"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultCatalog returns the built-in set of searchable remote audio items.
// There is no real external search; the catalog stands in for it.
func DefaultCatalog() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:        "1",
			Title:     "Peaceful Morning Nature Sounds",
			Channel:   "Nature Sounds",
			Duration:  "10:00",
			Thumbnail: "/placeholder.svg",
			URL:       "https://youtube.com/watch?v=example1",
		},
		{
			ID:        "2",
			Title:     "Gentle Piano Wake Up Music",
			Channel:   "Piano Relaxing",
			Duration:  "5:30",
			Thumbnail: "/placeholder.svg",
			URL:       "https://youtube.com/watch?v=example2",
		},
		{
			ID:        "3",
			Title:     "Birds Chirping Morning Sounds",
			Channel:   "Natural Awakening",
			Duration:  "8:15",
			Thumbnail: "/placeholder.svg",
			URL:       "https://youtube.com/watch?v=example3",
		},
		{
			ID:        "4",
			Title:     "Soft Jazz for Morning",
			Channel:   "Jazz Collection",
			Duration:  "6:45",
			Thumbnail: "/placeholder.svg",
			URL:       "https://youtube.com/watch?v=example4",
		},
	}
}

// Search starts an asynchronous catalog search for the current query.
// Requires a non-empty query; results land in the snapshot after the
// simulated search delay, unless the editor session closed in the meantime.
func (s *Service) Search(ctx context.Context) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := strings.TrimSpace(s.snap.Query)
	if query == "" {
		return s.snap.Clone()
	}

	s.snap.IsSearching = true
	session := s.session

	logger.DebugKV(ctx, "Catalog search started", "query", query)

	time.AfterFunc(s.searchDelay, func() {
		s.finishSearch(ctx, session, query)
	})

	return s.snap.Clone()
}

// finishSearch publishes the search results, unless the editor session that
// dispatched the search is gone.
func (s *Service) finishSearch(ctx context.Context, session uint64, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session != s.session {
		logger.DebugKV(ctx, "Discarding stale search result", "session", session, "query", query)

		return
	}

	s.snap.SearchResults = s.matchCatalog(query)
	s.snap.IsSearching = false

	logger.InfoKV(ctx, "Catalog search finished", "query", query, "results", len(s.snap.SearchResults))
}

// matchCatalog filters the catalog by case-insensitive substring match
// against title or channel. When nothing matches, the whole catalog is
// returned so a search never comes back empty.
func (s *Service) matchCatalog(query string) []domain.Candidate {
	query = strings.ToLower(query)

	matched := make([]domain.Candidate, 0, len(s.catalog))

	for _, c := range s.catalog {
		if strings.Contains(strings.ToLower(c.Title), query) ||
			strings.Contains(strings.ToLower(c.Channel), query) {
			matched = append(matched, c)
		}
	}

	if len(matched) == 0 {
		matched = append(matched, s.catalog...)
	}

	return matched
}
