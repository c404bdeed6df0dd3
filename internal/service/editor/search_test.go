package editor

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestSearch_MatchesTitleOrChannel verifies case-insensitive substring
// matching against both candidate fields.
func TestSearch_MatchesTitleOrChannel(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		// Queries hit titles and channels alike, ignoring case.
		cases := map[string][]string{
			"PIANO":             {"2"},
			"jazz collection":   {"4"},
			"morning":           {"1", "3", "4"},
			"natural awakening": {"3"},
		}

		for query, wantIDs := range cases {
			s := newTestService()
			ctx := context.Background()

			s.SetQuery(ctx, query)
			s.Search(ctx)

			time.Sleep(DefaultSearchDelay)
			synctest.Wait()

			results := s.Snapshot(ctx).SearchResults

			gotIDs := make([]string, 0, len(results))
			for _, c := range results {
				gotIDs = append(gotIDs, c.ID)
			}

			require.Equal(t, wantIDs, gotIDs, query)
		}
	})
}

// TestSearch_FallbackToFullCatalog ensures an unmatched query still surfaces
// the whole catalog instead of an empty list.
func TestSearch_FallbackToFullCatalog(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		s := newTestService()
		ctx := context.Background()

		s.SetQuery(ctx, "zzz no such song")

		snap := s.Search(ctx)
		require.True(t, snap.IsSearching)
		require.Empty(t, snap.SearchResults)

		time.Sleep(DefaultSearchDelay)
		synctest.Wait()

		snap = s.Snapshot(ctx)
		require.False(t, snap.IsSearching)
		require.Len(t, snap.SearchResults, len(DefaultCatalog()))
	})
}

// TestSearch_EmptyQuery verifies a blank query never starts a search.
func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	s := newTestService()
	snap := s.Search(context.Background())

	require.False(t, snap.IsSearching)
	require.Empty(t, snap.SearchResults)
}

// TestSearch_CancelDiscardsResults ensures results of a search dispatched in
// a closed session are dropped.
func TestSearch_CancelDiscardsResults(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		s := newTestService()
		ctx := context.Background()

		s.BeginCreate(ctx)
		s.SetQuery(ctx, "piano")
		s.Search(ctx)
		s.CancelEdit(ctx)

		time.Sleep(DefaultSearchDelay)
		synctest.Wait()

		snap := s.Snapshot(ctx)
		require.Empty(t, snap.SearchResults)
		require.False(t, snap.IsSearching)
	})
}

// TestSearch_ReopenClearsBusyFlag ensures reopening the editor while a search
// is in flight drops the busy flag immediately; the stale completion must not
// leave the snapshot reporting a search that no longer exists.
func TestSearch_ReopenClearsBusyFlag(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		s := newTestService()
		ctx := context.Background()

		s.BeginCreate(ctx)
		s.SetQuery(ctx, "piano")
		s.Search(ctx)

		// Reopen before the search lands.
		snap := s.BeginCreate(ctx)
		require.False(t, snap.IsSearching)
		require.Empty(t, snap.SearchResults)

		time.Sleep(DefaultSearchDelay)
		synctest.Wait()

		snap = s.Snapshot(ctx)
		require.False(t, snap.IsSearching)
		require.Empty(t, snap.SearchResults)
	})
}

// TestSearch_ReopenForEditClearsBusyFlag covers the same sequence through
// BeginEdit instead of BeginCreate.
func TestSearch_ReopenForEditClearsBusyFlag(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		s := newTestService()
		ctx := context.Background()

		saved := saveAlarm(t, s, nil)

		s.BeginCreate(ctx)
		s.SetQuery(ctx, "piano")
		s.Search(ctx)

		snap := s.BeginEdit(ctx, saved.Alarms[0])
		require.False(t, snap.IsSearching)

		time.Sleep(DefaultSearchDelay)
		synctest.Wait()

		snap = s.Snapshot(ctx)
		require.False(t, snap.IsSearching)
		require.Empty(t, snap.SearchResults)

		// The reopened draft is untouched by the stale search.
		require.Equal(t, saved.Alarms[0].ID, snap.Draft.ID)
	})
}

// TestSearch_CustomCatalog verifies the catalog override option is honored.
func TestSearch_CustomCatalog(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		catalog := []domain.Candidate{
			{ID: "c1", Title: "Sunrise Bells", Channel: "Bells", URL: "https://youtube.com/watch?v=bells1"},
		}

		s := newTestService(WithCatalog(catalog))
		ctx := context.Background()

		s.SetQuery(ctx, "bells")
		s.Search(ctx)

		time.Sleep(DefaultSearchDelay)
		synctest.Wait()

		results := s.Snapshot(ctx).SearchResults
		require.Len(t, results, 1)
		require.Equal(t, "c1", results[0].ID)
	})
}
