package editor

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

const (
	// DefaultTime is assigned when a draft is saved without a firing time.
	DefaultTime = "07:00"
	// DefaultLabel is assigned when a draft is saved without a display name.
	DefaultLabel = "My alarm"
	// DefaultVolume is assigned when a draft is saved without a volume.
	DefaultVolume = 50

	// DefaultConvertDelay mirrors the duration of a real MP3 conversion.
	DefaultConvertDelay = 3 * time.Second
	// DefaultSelectDelay is shorter because picked results are assumed cached.
	DefaultSelectDelay = 2 * time.Second
	// DefaultSearchDelay simulates the round trip of a catalog search.
	DefaultSearchDelay = time.Second
)

// Service owns the alarm schedule and the transient editor session.
// All commands mutate state under a single mutex and hand out deep-cloned
// snapshots, so callers never observe a half-applied command.
type Service struct {
	// snap is the current store state. Guarded by mu.
	snap *domain.Snapshot
	// session identifies the current editor lifetime. It is bumped whenever
	// the editor opens or closes so delayed completions dispatched during an
	// earlier session can recognize they are stale. Guarded by mu.
	session uint64
	// catalog is the fixed set of searchable remote audio items.
	catalog []domain.Candidate

	// convertDelay is the simulated duration of a URL-based conversion.
	convertDelay time.Duration
	// selectDelay is the simulated conversion duration after picking a candidate.
	selectDelay time.Duration
	// searchDelay is the simulated duration of a catalog search.
	searchDelay time.Duration

	// now supplies timestamps, replaceable in tests.
	now func() time.Time
	// newID supplies fresh alarm identifiers, replaceable in tests.
	newID func() string

	// mu protects snap and session.
	mu sync.Mutex
}

// Option configures service behaviour.
type Option func(*Service)

// WithCatalog replaces the built-in search catalog.
func WithCatalog(catalog []domain.Candidate) Option {
	return func(s *Service) {
		if len(catalog) > 0 {
			s.catalog = catalog
		}
	}
}

// WithDelays overrides the simulated conversion and search durations.
// Non-positive values keep the corresponding default.
func WithDelays(convert, sel, search time.Duration) Option {
	return func(s *Service) {
		if convert > 0 {
			s.convertDelay = convert
		}

		if sel > 0 {
			s.selectDelay = sel
		}

		if search > 0 {
			s.searchDelay = search
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDSource overrides the alarm identifier generator.
func WithIDSource(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService creates an alarm store with an empty schedule.
func NewService(opts ...Option) *Service {
	s := &Service{
		snap: &domain.Snapshot{
			Alarms:        make([]*domain.Alarm, 0),
			SearchResults: make([]domain.Candidate, 0),
		},
		catalog:      DefaultCatalog(),
		convertDelay: DefaultConvertDelay,
		selectDelay:  DefaultSelectDelay,
		searchDelay:  DefaultSearchDelay,
		now:          time.Now,
		newID:        uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns the current store state.
func (s *Service) Snapshot(_ context.Context) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snap.Clone()
}

// Lookup returns the committed alarm with the given id, if present.
func (s *Service) Lookup(_ context.Context, id string) (*domain.Alarm, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.snap.Alarms {
		if a.ID == id {
			return a.Clone(), true
		}
	}

	return nil, false
}

// BeginCreate opens an editor session with a fresh draft carrying the
// creation defaults. Reentrant: an already open session is simply replaced.
func (s *Service) BeginCreate(ctx context.Context) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session++
	s.resetSearch()
	s.snap.IsEditing = true
	s.snap.Draft = &domain.Draft{
		Enabled:   boolRef(true),
		Volume:    intRef(DefaultVolume),
		FadeIn:    boolRef(true),
		Vibration: boolRef(true),
	}

	logger.Debug(ctx, "Editor opened for a new alarm")

	return s.snap.Clone()
}

// BeginEdit opens an editor session on an independent copy of the provided
// alarm, so draft edits never reach the committed schedule until save.
func (s *Service) BeginEdit(ctx context.Context, a *domain.Alarm) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a == nil {
		return s.snap.Clone()
	}

	s.session++
	s.resetSearch()
	s.snap.IsEditing = true
	s.snap.Draft = domain.DraftFromAlarm(a)

	logger.DebugKV(ctx, "Editor opened for an existing alarm", "alarm_id", a.ID)

	return s.snap.Clone()
}

// CancelEdit discards the editor session. Idempotent.
func (s *Service) CancelEdit(ctx context.Context) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeEditor()

	logger.Debug(ctx, "Editor session cancelled")

	return s.snap.Clone()
}

// UpdateDraft shallow-merges the patch into the open draft.
// A no-op when no editor session is open.
func (s *Service) UpdateDraft(_ context.Context, patch *domain.DraftPatch) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.Draft == nil {
		return s.snap.Clone()
	}

	s.snap.Draft.Apply(patch)

	return s.snap.Clone()
}

// Save commits the open draft to the schedule, defaulting absent fields,
// replacing by id or appending, and re-sorting by firing time.
// A no-op when no editor session is open; a save never fails.
func (s *Service) Save(ctx context.Context) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.snap.Draft
	if d == nil {
		return s.snap.Clone()
	}

	now := s.now()
	a := &domain.Alarm{
		ID:               d.ID,
		Time:             d.Time,
		Label:            d.Label,
		Enabled:          boolValue(d.Enabled, true),
		Audio:            d.Audio.Clone(),
		SongTitle:        d.SongTitle,
		ConversionStatus: d.ConversionStatus,
		Volume:           intValue(d.Volume, DefaultVolume),
		FadeIn:           boolValue(d.FadeIn, true),
		Vibration:        boolValue(d.Vibration, true),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        now,
	}

	if a.ID == "" {
		a.ID = s.newID()
	}

	if a.Time == "" {
		a.Time = DefaultTime
	}

	if a.Label == "" {
		a.Label = DefaultLabel
	}

	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}

	if len(d.RepeatDays) > 0 {
		a.RepeatDays = make([]string, len(d.RepeatDays))
		copy(a.RepeatDays, d.RepeatDays)
	}

	replaced := false

	for i, existing := range s.snap.Alarms {
		if existing.ID == a.ID {
			s.snap.Alarms[i] = a
			replaced = true

			break
		}
	}

	if !replaced {
		s.snap.Alarms = append(s.snap.Alarms, a)
	}

	// Stable sort keeps the relative order of alarms sharing a firing time.
	// Zero-padded HH:MM makes plain string comparison equivalent to time order.
	slices.SortStableFunc(s.snap.Alarms, func(x, y *domain.Alarm) int {
		return strings.Compare(x.Time, y.Time)
	})

	s.closeEditor()

	logger.InfoKV(ctx, "Alarm saved", "alarm_id", a.ID, "time", a.Time, "replaced", replaced)

	return s.snap.Clone()
}

// DeleteAlarm removes the alarm with the given id. A silent no-op on an
// unknown id. Returns the removed alarm (for audio cleanup) and the new state.
// Editor state is not affected.
func (s *Service) DeleteAlarm(ctx context.Context, id string) (*domain.Alarm, *domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed *domain.Alarm

	for i, a := range s.snap.Alarms {
		if a.ID == id {
			removed = a
			s.snap.Alarms = slices.Delete(s.snap.Alarms, i, i+1)

			break
		}
	}

	if removed != nil {
		logger.InfoKV(ctx, "Alarm deleted", "alarm_id", id)
	}

	return removed.Clone(), s.snap.Clone()
}

// ToggleAlarm flips the enabled flag of the alarm with the given id.
// A silent no-op on an unknown id. UpdatedAt is deliberately left alone:
// toggling is a quick-access action, not a full save.
func (s *Service) ToggleAlarm(ctx context.Context, id string) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.snap.Alarms {
		if a.ID == id {
			a.Enabled = !a.Enabled

			logger.InfoKV(ctx, "Alarm toggled", "alarm_id", id, "enabled", a.Enabled)

			break
		}
	}

	return s.snap.Clone()
}

// SetQuery replaces the search/URL input verbatim.
func (s *Service) SetQuery(_ context.Context, query string) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Query = query

	return s.snap.Clone()
}

// closeEditor clears every transient editor field and invalidates pending
// delayed completions by bumping the session. Callers must hold mu.
func (s *Service) closeEditor() {
	s.session++
	s.resetSearch()
	s.snap.IsEditing = false
	s.snap.Draft = nil
	s.snap.Query = ""
}

// resetSearch drops the search transients. A stale completion only discards
// its results, so whatever bumps the session must also drop the busy flag
// here or the snapshot would report a search in flight forever.
// Callers must hold mu.
func (s *Service) resetSearch() {
	s.snap.SearchResults = make([]domain.Candidate, 0)
	s.snap.IsSearching = false
}

// boolRef returns a pointer to the provided bool.
func boolRef(v bool) *bool { return &v }

// intRef returns a pointer to the provided int.
func intRef(v int) *int { return &v }

// boolValue dereferences v, falling back when absent.
func boolValue(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}

	return *v
}

// intValue dereferences v, falling back when absent.
func intValue(v *int, fallback int) int {
	if v == nil {
		return fallback
	}

	return *v
}
