package editor

import (
	"context"
	"regexp"
	"strings"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// videoURLPattern recognizes the three supported video URL shapes
// (watch URL, short URL, embed URL) and captures the video identifier.
var videoURLPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\s?#]+)`)

// videoTitlePrefix starts every title derived from a bare video identifier.
const videoTitlePrefix = "YouTube video "

// ResolveFromURL attaches the current query to the draft as a remote audio
// source and kicks off the simulated conversion. Requires an open draft and
// a non-empty query; a malformed URL is dropped silently, leaving the state
// untouched.
func (s *Service) ResolveFromURL(ctx context.Context) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.snap.Draft
	if d == nil {
		return s.snap.Clone()
	}

	query := strings.TrimSpace(s.snap.Query)
	if query == "" {
		return s.snap.Clone()
	}

	videoID, ok := extractVideoID(query)
	if !ok {
		logger.DebugKV(ctx, "Ignoring malformed video URL", "query", query)

		return s.snap.Clone()
	}

	d.Audio = domain.RemoteSource(query)
	d.SongTitle = titleForVideoID(videoID)
	d.ConversionStatus = domain.StatusConverting
	s.snap.Query = ""

	logger.InfoKV(ctx, "Audio conversion started", "video_id", videoID, "song_title", d.SongTitle)

	s.scheduleConversionDone(ctx, s.convertDelay)

	return s.snap.Clone()
}

// SelectCandidate attaches the picked search result to the draft as a remote
// audio source, clears the result list and kicks off the simulated
// conversion. A no-op when no editor session is open.
func (s *Service) SelectCandidate(ctx context.Context, c domain.Candidate) *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.snap.Draft
	if d == nil {
		return s.snap.Clone()
	}

	d.Audio = domain.RemoteSource(c.URL)
	d.SongTitle = c.Title
	d.ConversionStatus = domain.StatusConverting
	s.snap.SearchResults = make([]domain.Candidate, 0)

	logger.InfoKV(ctx, "Audio conversion started", "candidate_id", c.ID, "song_title", c.Title)

	s.scheduleConversionDone(ctx, s.selectDelay)

	return s.snap.Clone()
}

// scheduleConversionDone arms the delayed conversion completion, tagged with
// the current session so a cancel-then-reopen sequence discards it.
// Callers must hold mu.
func (s *Service) scheduleConversionDone(ctx context.Context, delay time.Duration) {
	session := s.session

	time.AfterFunc(delay, func() {
		s.finishConversion(ctx, session)
	})
}

// finishConversion marks the draft's audio ready, unless the editor session
// that dispatched the conversion is gone.
func (s *Service) finishConversion(ctx context.Context, session uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session != s.session || s.snap.Draft == nil {
		logger.DebugKV(ctx, "Discarding stale conversion result", "session", session)

		return
	}

	s.snap.Draft.ConversionStatus = domain.StatusReady

	logger.InfoKV(ctx, "Audio conversion finished", "song_title", s.snap.Draft.SongTitle)
}

// extractVideoID pulls the video identifier out of a recognized URL shape.
func extractVideoID(raw string) (string, bool) {
	match := videoURLPattern.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// titleForVideoID derives a display title from the first characters of the
// video identifier, with a placeholder when extraction yields nothing.
func titleForVideoID(id string) string {
	if id == "" {
		return videoTitlePrefix + "unknown"
	}

	if len(id) > 8 {
		id = id[:8]
	}

	return videoTitlePrefix + id
}
