package uploader

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/repository/audio"
)

// Editor abstracts the draft mutations the uploader needs.
type Editor interface {
	UpdateDraft(ctx context.Context, patch *domain.DraftPatch) *domain.Snapshot
}

// Service validates uploaded audio, persists it and attaches the stored file
// to the open draft. Uploads have no simulated delay because no conversion
// is performed for local files.
type Service struct {
	// editor receives the draft update once the file is stored.
	editor Editor
	// store persists the decoded audio bytes.
	store audio.Repository
	// maxBytes caps the decoded payload size.
	maxBytes int64
}

var (
	// ErrNotAudio is returned when the payload is not an audio MIME type.
	ErrNotAudio = errors.New("file is not an audio type")
	// ErrTooLarge is returned when the decoded payload exceeds the size cap.
	ErrTooLarge = errors.New("file exceeds the upload size limit")
	// ErrBadPayload is returned when the base64 payload cannot be decoded.
	ErrBadPayload = errors.New("audio payload is not valid base64")
	// ErrNoDraft is returned when no alarm draft is open to receive the upload.
	ErrNoDraft = errors.New("no alarm draft is open")
)

// NewService creates an uploader backed by the provided editor and store.
func NewService(editor Editor, store audio.Repository, maxBytes int64) *Service {
	return &Service{
		editor:   editor,
		store:    store,
		maxBytes: maxBytes,
	}
}

// SaveUpload decodes and validates the uploaded audio, stores it and updates
// the open draft with the stored reference. The payload may be a raw base64
// string or a browser data URL ("data:audio/mpeg;base64,...").
// Requires an open editor draft. Returns the stored file path.
func (s *Service) SaveUpload(ctx context.Context, ownerID, filename, payload string) (string, error) {
	mimeType, encoded := splitDataURL(payload, filename)

	if !strings.HasPrefix(mimeType, "audio/") {
		return "", fmt.Errorf("%w: %q", ErrNotAudio, mimeType)
	}

	// Reject obviously oversized payloads before decoding:
	// base64 inflates by one third, so decoded size is at least 3/4 of this.
	if s.maxBytes > 0 && int64(len(encoded))/4*3 > s.maxBytes {
		return "", ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadPayload, err)
	}

	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	path, err := s.store.Save(ctx, ownerID, filename, data)
	if err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}

	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	status := domain.StatusReady

	snap := s.editor.UpdateDraft(ctx, &domain.DraftPatch{
		SongTitle:        &title,
		Audio:            domain.UploadedSource(path),
		ConversionStatus: &status,
	})

	// UpdateDraft is a no-op without an open draft; the stored file would be
	// orphaned with nothing referencing it, so take it back out.
	if snap.Draft == nil {
		if removeErr := s.store.Remove(ctx, path); removeErr != nil {
			logger.Warnf(ctx, "Failed to remove unreferenced upload: %v", removeErr)
		}

		return "", ErrNoDraft
	}

	logger.InfoKV(ctx, "Audio upload stored", "owner_id", ownerID, "path", path, "bytes", len(data))

	return path, nil
}

// Discard removes the stored file behind an uploaded audio source.
// A no-op for remote sources and missing files, so callers can invoke it
// unconditionally when an alarm is deleted.
func (s *Service) Discard(ctx context.Context, src *domain.AudioSource) error {
	if src == nil || src.Kind != domain.SourceUploaded || src.Path == "" {
		return nil
	}

	if err := s.store.Remove(ctx, src.Path); err != nil {
		return fmt.Errorf("discard audio: %w", err)
	}

	logger.DebugKV(ctx, "Uploaded audio discarded", "path", src.Path)

	return nil
}

// splitDataURL separates the MIME type and base64 body of a payload.
// Data URLs carry their own MIME type; for raw base64 the type is inferred
// from the filename extension.
func splitDataURL(payload, filename string) (mimeType, encoded string) {
	if strings.HasPrefix(payload, "data:") {
		header, body, found := strings.Cut(payload, ",")
		if found {
			mimeType = strings.TrimPrefix(header, "data:")
			mimeType = strings.TrimSuffix(mimeType, ";base64")

			return mimeType, body
		}
	}

	return audioTypeByExtension(filepath.Ext(filename)), payload
}

// audioTypeByExtension resolves common audio extensions before falling back
// to the platform MIME table, which often lacks them.
func audioTypeByExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	default:
		return mime.TypeByExtension(ext)
	}
}
