package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oshokin/alarm-clock/internal/config"
)

// Repository defines storage operations for uploaded audio files.
type Repository interface {
	Save(ctx context.Context, ownerID, filename string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}

// FileRepository stores uploaded audio as plain files under a base folder.
// Filenames are sanitized and scoped by owner so concurrent uploads from
// different editor sessions cannot clobber each other.
type FileRepository struct {
	// dir is the base folder for stored audio files.
	dir string
	// mu serializes writes into the folder.
	mu sync.Mutex
}

var (
	// errEmptyPayload is returned when a save is attempted with no data.
	errEmptyPayload = errors.New("audio payload is empty")
	// errOutsideFolder is returned when a remove path escapes the base folder.
	errOutsideFolder = errors.New("path is outside the audio folder")
)

// NewFileRepository creates a repository rooted at the provided folder.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{
		dir: filepath.Clean(dir),
	}
}

// Save writes the audio bytes to disk and returns the stored path.
func (r *FileRepository) Save(_ context.Context, ownerID, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.dir, 0o750); err != nil {
		return "", fmt.Errorf("create audio folder: %w", err)
	}

	name := sanitize(ownerID) + "_" + sanitize(filename)
	path := filepath.Join(r.dir, name)

	if err := os.WriteFile(path, data, config.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return path, nil
}

// Remove deletes a stored audio file. Removing a missing file is not an
// error, so cleanup stays idempotent. Paths outside the base folder are
// rejected.
func (r *FileRepository) Remove(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rel, err := filepath.Rel(r.dir, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errOutsideFolder
	}

	if err := os.Remove(filepath.Join(r.dir, rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove audio file: %w", err)
	}

	return nil
}

// sanitize strips path structure and awkward characters from a name segment.
func sanitize(name string) string {
	name = filepath.Base(name)

	var b strings.Builder

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		cleaned = "audio"
	}

	return cleaned
}
