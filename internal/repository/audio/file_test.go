package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_SaveAndRemove covers the store-then-cleanup roundtrip.
func TestFileRepository_SaveAndRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileRepository(dir)
	ctx := context.Background()

	path, err := repo.Save(ctx, "owner-1", "wake up.mp3", []byte("mp3-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, dir))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("mp3-bytes"), contents)

	require.NoError(t, repo.Remove(ctx, path))

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Removing again stays silent.
	require.NoError(t, repo.Remove(ctx, path))
}

// TestFileRepository_SaveRejectsEmptyPayload ensures empty uploads fail fast.
func TestFileRepository_SaveRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(t.TempDir())

	_, err := repo.Save(context.Background(), "owner-1", "a.mp3", nil)
	require.Error(t, err)
}

// TestFileRepository_SanitizesNames checks path structure is stripped from
// owner and filename segments.
func TestFileRepository_SanitizesNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileRepository(dir)

	path, err := repo.Save(context.Background(), "../owner", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, dir, filepath.Dir(path))
	require.NotContains(t, filepath.Base(path), string(filepath.Separator))
}

// TestFileRepository_RemoveRejectsEscapes verifies paths outside the base
// folder are refused.
func TestFileRepository_RemoveRejectsEscapes(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(t.TempDir())

	err := repo.Remove(context.Background(), "/etc/passwd")
	require.Error(t, err)
}
