package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/repository/audio"
	"github.com/oshokin/alarm-clock/internal/service/editor"
	"github.com/oshokin/alarm-clock/internal/service/uploader"
)

// newTestServer wires a real editor and uploader behind the HTTP handler.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	var seq int

	store := editor.NewService(
		editor.WithClock(func() time.Time {
			return time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
		}),
		editor.WithIDSource(func() string {
			seq++

			return fmt.Sprintf("id-%d", seq)
		}),
	)

	repo := audio.NewFileRepository(t.TempDir())
	up := uploader.NewService(store, repo, 1<<20)

	return NewServer(store, up)
}

// doJSON performs a request with an optional JSON body and decodes the reply.
func doJSON(t *testing.T, s *Server, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}

	return w
}

// TestHealthCheck verifies the liveness route.
func TestHealthCheck(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
}

// TestGetState_Empty returns an empty schedule and no editor session.
func TestGetState_Empty(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	var snap domain.Snapshot

	w := doJSON(t, s, http.MethodGet, "/api/state", nil, &snap)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, snap.Alarms)
	require.False(t, snap.IsEditing)
	require.Nil(t, snap.Draft)
}

// TestCreateEditSaveFlow drives a full create cycle through the API.
func TestCreateEditSaveFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	var snap domain.Snapshot

	w := doJSON(t, s, http.MethodPost, "/api/editor", nil, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, snap.IsEditing)
	require.NotNil(t, snap.Draft)

	patch := map[string]any{"time": "08:15", "label": "Workout"}

	w = doJSON(t, s, http.MethodPatch, "/api/editor", patch, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "08:15", snap.Draft.Time)

	w = doJSON(t, s, http.MethodPost, "/api/editor/save", nil, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, snap.Alarms, 1)
	require.Equal(t, "Workout", snap.Alarms[0].Label)
	require.False(t, snap.IsEditing)
	require.Nil(t, snap.Draft)
}

// TestUpdateDraft_Validation rejects out-of-range patch values.
func TestUpdateDraft_Validation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/editor", nil, nil)

	cases := []map[string]any{
		{"time": "25:00"},
		{"time": "8:15"},
		{"volume": 150},
		{"volume": -1},
		{"conversionStatus": "paused"},
		{"audioSource": map[string]any{"kind": "remote"}},
		{"audioSource": map[string]any{"kind": "tape", "url": "x"}},
	}

	for _, body := range cases {
		w := doJSON(t, s, http.MethodPatch, "/api/editor", body, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

// TestBeginEdit covers both the found and not-found paths.
func TestBeginEdit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/alarms/missing/edit", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var snap domain.Snapshot

	doJSON(t, s, http.MethodPost, "/api/editor", nil, nil)
	doJSON(t, s, http.MethodPost, "/api/editor/save", nil, &snap)
	require.Len(t, snap.Alarms, 1)

	w = doJSON(t, s, http.MethodPost, "/api/alarms/"+snap.Alarms[0].ID+"/edit", nil, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, snap.IsEditing)
	require.Equal(t, snap.Alarms[0].ID, snap.Draft.ID)
}

// TestToggleAndDelete exercises the quick-access routes.
func TestToggleAndDelete(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	var snap domain.Snapshot

	doJSON(t, s, http.MethodPost, "/api/editor", nil, nil)
	doJSON(t, s, http.MethodPost, "/api/editor/save", nil, &snap)

	id := snap.Alarms[0].ID

	doJSON(t, s, http.MethodPost, "/api/alarms/"+id+"/toggle", nil, &snap)
	require.False(t, snap.Alarms[0].Enabled)

	doJSON(t, s, http.MethodDelete, "/api/alarms/"+id, nil, &snap)
	require.Empty(t, snap.Alarms)

	// Unknown ids are silent no-ops.
	w := doJSON(t, s, http.MethodDelete, "/api/alarms/"+id, nil, &snap)
	require.Equal(t, http.StatusOK, w.Code)
}

// TestSetQuery_AllowsEmptyInput: setting the query performs no validation.
func TestSetQuery_AllowsEmptyInput(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	var snap domain.Snapshot

	w := doJSON(t, s, http.MethodPut, "/api/editor/query", map[string]any{"query": ""}, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, snap.Query)

	w = doJSON(t, s, http.MethodPut, "/api/editor/query", map[string]any{"query": "piano"}, &snap)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "piano", snap.Query)
}

// TestSelectCandidate_Validation rejects candidates without title or url.
func TestSelectCandidate_Validation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/editor", nil, nil)

	w := doJSON(t, s, http.MethodPost, "/api/editor/select", map[string]any{"title": "x"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/editor/select", map[string]any{"url": "https://youtu.be/x"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSaveAudio covers the upload contract: success, wrong type, missing fields.
func TestSaveAudio(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	doJSON(t, s, http.MethodPost, "/api/editor", nil, nil)

	payload := "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString([]byte("mp3-bytes"))
	body := map[string]any{"ownerId": "draft-1", "audioData": payload, "filename": "morning.mp3"}

	var reply struct {
		Success  bool   `json:"success"`
		FilePath string `json:"filePath"`
	}

	w := doJSON(t, s, http.MethodPost, "/api/audio/save", body, &reply)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, reply.Success)
	require.NotEmpty(t, reply.FilePath)

	// The open draft now references the stored file.
	var snap domain.Snapshot

	doJSON(t, s, http.MethodGet, "/api/state", nil, &snap)
	require.NotNil(t, snap.Draft.Audio)
	require.Equal(t, domain.SourceUploaded, snap.Draft.Audio.Kind)
	require.Equal(t, reply.FilePath, snap.Draft.Audio.Path)
	require.Equal(t, "morning", snap.Draft.SongTitle)
	require.Equal(t, domain.StatusReady, snap.Draft.ConversionStatus)

	// Wrong MIME type.
	body["audioData"] = "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))

	w = doJSON(t, s, http.MethodPost, "/api/audio/save", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing fields.
	w = doJSON(t, s, http.MethodPost, "/api/audio/save", map[string]any{"filename": "x.mp3"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSaveAudio_RequiresOpenDraft rejects uploads when no editor session is
// open, so the store never holds a file nothing references.
func TestSaveAudio_RequiresOpenDraft(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	payload := "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString([]byte("mp3-bytes"))
	body := map[string]any{"ownerId": "draft-1", "audioData": payload, "filename": "morning.mp3"}

	w := doJSON(t, s, http.MethodPost, "/api/audio/save", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var reply struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.False(t, reply.Success)
	require.NotEmpty(t, reply.Error)
}
