package http

import (
	"errors"
	"net/http"

	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/uploader"
)

// HealthCheck reports liveness.
func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetState returns the current store snapshot.
func (s *Server) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.Snapshot(c.Request.Context()))
}

// BeginCreate opens an editor session with a fresh draft.
func (s *Server) BeginCreate(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.BeginCreate(c.Request.Context()))
}

// BeginEdit opens an editor session on the alarm with the given id.
func (s *Server) BeginEdit(c *gin.Context) {
	ctx := c.Request.Context()

	a, ok := s.editor.Lookup(ctx, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "alarm not found"})

		return
	}

	c.JSON(http.StatusOK, s.editor.BeginEdit(ctx, a))
}

// CancelEdit discards the editor session.
func (s *Server) CancelEdit(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.CancelEdit(c.Request.Context()))
}

// UpdateDraft shallow-merges the request patch into the open draft.
func (s *Server) UpdateDraft(c *gin.Context) {
	var patch domain.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := validateDraftPatch(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, s.editor.UpdateDraft(c.Request.Context(), &patch))
}

// SaveDraft commits the open draft to the schedule.
func (s *Server) SaveDraft(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.Save(c.Request.Context()))
}

// DeleteAlarm removes an alarm and cleans up its uploaded audio, if any.
func (s *Server) DeleteAlarm(c *gin.Context) {
	ctx := c.Request.Context()

	removed, snap := s.editor.DeleteAlarm(ctx, c.Param("id"))
	if removed != nil {
		if err := s.uploader.Discard(ctx, removed.Audio); err != nil {
			// The alarm is already gone; an orphaned file is only worth a warning.
			logger.Warnf(ctx, "Failed to discard uploaded audio: %v", err)
		}
	}

	c.JSON(http.StatusOK, snap)
}

// ToggleAlarm flips the enabled flag of an alarm.
func (s *Server) ToggleAlarm(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.ToggleAlarm(c.Request.Context(), c.Param("id")))
}

// SetQuery replaces the search/URL input.
func (s *Server) SetQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, s.editor.SetQuery(c.Request.Context(), req.Query))
}

// ResolveFromURL starts the URL-based audio conversion.
func (s *Server) ResolveFromURL(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.ResolveFromURL(c.Request.Context()))
}

// Search starts an asynchronous catalog search for the current query.
func (s *Server) Search(c *gin.Context) {
	c.JSON(http.StatusOK, s.editor.Search(c.Request.Context()))
}

// SelectCandidate attaches a picked search result to the draft.
func (s *Server) SelectCandidate(c *gin.Context) {
	var req selectRequest
	if err := selectRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})

		return
	}

	c.JSON(http.StatusOK, s.editor.SelectCandidate(c.Request.Context(), req.toCandidate()))
}

// SaveAudio is the upload endpoint: it stores the base64 audio payload and
// attaches the stored file to the open draft.
func (s *Server) SaveAudio(c *gin.Context) {
	var req uploadRequest
	if err := uploadRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err})

		return
	}

	path, err := s.uploader.SaveUpload(c.Request.Context(), req.OwnerID, req.Filename, req.AudioData)

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "filePath": path})
	case errors.Is(err, uploader.ErrNotAudio),
		errors.Is(err, uploader.ErrTooLarge),
		errors.Is(err, uploader.ErrBadPayload),
		errors.Is(err, uploader.ErrNoDraft):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		logger.Errorf(c.Request.Context(), "Failed to store uploaded audio: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "unable to store audio"})
	}
}
