package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cmomatt/referralpro/models"
	"github.com/cmomatt/referralpro/service"
	"github.com/cmomatt/referralpro/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MeetingStore is the slice of meeting persistence the handler needs
type MeetingStore interface {
	List(ctx context.Context) ([]*models.Meeting, error)
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	UpdateTranscript(ctx context.Context, id string, fileID string, transcript *string) error
}

const (
	maxTranscriptSize = 20 * 1024 * 1024 // 20MB upload cap
	inlineLimit       = 1 * 1024 * 1024  // plain text below this is mirrored into the row
)

// MeetingHandler handles HTTP requests for meetings, their transcripts, and
// summary jobs
type MeetingHandler struct {
	meetings    MeetingStore
	transcripts storage.TranscriptStore
	summaries   *service.SummaryService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetings MeetingStore, transcripts storage.TranscriptStore, summaries *service.SummaryService) *MeetingHandler {
	return &MeetingHandler{
		meetings:    meetings,
		transcripts: transcripts,
		summaries:   summaries,
	}
}

// ListMeetings handles GET /api/meetings
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	meetings, err := h.meetings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	data := make([]gin.H, 0, len(meetings))
	for _, meeting := range meetings {
		data = append(data, gin.H{
			"id":          meeting.ID,
			"userId":      meeting.UserID,
			"contactId":   meeting.ContactID,
			"title":       meeting.Title,
			"description": meeting.Description,
			"datetime":    meeting.Datetime,
			"duration":    meeting.Duration,
			"status":      meeting.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// UploadTranscript handles POST /api/meetings/:id/transcript
func (h *MeetingHandler) UploadTranscript(c *gin.Context) {
	meetingID := c.Param("id")

	meeting, err := h.meetings.GetByID(c.Request.Context(), meetingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meeting"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required field: file",
		})
		return
	}

	if fileHeader.Size > maxTranscriptSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Transcript exceeds the 20MB upload limit",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".txt", ".vtt", ".json", ".srt":
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Transcript type not allowed. Allowed types: TXT, VTT, JSON, SRT",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	defer file.Close()

	fileID := uuid.NewString()

	// Small plain-text transcripts are mirrored into the row so the
	// summarizer and list views can use them without a storage round trip.
	var inline *string
	var reader io.Reader = file
	if fileHeader.Size <= inlineLimit && (ext == ".txt" || ext == ".vtt") {
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   readErr.Error(),
			})
			return
		}
		text := string(data)
		inline = &text
		reader = strings.NewReader(text)
	}

	key, err := h.transcripts.Put(c.Request.Context(), meetingID, fileID, fileHeader.Filename, reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := h.meetings.UpdateTranscript(c.Request.Context(), meetingID, key, inline); err != nil {
		// The row is the source of truth; drop the orphaned object.
		h.transcripts.Delete(c.Request.Context(), key)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"meetingId":        meeting.ID,
			"transcriptFileId": key,
			"size":             fileHeader.Size,
		},
		"message": "Transcript uploaded successfully",
	})
}

// DownloadTranscript handles GET /api/meetings/:id/transcript
func (h *MeetingHandler) DownloadTranscript(c *gin.Context) {
	meeting, err := h.meetings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meeting"})
		return
	}

	if meeting.TranscriptFileID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting has no transcript"})
		return
	}

	key := *meeting.TranscriptFileID
	reader, err := h.transcripts.Get(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, storage.ContentTypeForKey(key), reader, nil)
}

// SummarizeMeeting handles POST /api/meetings/:id/summarize
func (h *MeetingHandler) SummarizeMeeting(c *gin.Context) {
	job, err := h.summaries.StartSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeetingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		case errors.Is(err, service.ErrNoTranscript):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Meeting has no transcript to summarize",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   err.Error(),
			})
		}
		return
	}

	// The job outlives the request; detach it from the request context.
	go func(jobID string) {
		if err := h.summaries.Process(context.Background(), jobID); err != nil {
			slog.Error("summary job failed", "job_id", jobID, "error", err)
		}
	}(job.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"jobId": job.ID, "status": job.Status},
		"message": "Summary job started",
	})
}

// GetSummaryJob handles GET /api/jobs/:id
func (h *MeetingHandler) GetSummaryJob(c *gin.Context) {
	job, err := h.summaries.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}
