package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cmomatt/referralpro/models"
	"github.com/cmomatt/referralpro/service"
	"github.com/cmomatt/referralpro/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeetingStore struct {
	mu   sync.Mutex
	byID map[string]*models.Meeting
}

func newFakeMeetingStore() *fakeMeetingStore {
	return &fakeMeetingStore{byID: make(map[string]*models.Meeting)}
}

func (s *fakeMeetingStore) List(ctx context.Context) ([]*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meetings := make([]*models.Meeting, 0, len(s.byID))
	for _, m := range s.byID {
		meetings = append(meetings, m)
	}
	return meetings, nil
}

func (s *fakeMeetingStore) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return meeting, nil
}

func (s *fakeMeetingStore) UpdateTranscript(ctx context.Context, id string, fileID string, transcript *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting, ok := s.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	meeting.TranscriptFileID = &fileID
	if transcript != nil {
		meeting.Transcript = transcript
	}
	return nil
}

func (s *fakeMeetingStore) UpdateSummary(ctx context.Context, id string, summary string, actionItems models.ActionItems) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting, ok := s.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	meeting.Summary = &summary
	meeting.ActionItems = actionItems
	return nil
}

type fakeJobStore struct {
	mu   sync.Mutex
	byID map[string]*models.SummaryJob
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{byID: make(map[string]*models.SummaryJob)}
}

func (s *fakeJobStore) Create(ctx context.Context, job *models.SummaryJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[job.ID] = job
	return nil
}

func (s *fakeJobStore) GetByID(ctx context.Context, id string) (*models.SummaryJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return job, nil
}

func (s *fakeJobStore) UpdateStatus(ctx context.Context, id string, status models.SummaryJobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.byID[id]; ok {
		job.Status = status
	}
	return nil
}

func (s *fakeJobStore) Complete(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, models.JobStatusCompleted)
}

func (s *fakeJobStore) Fail(ctx context.Context, id string, errorMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.byID[id]; ok {
		job.Status = models.JobStatusFailed
		job.ErrorMessage = &errorMessage
	}
	return nil
}

func setupMeetingRouter(t *testing.T, meetings *fakeMeetingStore) (*gin.Engine, storage.TranscriptStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	transcripts, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	summaries := service.NewSummaryService(
		service.SummaryWithMeetingStore(meetings),
		service.SummaryWithJobStore(newFakeJobStore()),
	)

	r := gin.New()
	h := NewMeetingHandler(meetings, transcripts, summaries)
	r.GET("/api/meetings", h.ListMeetings)
	r.POST("/api/meetings/:id/transcript", h.UploadTranscript)
	r.GET("/api/meetings/:id/transcript", h.DownloadTranscript)
	r.POST("/api/meetings/:id/summarize", h.SummarizeMeeting)
	r.GET("/api/jobs/:id", h.GetSummaryJob)
	return r, transcripts
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestUploadTranscript_RoundTrip(t *testing.T) {
	meetings := newFakeMeetingStore()
	meetings.byID["m-1"] = &models.Meeting{ID: "m-1", UserID: "u-1", ContactID: "c-1", Title: "Intro call"}
	r, _ := setupMeetingRouter(t, meetings)

	body, contentType := multipartBody(t, "call.txt", "hello transcript")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/meetings/m-1/transcript", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			MeetingID        string `json:"meetingId"`
			TranscriptFileID string `json:"transcriptFileId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "m-1", resp.Data.MeetingID)
	assert.NotEmpty(t, resp.Data.TranscriptFileID)

	// Small plain-text uploads are mirrored into the row.
	meeting := meetings.byID["m-1"]
	require.NotNil(t, meeting.Transcript)
	assert.Equal(t, "hello transcript", *meeting.Transcript)

	// Download serves the stored bytes back.
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/meetings/m-1/transcript", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello transcript", w.Body.String())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
}

func TestUploadTranscript_MeetingNotFound(t *testing.T) {
	r, _ := setupMeetingRouter(t, newFakeMeetingStore())

	body, contentType := multipartBody(t, "call.txt", "hi")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/meetings/missing/transcript", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadTranscript_RejectsUnknownExtension(t *testing.T) {
	meetings := newFakeMeetingStore()
	meetings.byID["m-1"] = &models.Meeting{ID: "m-1", Title: "Intro call"}
	r, _ := setupMeetingRouter(t, meetings)

	body, contentType := multipartBody(t, "call.exe", "nope")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/meetings/m-1/transcript", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Transcript type not allowed. Allowed types: TXT, VTT, JSON, SRT", resp.Error)
}

func TestDownloadTranscript_NoTranscript(t *testing.T) {
	meetings := newFakeMeetingStore()
	meetings.byID["m-1"] = &models.Meeting{ID: "m-1", Title: "Intro call"}
	r, _ := setupMeetingRouter(t, meetings)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/meetings/m-1/transcript", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Meeting has no transcript", resp.Error)
}

func TestSummarizeMeeting_NoTranscript(t *testing.T) {
	meetings := newFakeMeetingStore()
	meetings.byID["m-1"] = &models.Meeting{ID: "m-1", Title: "Intro call"}
	r, _ := setupMeetingRouter(t, meetings)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/meetings/m-1/summarize", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Meeting has no transcript to summarize", resp.Error)
}

func TestSummarizeMeeting_MeetingNotFound(t *testing.T) {
	r, _ := setupMeetingRouter(t, newFakeMeetingStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/meetings/missing/summarize", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSummaryJob_NotFound(t *testing.T) {
	r, _ := setupMeetingRouter(t, newFakeMeetingStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/jobs/missing", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
