package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cmomatt/referralpro/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

// MeetingStore is the slice of meeting persistence the summarizer needs
type MeetingStore interface {
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	UpdateSummary(ctx context.Context, id string, summary string, actionItems models.ActionItems) error
}

// SummaryJobStore persists summary jobs
type SummaryJobStore interface {
	Create(ctx context.Context, job *models.SummaryJob) error
	GetByID(ctx context.Context, id string) (*models.SummaryJob, error)
	UpdateStatus(ctx context.Context, id string, status models.SummaryJobStatus) error
	Complete(ctx context.Context, id string) error
	Fail(ctx context.Context, id string, errorMessage string) error
}

var (
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrNoTranscript      = errors.New("meeting has no transcript to summarize")
	ErrJobCreationFailed = errors.New("failed to create summary job")
	ErrJobNotFound       = errors.New("summary job not found")
	ErrSummaryFailed     = errors.New("failed to generate summary")
)

const (
	defaultGenerationURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-preview:generateContent"
	maxRetries           = 3
	initialBackoff       = time.Second
)

// SummaryService turns meeting transcripts into summaries and action items
// through the Gemini generation API
type SummaryService struct {
	meetings      MeetingStore
	jobs          SummaryJobStore
	geminiClient  *genai.Client
	generationURL string
	httpClient    *http.Client
}

// SummaryServiceOption is a functional option for SummaryService
type SummaryServiceOption func(*SummaryService)

// SummaryWithMeetingStore sets the meeting store
func SummaryWithMeetingStore(s MeetingStore) SummaryServiceOption {
	return func(svc *SummaryService) {
		svc.meetings = s
	}
}

// SummaryWithJobStore sets the summary job store
func SummaryWithJobStore(s SummaryJobStore) SummaryServiceOption {
	return func(svc *SummaryService) {
		svc.jobs = s
	}
}

// SummaryWithGeminiClient sets the Gemini client
func SummaryWithGeminiClient(client *genai.Client) SummaryServiceOption {
	return func(svc *SummaryService) {
		svc.geminiClient = client
	}
}

// SummaryWithGenerationURL overrides the generation API endpoint
func SummaryWithGenerationURL(url string) SummaryServiceOption {
	return func(svc *SummaryService) {
		svc.generationURL = url
	}
}

// NewSummaryService creates a new summary service
func NewSummaryService(opts ...SummaryServiceOption) *SummaryService {
	svc := &SummaryService{
		generationURL: defaultGenerationURL,
		httpClient:    &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// StartSummary validates the meeting and records a pending job. The caller
// is expected to run Process in a goroutine; this method itself stays fast.
func (s *SummaryService) StartSummary(ctx context.Context, meetingID string) (*models.SummaryJob, error) {
	if s.meetings == nil || s.jobs == nil {
		return nil, errors.New("summary service stores not set")
	}

	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, ErrMeetingNotFound
	}

	if meeting.Transcript == nil || strings.TrimSpace(*meeting.Transcript) == "" {
		return nil, ErrNoTranscript
	}

	job := &models.SummaryJob{
		ID:        uuid.NewString(),
		MeetingID: meetingID,
		Status:    models.JobStatusPending,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, ErrJobCreationFailed
	}

	return job, nil
}

// GetJob retrieves a summary job by id
func (s *SummaryService) GetJob(ctx context.Context, jobID string) (*models.SummaryJob, error) {
	if s.jobs == nil {
		return nil, errors.New("summary service stores not set")
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	return job, nil
}

// Process performs the generation work for a job. It runs in a goroutine
// kicked off by the handler and records its outcome on the job row.
func (s *SummaryService) Process(ctx context.Context, jobID string) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load summary job: %w", err)
	}

	meeting, err := s.meetings.GetByID(ctx, job.MeetingID)
	if err != nil {
		s.jobs.Fail(ctx, jobID, "meeting no longer exists")
		return ErrMeetingNotFound
	}
	if meeting.Transcript == nil {
		s.jobs.Fail(ctx, jobID, "meeting transcript was removed")
		return ErrNoTranscript
	}

	if err := s.jobs.UpdateStatus(ctx, jobID, models.JobStatusInProgress); err != nil {
		return err
	}

	summary, actionItems, err := s.summarize(ctx, meeting.Title, *meeting.Transcript)
	if err != nil {
		s.jobs.Fail(ctx, jobID, err.Error())
		return err
	}

	if err := s.meetings.UpdateSummary(ctx, job.MeetingID, summary, actionItems); err != nil {
		s.jobs.Fail(ctx, jobID, err.Error())
		return err
	}

	return s.jobs.Complete(ctx, jobID)
}

// summaryPrompt asks for strict JSON so the response can be parsed without
// scraping prose.
const summaryPrompt = `You are an assistant that summarizes business meetings for a referral-management CRM.

MEETING TITLE:
%s

TRANSCRIPT:
%s

TASK:
Produce a concise summary of the meeting and a list of concrete action items.

OUTPUT REQUIREMENTS:
- Respond with a single JSON object and nothing else
- Shape: {"summary": "...", "action_items": ["...", "..."]}
- The summary is 2-4 sentences, factual, no marketing language
- Each action item is a single imperative sentence naming who does what
- Use only facts present in the transcript; do not invent names or dates`

func (s *SummaryService) summarize(ctx context.Context, title, transcript string) (string, models.ActionItems, error) {
	if s.geminiClient == nil {
		return "", nil, errors.New("gemini client not set")
	}

	// Transcripts can exceed the model context; truncate rather than fail.
	if len(transcript) > 30000 {
		slog.Warn("transcript too long, truncating", "chars", len(transcript))
		transcript = transcript[:30000] + "\n\n[Transcript truncated due to length...]"
	}

	prompt := fmt.Sprintf(summaryPrompt, title, transcript)

	var text string
	var err error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		text, err = s.callGenerationAPI(ctx, prompt, 0.2)
		if err == nil {
			break
		}
		slog.Warn("generation attempt failed", "attempt", attempt+1, "error", err)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	return parseSummaryResponse(text)
}

// callGenerationAPI calls the Gemini generation API directly via HTTP
func (s *SummaryService) callGenerationAPI(ctx context.Context, prompt string, temperature float64) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.generationURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason,omitempty"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason,omitempty"`
		} `json:"promptFeedback,omitempty"`
		Error struct {
			Code    int    `json:"code,omitempty"`
			Message string `json:"message,omitempty"`
		} `json:"error,omitempty"`
	}

	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error.Message != "" {
		return "", fmt.Errorf("API error: %s (code: %d)", apiResp.Error.Message, apiResp.Error.Code)
	}
	if apiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("API blocked prompt: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("API returned no candidates")
	}

	var responseText strings.Builder
	for _, candidate := range apiResp.Candidates {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			slog.Warn("candidate finished abnormally", "reason", candidate.FinishReason)
		}
		for _, part := range candidate.Content.Parts {
			responseText.WriteString(part.Text)
		}
	}

	if responseText.Len() == 0 {
		return "", fmt.Errorf("API candidates contained no text")
	}

	return responseText.String(), nil
}

// parseSummaryResponse extracts the JSON payload from the model output.
// Models sometimes wrap JSON in a markdown code fence despite instructions.
func parseSummaryResponse(text string) (string, models.ActionItems, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var payload struct {
		Summary     string   `json:"summary"`
		ActionItems []string `json:"action_items"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return "", nil, fmt.Errorf("%w: unparseable model output: %v", ErrSummaryFailed, err)
	}
	if payload.Summary == "" {
		return "", nil, fmt.Errorf("%w: model output missing summary", ErrSummaryFailed)
	}

	return payload.Summary, models.ActionItems(payload.ActionItems), nil
}
