package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// TranscriptStore holds raw meeting transcripts outside the relational
// store. Put returns the key under which the object was stored; keys are
// opaque to callers.
type TranscriptStore interface {
	// Put stores a transcript object and returns its storage key
	Put(ctx context.Context, meetingID, fileID, filename string, data io.Reader) (string, error)

	// Get retrieves a transcript object by storage key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a transcript object by storage key
	Delete(ctx context.Context, key string) error
}

// BackendType represents the storage backend type
type BackendType string

const (
	BackendLocal BackendType = "local"
	BackendS3    BackendType = "s3"
)

// Config holds configuration for the transcript store
type Config struct {
	Type         BackendType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a transcript store for the configured backend
func New(cfg Config) (TranscriptStore, error) {
	switch cfg.Type {
	case BackendLocal:
		return NewLocalStore(cfg.LocalPath)
	case BackendS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewFromEnv creates a transcript store from environment variables
func NewFromEnv() (TranscriptStore, error) {
	backend := os.Getenv("STORAGE_TYPE")
	if backend == "" {
		backend = "local" // Default to local for development
	}

	cfg := Config{Type: BackendType(backend)}

	switch cfg.Type {
	case BackendLocal:
		cfg.LocalPath = os.Getenv("STORAGE_LOCAL_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./storage/transcripts"
		}
		return NewLocalStore(cfg.LocalPath)

	case BackendS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}

		return NewS3Store(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", backend)
	}
}

// transcriptKey builds the storage key for an uploaded transcript. The
// original filename contributes only its extension; the key itself is
// derived from the meeting and file ids so uploads never collide.
func transcriptKey(meetingID, fileID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".txt", ".vtt", ".json", ".srt":
	default:
		ext = ".txt"
	}
	return fmt.Sprintf("transcripts/%s/%s%s", meetingID, fileID, ext)
}

// ContentTypeForKey maps a storage key to the content type served back
func ContentTypeForKey(key string) string {
	switch path.Ext(key) {
	case ".vtt":
		return "text/vtt"
	case ".json":
		return "application/json"
	case ".srt":
		return "application/x-subrip"
	default:
		return "text/plain"
	}
}
