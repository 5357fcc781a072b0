package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key, err := store.Put(ctx, "m-1", "f-1", "call.txt", strings.NewReader("hello transcript"))
	require.NoError(t, err)
	assert.Equal(t, "transcripts/m-1/f-1.txt", key)

	reader, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello transcript", string(data))

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	assert.Error(t, err)
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "transcripts/m-1/never.txt"))
}

func TestTranscriptKey(t *testing.T) {
	assert.Equal(t, "transcripts/m-1/f-1.vtt", transcriptKey("m-1", "f-1", "Recording.VTT"))
	assert.Equal(t, "transcripts/m-1/f-1.srt", transcriptKey("m-1", "f-1", "captions.srt"))

	// Unknown extensions fall back to .txt so the served content type
	// stays predictable.
	assert.Equal(t, "transcripts/m-1/f-1.txt", transcriptKey("m-1", "f-1", "call.exe"))
	assert.Equal(t, "transcripts/m-1/f-1.txt", transcriptKey("m-1", "f-1", "noext"))
}

func TestContentTypeForKey(t *testing.T) {
	assert.Equal(t, "text/vtt", ContentTypeForKey("transcripts/m/f.vtt"))
	assert.Equal(t, "application/json", ContentTypeForKey("transcripts/m/f.json"))
	assert.Equal(t, "application/x-subrip", ContentTypeForKey("transcripts/m/f.srt"))
	assert.Equal(t, "text/plain", ContentTypeForKey("transcripts/m/f.txt"))
}
