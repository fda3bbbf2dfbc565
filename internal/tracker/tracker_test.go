package tracker

import (
	"context"
	"crypto/sha256"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestOpen_CreatesSchemaOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")

	tr, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	// Reopening applies no pending migrations and keeps data readable.
	tr, err = Open(path)
	require.NoError(t, err)
	defer tr.Close()

	stats, err := tr.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.LoadsRecorded)
}

func TestRecordLoad_AndLatest(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	hash := sha256.Sum256([]byte("title one content"))
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", hash, at))

	rec, err := tr.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TitleNumber)
	assert.Equal(t, "113-21", rec.Release)
	assert.Equal(t, hash, rec.ContentHash)
	assert.True(t, rec.LoadedAt.Equal(at))
}

func TestRecordLoad_DuplicateIsNoOp(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	hash := sha256.Sum256([]byte("content"))
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", hash, first))
	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", hash, later))

	history, err := tr.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].LoadedAt.Equal(first))
}

func TestRecordLoad_NewReleaseAddsRow(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	oldHash := sha256.Sum256([]byte("old content"))
	newHash := sha256.Sum256([]byte("new content"))
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", oldHash, base))
	require.NoError(t, tr.RecordLoad(ctx, 1, "114-38", newHash, base.Add(time.Hour)))

	history, err := tr.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Newest first.
	assert.Equal(t, "114-38", history[0].Release)
	assert.Equal(t, "113-21", history[1].Release)

	rec, err := tr.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, newHash, rec.ContentHash)
}

func TestLatest_SubSecondOrdering(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 500_000_000, time.UTC)

	// Loads landing within the same second, as a warm-up loop produces.
	require.NoError(t, tr.RecordLoad(ctx, 1, "113-20", sha256.Sum256([]byte("old")), base))
	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", sha256.Sum256([]byte("new")), base.Add(20*time.Millisecond)))

	rec, err := tr.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "113-21", rec.Release)

	history, err := tr.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "113-21", history[0].Release)
	assert.Equal(t, "113-20", history[1].Release)

	stats, err := tr.GetStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.LastLoadAt.Equal(base.Add(20*time.Millisecond)))
}

func TestLatest_NotFound(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.Latest(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeen(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	hash := sha256.Sum256([]byte("content"))
	other := sha256.Sum256([]byte("different"))

	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", hash, time.Now()))

	seen, err := tr.Seen(ctx, 1, hash)
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = tr.Seen(ctx, 1, other)
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = tr.Seen(ctx, 2, hash)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestGetStats(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stats, err := tr.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TitlesTracked)
	assert.Equal(t, 0, stats.LoadsRecorded)
	assert.True(t, stats.LastLoadAt.IsZero())

	require.NoError(t, tr.RecordLoad(ctx, 1, "113-21", sha256.Sum256([]byte("a")), base))
	require.NoError(t, tr.RecordLoad(ctx, 1, "114-38", sha256.Sum256([]byte("b")), base.Add(time.Hour)))
	require.NoError(t, tr.RecordLoad(ctx, 5, "113-21", sha256.Sum256([]byte("c")), base.Add(2*time.Hour)))

	stats, err = tr.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TitlesTracked)
	assert.Equal(t, 3, stats.LoadsRecorded)
	assert.True(t, stats.LastLoadAt.Equal(base.Add(2*time.Hour)))
}

func TestParseTime(t *testing.T) {
	tests := []string{
		"2025-06-01 12:00:00.500000000",
		"2025-06-01T12:00:00Z",
		"2025-06-01T12:00:00.123456789Z",
		"2025-06-01 12:00:05",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := parseTime(s)
			assert.NoError(t, err)
		})
	}

	_, err := parseTime("not a time")
	assert.Error(t, err)
}
