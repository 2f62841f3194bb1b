package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 7, 14, 30, 5, 0, time.UTC)
}

func TestJournalFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	j, err := New(path, zap.NewNop())
	require.NoError(t, err)
	j.now = fixedNow

	j.Infof("scraped: %s", "https://example.org/a")
	j.Warnf("unrecognized sitemap shape")
	j.Errorf("fetch failed: %v", os.ErrDeadlineExceeded)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "2024-03-07 14:30:05 [INFO] scraped: https://example.org/a", lines[0])
	require.Equal(t, "2024-03-07 14:30:05 [WARN] unrecognized sitemap shape", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "2024-03-07 14:30:05 [ERROR] fetch failed:"), "got %q", lines[2])
}

func TestJournalAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	for i := 0; i < 2; i++ {
		j, err := New(path, nil)
		require.NoError(t, err)
		j.Infof("run %d", i)
		require.NoError(t, j.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "a new run appends rather than truncating")
}

func TestJournalListeners(t *testing.T) {
	j, err := New("", zap.NewNop())
	require.NoError(t, err)
	j.now = fixedNow

	var first, second []string
	j.AddListener(func(line string) { first = append(first, line) })
	j.AddListener(func(line string) { second = append(second, line) })
	j.AddListener(nil)

	j.Infof("hello")
	j.Errorf("boom")

	want := []string{
		"2024-03-07 14:30:05 [INFO] hello",
		"2024-03-07 14:30:05 [ERROR] boom",
	}
	require.Equal(t, want, first)
	require.Equal(t, want, second)
	require.NoError(t, j.Close())
}

func TestJournalWithoutFile(t *testing.T) {
	j, err := New("", zap.NewNop())
	require.NoError(t, err)
	j.Infof("no file configured")
	require.NoError(t, j.Close())
	require.NotEmpty(t, j.RunID())
}

func TestJournalConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	j, err := New(path, zap.NewNop())
	require.NoError(t, err)

	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 50; i++ {
				j.Infof("worker %d line %d", w, i)
			}
		}(w)
	}
	for w := 0; w < 8; w++ {
		<-done
	}
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 8*50)
	for _, line := range lines {
		require.Contains(t, line, "[INFO] worker", "lines must not interleave: %q", line)
	}
}
