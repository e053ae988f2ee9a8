package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stages := []string{"census", "expand", "filter:pursuit-only"}
	for i, stage := range stages {
		_, err := s.Record(Run{
			Stage:     stage,
			Input:     "in.csv",
			Output:    "out.csv",
			Rows:      100 + i,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  250 * time.Millisecond,
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, "filter:pursuit-only", runs[0].Stage)
	assert.Equal(t, "census", runs[2].Stage)
	assert.Equal(t, 102, runs[0].Rows)
	assert.Equal(t, 250*time.Millisecond, runs[0].Duration)
	assert.NotEmpty(t, runs[0].ID)
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Record(Run{Stage: "expand", StartedAt: base.Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}

	runs, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	// Non-positive limits fall back to the default.
	runs, err = s.Recent(0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestLatestByStage(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.Record(Run{Stage: "expand", Rows: i, StartedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}
	_, err := s.Record(Run{Stage: "census", Rows: 10, StartedAt: base})
	require.NoError(t, err)

	latest, err := s.LatestByStage()
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 2, latest["expand"].Rows)
	assert.Equal(t, 10, latest["census"].Rows)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.Record(Run{Stage: "census"})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.Recent(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
