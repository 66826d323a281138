package report

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/batchrun/internal/collector"
	"github.com/roach88/batchrun/internal/runner"
)

func TestOpenAppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.WriteBuild(context.Background(), Build{ID: "b1", Name: "demo"}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	b, err := s2.ReadBuild(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "demo", b.Name)
}

func TestWriteAndReadFailures(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	createTestBuild(t, s, "build-1")

	errs := []error{
		&runner.TargetError{Action: "lint", Project: "web", Output: "bad", Err: errors.New("exit status 1")},
		errors.New("plain failure"),
		&collector.PanicError{Value: "boom"},
	}
	require.NoError(t, s.WriteFailures(ctx, "build-1", errs))

	got, err := s.ReadFailures(ctx, "build-1")
	require.NoError(t, err)
	assert.Equal(t, []Failure{
		{Seq: 1, Action: "lint", Project: "web", Message: "exit status 1", Output: "bad"},
		{Seq: 2, Message: "plain failure"},
		{Seq: 3, Message: "action panicked: boom", Panic: true},
	}, got)
}

func TestWriteFailuresIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	createTestBuild(t, s, "build-1")

	errs := []error{errors.New("a"), errors.New("b")}
	require.NoError(t, s.WriteFailures(ctx, "build-1", errs))
	require.NoError(t, s.WriteFailures(ctx, "build-1", errs))

	got, err := s.ReadFailures(ctx, "build-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestWriteFailuresUnknownBuild(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteFailures(context.Background(), "missing", []error{errors.New("a")})
	require.Error(t, err, "foreign key must reject failures for unknown builds")
}

func TestReadFailuresEmpty(t *testing.T) {
	s := createTestStore(t)
	createTestBuild(t, s, "build-1")

	got, err := s.ReadFailures(context.Background(), "build-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFailureMessagesAreNFC(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	createTestBuild(t, s, "build-1")

	decomposed := "cafe\u0301" // e + combining acute accent
	require.NoError(t, s.WriteFailures(ctx, "build-1", []error{errors.New(decomposed)}))

	got, err := s.ReadFailures(ctx, "build-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "caf\u00e9", got[0].Message)
}

func TestLatestBuild(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.LatestBuild(ctx)
	require.ErrorIs(t, err, ErrNoBuilds)

	createTestBuild(t, s, "build-1")
	createTestBuild(t, s, "build-2")

	b, err := s.LatestBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, "build-2", b.ID)
}

func TestWriteBuildUpdates(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	b := createTestBuild(t, s, "build-1")

	b.Failed = 4
	require.NoError(t, s.WriteBuild(ctx, b))

	got, err := s.ReadBuild(ctx, "build-1")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	latest, err := s.LatestBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, "build-1", latest.ID)
}

func TestReadBuildNotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadBuild(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `build "nope" not found`)
}
