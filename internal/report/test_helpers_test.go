package report

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestBuild writes a minimal build record.
func createTestBuild(t *testing.T, s *Store, id string) Build {
	t.Helper()
	b := Build{ID: id, Name: "demo", Suppressed: true, Total: 6, Ran: 6}
	if err := s.WriteBuild(context.Background(), b); err != nil {
		t.Fatalf("WriteBuild() failed: %v", err)
	}
	return b
}
