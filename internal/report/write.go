package report

import (
	"context"
	"fmt"
)

// WriteBuild inserts or updates a build record.
func (s *Store) WriteBuild(ctx context.Context, b Build) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (id, name, suppressed, total, ran, failed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			suppressed = excluded.suppressed,
			total = excluded.total,
			ran = excluded.ran,
			failed = excluded.failed
	`, b.ID, b.Name, b.Suppressed, b.Total, b.Ran, b.Failed)
	if err != nil {
		return fmt.Errorf("write build: %w", err)
	}
	return nil
}

// WriteFailures stores errs for the build, numbering them from 1 in slice
// order. Writing the same failures twice is a no-op.
//
// The build must already exist (foreign key constraint).
func (s *Store) WriteFailures(ctx context.Context, buildID string, errs []error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write failures: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO failures (build_id, seq, action, project, message, output, panic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(build_id, seq) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write failures: prepare: %w", err)
	}
	defer stmt.Close()

	for i, e := range errs {
		f := FailureFromError(i+1, e)
		if _, err := stmt.ExecContext(ctx, buildID, f.Seq, f.Action, f.Project, f.Message, f.Output, f.Panic); err != nil {
			return fmt.Errorf("write failure %d: %w", f.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write failures: commit: %w", err)
	}
	return nil
}
