package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoBuilds is returned by LatestBuild when the database is empty.
var ErrNoBuilds = errors.New("no builds recorded")

// ReadBuild returns the build with the given ID.
func (s *Store) ReadBuild(ctx context.Context, id string) (Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, suppressed, total, ran, failed
		FROM builds WHERE id = ?
	`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, fmt.Errorf("build %q not found", id)
	}
	return b, err
}

// LatestBuild returns the most recently written build.
func (s *Store) LatestBuild(ctx context.Context) (Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, suppressed, total, ran, failed
		FROM builds ORDER BY seq DESC LIMIT 1
	`)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ErrNoBuilds
	}
	return b, err
}

func scanBuild(row *sql.Row) (Build, error) {
	var b Build
	if err := row.Scan(&b.ID, &b.Name, &b.Suppressed, &b.Total, &b.Ran, &b.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Build{}, err
		}
		return Build{}, fmt.Errorf("read build: %w", err)
	}
	return b, nil
}

// ReadFailures returns the failures of a build in collection order.
func (s *Store) ReadFailures(ctx context.Context, buildID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, action, project, message, output, panic
		FROM failures
		WHERE build_id = ?
		ORDER BY seq ASC
	`, buildID)
	if err != nil {
		return nil, fmt.Errorf("read failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Seq, &f.Action, &f.Project, &f.Message, &f.Output, &f.Panic); err != nil {
			return nil, fmt.Errorf("read failures: scan: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read failures: %w", err)
	}
	return failures, nil
}
