package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsync.SyncRunService = (*SyncRunService)(nil)

// SyncRunService implements docsync.SyncRunService using SQLite.
type SyncRunService struct {
	db *DB
}

// NewSyncRunService creates a new SyncRunService.
func NewSyncRunService(db *DB) *SyncRunService {
	return &SyncRunService{db: db}
}

// CreateSyncRun records a run with a generated ID. A zero StartedAt is
// set to the current time.
func (s *SyncRunService) CreateSyncRun(ctx context.Context, run *docsync.SyncRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.StartedAt = run.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, docset_id, source_index, kind, url, status, content_id, files_count, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.DocsetID, run.SourceIndex, string(run.Kind), run.URL, string(run.Status),
		run.ContentID, run.FilesCount, run.Error, run.StartedAt.Format(time.RFC3339), run.Duration.Milliseconds())

	return err
}

// FindSyncRuns retrieves runs matching the filter, newest first.
func (s *SyncRunService) FindSyncRuns(ctx context.Context, filter docsync.SyncRunFilter) ([]*docsync.SyncRun, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, docset_id, source_index, kind, url, status, content_id, files_count, error, started_at, duration_ms
		FROM sync_runs WHERE 1=1`)

	if filter.DocsetID != nil {
		query.WriteString(" AND docset_id = ?")
		args = append(args, *filter.DocsetID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*docsync.SyncRun{}
	for rows.Next() {
		var (
			run        docsync.SyncRun
			kind       string
			status     string
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.DocsetID, &run.SourceIndex, &kind, &run.URL, &status,
			&run.ContentID, &run.FilesCount, &run.Error, &startedAt, &durationMS); err != nil {
			return nil, err
		}

		run.Kind = docsync.SourceKind(kind)
		run.Status = docsync.SyncStatus(status)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteSyncRuns removes all runs for a docset. Deleting a docset with no
// history is not an error.
func (s *SyncRunService) DeleteSyncRuns(ctx context.Context, docsetID string) error {
	if docsetID == "" {
		return docsync.Errorf(docsync.EINVALID, "docset ID required")
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM sync_runs WHERE docset_id = ?", docsetID)
	return err
}
