package docsync

import (
	"context"
	"time"
)

// SyncStatus is the outcome of syncing one source.
type SyncStatus string

// SyncStatus constants.
const (
	SyncUpdated   SyncStatus = "updated"
	SyncUnchanged SyncStatus = "unchanged"
	SyncLinked    SyncStatus = "linked"
	SyncFailed    SyncStatus = "failed"
)

// SyncRun records one source sync attempt.
type SyncRun struct {
	ID          string        `json:"id"`
	DocsetID    string        `json:"docsetId"`
	SourceIndex int           `json:"sourceIndex"`
	Kind        SourceKind    `json:"kind"`
	URL         string        `json:"url"`
	Status      SyncStatus    `json:"status"`
	ContentID   string        `json:"contentId"`
	FilesCount  int           `json:"filesCount"`
	Error       string        `json:"error"`
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
}

// Validate returns an error if the run contains invalid fields.
func (r *SyncRun) Validate() error {
	if r.DocsetID == "" {
		return Errorf(EINVALID, "sync run docset ID required")
	}
	switch r.Status {
	case SyncUpdated, SyncUnchanged, SyncLinked, SyncFailed:
	default:
		return Errorf(EINVALID, "invalid sync run status %q", string(r.Status))
	}
	return nil
}

// SyncRunService represents a service for recording sync history.
type SyncRunService interface {
	// CreateSyncRun records a new run and assigns its ID.
	CreateSyncRun(ctx context.Context, run *SyncRun) error

	// FindSyncRuns retrieves runs matching the filter, newest first.
	FindSyncRuns(ctx context.Context, filter SyncRunFilter) ([]*SyncRun, error)

	// DeleteSyncRuns removes all runs for a docset.
	DeleteSyncRuns(ctx context.Context, docsetID string) error
}

// SyncRunFilter represents a filter for FindSyncRuns.
type SyncRunFilter struct {
	DocsetID *string     `json:"docsetId"`
	Status   *SyncStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
