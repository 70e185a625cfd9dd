package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.SyncRunService = (*SyncRunService)(nil)

// SyncRunService is a mock implementation of docsync.SyncRunService.
type SyncRunService struct {
	CreateSyncRunFn  func(ctx context.Context, run *docsync.SyncRun) error
	FindSyncRunsFn   func(ctx context.Context, filter docsync.SyncRunFilter) ([]*docsync.SyncRun, error)
	DeleteSyncRunsFn func(ctx context.Context, docsetID string) error
}

func (s *SyncRunService) CreateSyncRun(ctx context.Context, run *docsync.SyncRun) error {
	return s.CreateSyncRunFn(ctx, run)
}

func (s *SyncRunService) FindSyncRuns(ctx context.Context, filter docsync.SyncRunFilter) ([]*docsync.SyncRun, error) {
	return s.FindSyncRunsFn(ctx, filter)
}

func (s *SyncRunService) DeleteSyncRuns(ctx context.Context, docsetID string) error {
	return s.DeleteSyncRunsFn(ctx, docsetID)
}
