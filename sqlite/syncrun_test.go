package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestSyncRunService_CreateSyncRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and round-trips fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))
		ctx := context.Background()
		started := time.Date(2025, 1, 8, 12, 30, 0, 0, time.UTC)

		run := &docsync.SyncRun{
			DocsetID:    "react",
			SourceIndex: 1,
			Kind:        docsync.KindGitRepo,
			URL:         "https://github.com/facebook/react",
			Status:      docsync.SyncUpdated,
			ContentID:   "abc123",
			FilesCount:  42,
			StartedAt:   started,
			Duration:    1500 * time.Millisecond,
		}
		require.NoError(t, svc.CreateSyncRun(ctx, run))
		assert.NotEmpty(t, run.ID)

		runs, err := svc.FindSyncRuns(ctx, docsync.SyncRunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run, runs[0])
	})

	t.Run("sets start time when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))
		run := &docsync.SyncRun{DocsetID: "react", Kind: docsync.KindArchive, Status: docsync.SyncFailed, Error: "HTTP 404"}

		require.NoError(t, svc.CreateSyncRun(context.Background(), run))

		assert.False(t, run.StartedAt.IsZero())
	})

	t.Run("rejects invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))

		err := svc.CreateSyncRun(context.Background(), &docsync.SyncRun{Status: "bogus"})

		require.Error(t, err)
		assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))
	})
}

func TestSyncRunService_FindSyncRuns(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.SyncRunService) {
		t.Helper()
		base := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
		runs := []*docsync.SyncRun{
			{DocsetID: "react", SourceIndex: 0, Kind: docsync.KindGitRepo, Status: docsync.SyncUpdated, StartedAt: base},
			{DocsetID: "react", SourceIndex: 1, Kind: docsync.KindArchive, Status: docsync.SyncFailed, StartedAt: base.Add(time.Minute)},
			{DocsetID: "vue", SourceIndex: 0, Kind: docsync.KindLocalFolder, Status: docsync.SyncLinked, StartedAt: base.Add(2 * time.Minute)},
			{DocsetID: "react", SourceIndex: 0, Kind: docsync.KindGitRepo, Status: docsync.SyncUnchanged, StartedAt: base.Add(3 * time.Minute)},
		}
		for _, r := range runs {
			require.NoError(t, svc.CreateSyncRun(context.Background(), r))
		}
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))
		seed(t, svc)

		runs, err := svc.FindSyncRuns(context.Background(), docsync.SyncRunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 4)
		assert.Equal(t, docsync.SyncUnchanged, runs[0].Status)
		assert.Equal(t, docsync.SyncUpdated, runs[3].Status)
	})

	t.Run("filters by docset and status", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))
		seed(t, svc)
		ctx := context.Background()

		runs, err := svc.FindSyncRuns(ctx, docsync.SyncRunFilter{DocsetID: ptr("react")})
		require.NoError(t, err)
		assert.Len(t, runs, 3)

		runs, err = svc.FindSyncRuns(ctx, docsync.SyncRunFilter{DocsetID: ptr("react"), Status: ptr(docsync.SyncFailed)})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, docsync.KindArchive, runs[0].Kind)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))
		seed(t, svc)

		runs, err := svc.FindSyncRuns(context.Background(), docsync.SyncRunFilter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, docsync.SyncLinked, runs[0].Status)
		assert.Equal(t, docsync.SyncFailed, runs[1].Status)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))

		runs, err := svc.FindSyncRuns(context.Background(), docsync.SyncRunFilter{DocsetID: ptr("missing")})

		require.NoError(t, err)
		assert.NotNil(t, runs)
		assert.Empty(t, runs)
	})
}

func TestSyncRunService_DeleteSyncRuns(t *testing.T) {
	t.Parallel()

	t.Run("removes only the docset's runs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))
		ctx := context.Background()
		for _, id := range []string{"react", "react", "vue"} {
			require.NoError(t, svc.CreateSyncRun(ctx, &docsync.SyncRun{DocsetID: id, Kind: docsync.KindGitRepo, Status: docsync.SyncUpdated}))
		}

		require.NoError(t, svc.DeleteSyncRuns(ctx, "react"))

		runs, err := svc.FindSyncRuns(ctx, docsync.SyncRunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "vue", runs[0].DocsetID)
	})

	t.Run("requires docset ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewSyncRunService(setupTestDB(t))

		err := svc.DeleteSyncRuns(context.Background(), "")

		assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))
	})
}
