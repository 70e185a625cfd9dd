package refresh

import (
	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
)

// Options controls Init and Refresh.
type Options struct {
	// Force clears an existing directory on Init and skips the
	// unchanged-content check on Refresh.
	Force bool
}

// SourceResult is the outcome for one configured source.
type SourceResult struct {
	Index  int
	Source docsync.Source
	Status docsync.SyncStatus
	Files  int

	// ContentID is the upstream identifier seen during this sync.
	ContentID string

	Warnings []string
	Err      error
}

// InitResult is the outcome of Coordinator.Init.
type InitResult struct {
	// Cleared describes the directory removed by a forced init, or nil.
	Cleared *docsync.DirectoryInfo

	Sources []SourceResult
}

// Failed returns the number of sources that failed.
func (r *InitResult) Failed() int {
	return countFailed(r.Sources)
}

// RefreshResult is the outcome of Coordinator.Refresh.
type RefreshResult struct {
	// NotInitialized is set when the docset has no metadata yet.
	NotInitialized bool

	Sources []SourceResult
}

// Failed returns the number of sources that failed.
func (r *RefreshResult) Failed() int {
	return countFailed(r.Sources)
}

func countFailed(sources []SourceResult) int {
	var n int
	for _, s := range sources {
		if s.Status == docsync.SyncFailed {
			n++
		}
	}
	return n
}

// SourceStatus describes the stored state of one source.
type SourceStatus struct {
	Index  int
	Source docsync.Source

	// Metadata is nil if the source was never loaded.
	Metadata *docsync.SourceMetadata

	// Drift is nil for local folders and sources never loaded.
	Drift *fs.Drift
}

// StatusReport is the outcome of Coordinator.Status.
type StatusReport struct {
	// Docset is nil when the docset is not initialized.
	Docset  *docsync.DocsetMetadata
	Sources []SourceStatus
}
