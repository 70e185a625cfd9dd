package docsync

import (
	"context"
	"fmt"
	"time"
)

// Sidecar file names written inside a docset directory.
const (
	DocsetMetadataFile = ".agentic-metadata.json"
	BackupSuffix       = ".backup"
)

// SourceMetadataFile returns the sidecar file name for the source at index.
func SourceMetadataFile(index int) string {
	return fmt.Sprintf(".agentic-source-%d.json", index)
}

// SourceMetadata records what the last successful load of a source wrote.
// It is the durable record used for change detection and cleanup.
type SourceMetadata struct {
	URL        string     `json:"url"`
	Type       SourceKind `json:"type"`
	Branch     string     `json:"branch,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	FilesCount int        `json:"files_count"`
	Files      []string   `json:"files"`

	// ContentHash is LoadResult.ContentHash of the load that wrote Files.
	ContentHash string `json:"content_hash"`

	// ContentID is Loader.ContentID at the time of that load.
	ContentID string `json:"content_id,omitempty"`

	// Fingerprints maps each file to an xxhash of its content.
	Fingerprints map[string]string `json:"fingerprints,omitempty"`
}

// DocsetMetadata records the state of a whole docset directory.
type DocsetMetadata struct {
	DocsetID      string    `json:"docset_id"`
	DocsetName    string    `json:"docset_name"`
	InitializedAt time.Time `json:"initialized_at"`
	LastRefreshed time.Time `json:"last_refreshed"`
	SourcesCount  int       `json:"sources_count"`
	TotalFiles    int       `json:"total_files"`
}

// MetadataStore persists sidecar metadata beside synced content.
type MetadataStore interface {
	// FindSourceMetadata returns ENOTFOUND if the source was never loaded.
	FindSourceMetadata(ctx context.Context, dir string, index int) (*SourceMetadata, error)

	// SaveSourceMetadata replaces the sidecar atomically.
	SaveSourceMetadata(ctx context.Context, dir string, index int, m *SourceMetadata) error

	// FindDocsetMetadata returns ENOTFOUND if the docset is not initialized.
	FindDocsetMetadata(ctx context.Context, dir string) (*DocsetMetadata, error)

	// SaveDocsetMetadata replaces the sidecar atomically.
	SaveDocsetMetadata(ctx context.Context, dir string, m *DocsetMetadata) error

	// BackupDocsetMetadata copies the current docset sidecar aside.
	BackupDocsetMetadata(ctx context.Context, dir string) error

	// RestoreDocsetMetadata puts the backup back in place.
	RestoreDocsetMetadata(ctx context.Context, dir string) error

	// DiscardDocsetBackup deletes the backup.
	DiscardDocsetBackup(ctx context.Context, dir string) error
}
