package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.MetadataStore = (*MetadataStore)(nil)

// MetadataStore is a mock implementation of docsync.MetadataStore.
type MetadataStore struct {
	FindSourceMetadataFn    func(ctx context.Context, dir string, index int) (*docsync.SourceMetadata, error)
	SaveSourceMetadataFn    func(ctx context.Context, dir string, index int, m *docsync.SourceMetadata) error
	FindDocsetMetadataFn    func(ctx context.Context, dir string) (*docsync.DocsetMetadata, error)
	SaveDocsetMetadataFn    func(ctx context.Context, dir string, m *docsync.DocsetMetadata) error
	BackupDocsetMetadataFn  func(ctx context.Context, dir string) error
	RestoreDocsetMetadataFn func(ctx context.Context, dir string) error
	DiscardDocsetBackupFn   func(ctx context.Context, dir string) error
}

func (s *MetadataStore) FindSourceMetadata(ctx context.Context, dir string, index int) (*docsync.SourceMetadata, error) {
	return s.FindSourceMetadataFn(ctx, dir, index)
}

func (s *MetadataStore) SaveSourceMetadata(ctx context.Context, dir string, index int, m *docsync.SourceMetadata) error {
	return s.SaveSourceMetadataFn(ctx, dir, index, m)
}

func (s *MetadataStore) FindDocsetMetadata(ctx context.Context, dir string) (*docsync.DocsetMetadata, error) {
	return s.FindDocsetMetadataFn(ctx, dir)
}

func (s *MetadataStore) SaveDocsetMetadata(ctx context.Context, dir string, m *docsync.DocsetMetadata) error {
	return s.SaveDocsetMetadataFn(ctx, dir, m)
}

func (s *MetadataStore) BackupDocsetMetadata(ctx context.Context, dir string) error {
	return s.BackupDocsetMetadataFn(ctx, dir)
}

func (s *MetadataStore) RestoreDocsetMetadata(ctx context.Context, dir string) error {
	return s.RestoreDocsetMetadataFn(ctx, dir)
}

func (s *MetadataStore) DiscardDocsetBackup(ctx context.Context, dir string) error {
	return s.DiscardDocsetBackupFn(ctx, dir)
}
