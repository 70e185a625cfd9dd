package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsync"
	"github.com/spf13/afero"
)

// Ensure MetadataStore implements docsync.MetadataStore at compile time.
var _ docsync.MetadataStore = (*MetadataStore)(nil)

// MetadataStore keeps JSON sidecars inside docset directories.
// Writes go to a temporary file that is renamed into place, so a sidecar
// is never observed half written.
type MetadataStore struct {
	fs afero.Fs
}

// NewMetadataStore creates a MetadataStore on the OS filesystem.
func NewMetadataStore() *MetadataStore {
	return NewMetadataStoreWithFS(afero.NewOsFs())
}

// NewMetadataStoreWithFS creates a MetadataStore on the given filesystem.
func NewMetadataStoreWithFS(fs afero.Fs) *MetadataStore {
	return &MetadataStore{fs: fs}
}

func (s *MetadataStore) FindSourceMetadata(ctx context.Context, dir string, index int) (*docsync.SourceMetadata, error) {
	var m docsync.SourceMetadata
	if err := s.read(filepath.Join(dir, docsync.SourceMetadataFile(index)), &m); err != nil {
		if os.IsNotExist(err) {
			return nil, docsync.Errorf(docsync.ENOTFOUND, "source %d has not been loaded", index)
		}
		return nil, err
	}
	return &m, nil
}

func (s *MetadataStore) SaveSourceMetadata(ctx context.Context, dir string, index int, m *docsync.SourceMetadata) error {
	return s.write(filepath.Join(dir, docsync.SourceMetadataFile(index)), m)
}

func (s *MetadataStore) FindDocsetMetadata(ctx context.Context, dir string) (*docsync.DocsetMetadata, error) {
	var m docsync.DocsetMetadata
	if err := s.read(filepath.Join(dir, docsync.DocsetMetadataFile), &m); err != nil {
		if os.IsNotExist(err) {
			return nil, docsync.Errorf(docsync.ENOTFOUND, "docset is not initialized")
		}
		return nil, err
	}
	return &m, nil
}

func (s *MetadataStore) SaveDocsetMetadata(ctx context.Context, dir string, m *docsync.DocsetMetadata) error {
	return s.write(filepath.Join(dir, docsync.DocsetMetadataFile), m)
}

// BackupDocsetMetadata copies the docset sidecar to its backup file.
// It does nothing when there is no sidecar yet.
func (s *MetadataStore) BackupDocsetMetadata(ctx context.Context, dir string) error {
	src := filepath.Join(dir, docsync.DocsetMetadataFile)
	data, err := afero.ReadFile(s.fs, src)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	return s.writeBytes(src+docsync.BackupSuffix, data)
}

// RestoreDocsetMetadata moves the backup over the docset sidecar.
func (s *MetadataStore) RestoreDocsetMetadata(ctx context.Context, dir string) error {
	dst := filepath.Join(dir, docsync.DocsetMetadataFile)
	src := dst + docsync.BackupSuffix
	if _, err := s.fs.Stat(src); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	return s.fs.Rename(src, dst)
}

func (s *MetadataStore) DiscardDocsetBackup(ctx context.Context, dir string) error {
	err := s.fs.Remove(filepath.Join(dir, docsync.DocsetMetadataFile+docsync.BackupSuffix))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *MetadataStore) read(p string, v any) error {
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return docsync.Errorf(docsync.EINVALID, "corrupt metadata file %s: %v", p, err)
	}
	return nil
}

func (s *MetadataStore) write(p string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.writeBytes(p, append(data, '\n'))
}

func (s *MetadataStore) writeBytes(p string, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}
