// Package archive implements docsync.Loader for zip and tar.gz archives
// fetched over HTTP(S) or read from a local path.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
)

// Ensure Loader implements docsync.Loader at compile time.
var _ docsync.Loader = (*Loader)(nil)

// Loader loads documentation from archive files.
type Loader struct {
	downloader     docsync.Downloader
	extractTimeout time.Duration
	tempDir        string
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtractTimeout bounds archive extraction.
// Defaults to docsync.DefaultExtractTimeout.
func WithExtractTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.extractTimeout = d
	}
}

// WithTempDir sets the parent directory for downloads and extraction.
func WithTempDir(dir string) Option {
	return func(l *Loader) {
		l.tempDir = dir
	}
}

// NewLoader creates a Loader that fetches remote archives with downloader.
func NewLoader(downloader docsync.Downloader, opts ...Option) *Loader {
	l := &Loader{
		downloader:     downloader,
		extractTimeout: docsync.DefaultExtractTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CanHandle reports whether kind is an archive.
func (l *Loader) CanHandle(kind docsync.SourceKind) bool {
	return kind == docsync.KindArchive
}

// ValidateConfig requires a non-empty locator.
func (l *Loader) ValidateConfig(src *docsync.Source) error {
	if strings.TrimSpace(src.URL) == "" {
		return docsync.Errorf(docsync.EINVALID, "archive URL or path required")
	}
	return nil
}

// ContentID hashes the ETag or Last-Modified of a remote archive, or the
// bytes of a local one. Any failure falls back to hashing the locator.
func (l *Loader) ContentID(ctx context.Context, src *docsync.Source) string {
	if isRemote(src.URL) {
		info, err := l.downloader.Head(ctx, src.URL)
		if err != nil {
			return fs.HashStrings(src.URL)
		}
		switch {
		case info.ETag != "":
			return fs.HashStrings(info.ETag)
		case info.LastModified != "":
			return fs.HashStrings(info.LastModified)
		default:
			return fs.HashStrings(src.URL)
		}
	}

	h, err := fs.HashFile(src.URL)
	if err != nil {
		return fs.HashStrings(src.URL)
	}
	return h
}

// Load resolves and extracts the archive into a temporary directory,
// flattens a single wrapper directory, then copies the selected or
// classified files into targetDir and hashes them.
func (l *Loader) Load(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
	format, err := DetectFormat(src.URL)
	if err != nil {
		return docsync.LoadFailed(err)
	}

	tmp, err := os.MkdirTemp(l.tempDir, "docsync-archive-*")
	if err != nil {
		return docsync.LoadFailed(fmt.Errorf("creating temp dir: %w", err))
	}
	defer os.RemoveAll(tmp)

	archivePath, err := l.resolve(ctx, src.URL, format, tmp)
	if err != nil {
		return docsync.LoadFailed(err)
	}

	extractDir := filepath.Join(tmp, "extract")
	if err := l.extract(ctx, format, archivePath, extractDir); err != nil {
		return docsync.LoadFailed(err)
	}

	if _, err := Flatten(extractDir); err != nil {
		return docsync.LoadFailed(docsync.Errorf(docsync.EEXTRACT, "flattening archive: %v", err))
	}

	x, err := fs.ExtractFiles(extractDir, targetDir, src.Paths)
	if err != nil {
		res := docsync.LoadFailed(fmt.Errorf("extracting files: %w", err))
		res.Files = x.Files
		return res
	}

	hash, warnings := fs.HashFiles(targetDir, x.Files)
	return &docsync.LoadResult{
		Success:     true,
		Files:       x.Files,
		ContentHash: hash,
		Warnings:    append(x.Warnings, warnings...),
	}
}

// resolve returns a local path to the archive, downloading it into tmp
// when the locator is remote.
func (l *Loader) resolve(ctx context.Context, locator string, format Format, tmp string) (string, error) {
	if !isRemote(locator) {
		fi, err := os.Stat(locator)
		if err != nil {
			return "", docsync.Errorf(docsync.EINVALID, "archive not found: %s", locator)
		}
		if fi.IsDir() {
			return "", docsync.Errorf(docsync.EINVALID, "archive path is a directory: %s", locator)
		}
		return locator, nil
	}

	p := filepath.Join(tmp, "archive."+string(format))
	f, err := os.Create(p)
	if err != nil {
		return "", err
	}
	if _, err := l.downloader.Download(ctx, locator, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return p, nil
}

func (l *Loader) extract(ctx context.Context, format Format, archivePath, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, l.extractTimeout)
	defer cancel()
	return Extract(ctx, format, archivePath, dest)
}

func isRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}
