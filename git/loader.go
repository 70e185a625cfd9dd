package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
)

// DefaultBranch is cloned when a source names no branch.
const DefaultBranch = "main"

// fallbackBranch is tried once when cloning DefaultBranch fails.
const fallbackBranch = "master"

// Ensure Loader implements docsync.Loader at compile time.
var _ docsync.Loader = (*Loader)(nil)

// Loader loads documentation from git repositories.
type Loader struct {
	remote       docsync.GitRemote
	cloneTimeout time.Duration
	tempDir      string
}

// Option configures a Loader.
type Option func(*Loader)

// WithCloneTimeout bounds each clone attempt.
// Defaults to docsync.DefaultCloneTimeout.
func WithCloneTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.cloneTimeout = d
	}
}

// WithTempDir sets the parent directory for ephemeral clones.
// Defaults to the system temp directory.
func WithTempDir(dir string) Option {
	return func(l *Loader) {
		l.tempDir = dir
	}
}

// NewLoader creates a Loader that fetches through remote.
func NewLoader(remote docsync.GitRemote, opts ...Option) *Loader {
	l := &Loader{
		remote:       remote,
		cloneTimeout: docsync.DefaultCloneTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CanHandle reports whether kind is a git repository.
func (l *Loader) CanHandle(kind docsync.SourceKind) bool {
	return kind == docsync.KindGitRepo
}

// ValidateConfig checks the repository URL.
func (l *Loader) ValidateConfig(src *docsync.Source) error {
	return ValidateURL(src.URL)
}

// ContentID identifies the current upstream revision together with the
// URL and path selector. When the remote cannot be reached the identifier
// is derived from the URL and selector alone.
func (l *Loader) ContentID(ctx context.Context, src *docsync.Source) string {
	selector := strings.Join(sortedPaths(src.Paths), ",")

	rev, err := l.remote.ResolveRef(ctx, src.URL, src.Branch, src.Token)
	if err != nil && src.Branch == DefaultBranch {
		rev, err = l.remote.ResolveRef(ctx, src.URL, fallbackBranch, src.Token)
	}
	if err != nil || rev == "" {
		return fs.HashStrings(src.URL, selector)
	}
	return fs.HashStrings(rev, src.URL, selector)
}

// Load clones the repository into a temporary directory, copies the
// selected or classified files into targetDir and hashes them. The clone
// is removed whatever the outcome.
func (l *Loader) Load(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
	tmp, err := os.MkdirTemp(l.tempDir, "docsync-git-*")
	if err != nil {
		return docsync.LoadFailed(fmt.Errorf("creating temp dir: %w", err))
	}
	defer os.RemoveAll(tmp)

	repoDir := filepath.Join(tmp, "repo")
	if err := l.clone(ctx, src, repoDir); err != nil {
		return docsync.LoadFailed(err)
	}

	x, err := fs.ExtractFiles(repoDir, targetDir, src.Paths)
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

// clone fetches the requested branch, falling back from main to master
// once. When both attempts fail the error of the first one is returned.
func (l *Loader) clone(ctx context.Context, src *docsync.Source, dir string) error {
	branch := src.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	err := l.cloneOnce(ctx, src, branch, dir)
	if err == nil {
		return nil
	}

	if branch == DefaultBranch && ctx.Err() == nil {
		if rmErr := os.RemoveAll(dir); rmErr == nil {
			if l.cloneOnce(ctx, src, fallbackBranch, dir) == nil {
				return nil
			}
		}
	}

	return &docsync.CloneError{
		URL:     src.URL,
		Branch:  branch,
		Command: cloneCommand(src.URL, branch),
		Err:     err,
	}
}

func (l *Loader) cloneOnce(ctx context.Context, src *docsync.Source, branch, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, l.cloneTimeout)
	defer cancel()
	return l.remote.Clone(ctx, src.URL, branch, dir, src.Token)
}

// cloneCommand describes a clone attempt in git CLI terms for error reports.
func cloneCommand(url, branch string) string {
	return fmt.Sprintf("git clone --depth 1 --single-branch --branch %s %s", branch, url)
}

func sortedPaths(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}
