package docsync

import (
	"context"
	"io"
	"time"
)

// SourceKind identifies the type of a configured source.
type SourceKind string

// SourceKind constants.
const (
	KindGitRepo           SourceKind = "git_repo"
	KindArchive           SourceKind = "archive"
	KindLocalFolder       SourceKind = "local_folder"
	KindDocumentationSite SourceKind = "documentation_site"
	KindAPIDocumentation  SourceKind = "api_documentation"
)

// Validate returns an error if the kind is not one of the known kinds.
func (k SourceKind) Validate() error {
	switch k {
	case KindGitRepo, KindArchive, KindLocalFolder, KindDocumentationSite, KindAPIDocumentation:
		return nil
	case "":
		return Errorf(EINVALID, "source type required")
	default:
		return Errorf(EINVALID, "unsupported source type %q", string(k))
	}
}

// Source describes one configured origin of docset content.
// Sources are constructed by the caller and never modified by loaders.
type Source struct {
	Kind SourceKind `json:"type"`

	// URL is the repository URL, archive URL or archive path.
	URL string `json:"url,omitempty"`

	// Paths is the explicit path selector. When set, exactly these files
	// and directories are copied and the classifier is bypassed. For
	// local_folder sources it lists the folders to link.
	Paths []string `json:"paths,omitempty"`

	Branch string `json:"branch,omitempty"`

	// Token authenticates against private remotes. Never persisted.
	Token string `json:"-"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if err := s.Kind.Validate(); err != nil {
		return err
	}
	if s.Kind == KindLocalFolder {
		if len(s.Paths) == 0 {
			return Errorf(EINVALID, "local folder source requires at least one path")
		}
		return nil
	}
	if s.URL == "" {
		return Errorf(EINVALID, "%s source URL required", s.Kind)
	}
	return nil
}

// LoadResult holds the outcome of a single Loader.Load call.
type LoadResult struct {
	Success bool

	// Files lists copied paths relative to the target directory,
	// slash-separated, in copy order. A failed load may still list files
	// it left behind; the caller removes them.
	Files []string

	// ContentHash is the hex SHA-256 over the sorted copied files.
	ContentHash string

	// Warnings collects per-file problems that did not abort the load.
	Warnings []string

	Err error
}

// LoadFailed returns an unsuccessful result wrapping err.
func LoadFailed(err error) *LoadResult {
	return &LoadResult{Files: []string{}, Err: err}
}

// Loader fetches one kind of source into a target directory.
type Loader interface {
	// CanHandle reports whether the loader serves the given kind.
	CanHandle(kind SourceKind) bool

	// ValidateConfig returns an EINVALID error describing why the source
	// cannot be loaded, or nil.
	ValidateConfig(src *Source) error

	// Load fetches the source and writes its filtered files to targetDir.
	// Failures are reported through LoadResult.Err, never by panicking.
	Load(ctx context.Context, src *Source, targetDir string) *LoadResult

	// ContentID returns a deterministic identifier of the upstream content.
	// It degrades to a locator-derived identifier rather than failing.
	ContentID(ctx context.Context, src *Source) string
}

// GitRemote performs network operations against git repositories.
type GitRemote interface {
	// Clone makes a depth-1 clone of branch into dir.
	// An empty branch clones the remote HEAD.
	Clone(ctx context.Context, url, branch, dir, token string) error

	// ResolveRef returns the revision the remote advertises for branch.
	// An empty branch resolves HEAD.
	ResolveRef(ctx context.Context, url, branch, token string) (string, error)
}

// RemoteInfo holds the validators a server returns for a resource.
type RemoteInfo struct {
	ETag         string
	LastModified string
}

// Downloader retrieves remote archives.
type Downloader interface {
	// Download streams the resource at url into w.
	Download(ctx context.Context, url string, w io.Writer) (int64, error)

	// Head returns the resource validators without fetching the body.
	Head(ctx context.Context, url string) (*RemoteInfo, error)
}

// DirectoryInfo is a one-level census of a directory.
type DirectoryInfo struct {
	Files       int `json:"files"`
	Directories int `json:"directories"`
	Symlinks    int `json:"symlinks"`
	Total       int `json:"total"`
}

// Docset is a named collection of sources synced into one directory.
type Docset struct {
	ID      string
	Name    string
	Sources []Source

	// Dir is the target directory, usually <configRoot>/docsets/<ID>.
	Dir string

	// ProjectRoot resolves relative local folder paths.
	ProjectRoot string
}

// Validate returns an error if the docset contains invalid fields.
func (d *Docset) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "docset id required")
	}
	if d.Dir == "" {
		return Errorf(EINVALID, "docset %q target directory required", d.ID)
	}
	if len(d.Sources) == 0 {
		return Errorf(EINVALID, "docset %q has no sources", d.ID)
	}
	return nil
}

// DefaultCloneTimeout bounds a single clone.
const DefaultCloneTimeout = 5 * time.Minute

// DefaultExtractTimeout bounds a single archive extraction.
const DefaultExtractTimeout = 2 * time.Minute
