// Package site provides placeholder loaders for documentation websites and
// API reference sites. Both are recognised so configurations using them
// validate, but loading reports ENOTIMPLEMENTED.
package site

import (
	"context"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/fs"
)

var (
	_ docsync.Loader = (*DocumentationSiteLoader)(nil)
	_ docsync.Loader = (*APIDocumentationLoader)(nil)
)

// DocumentationSiteLoader handles documentation_site sources.
type DocumentationSiteLoader struct{}

// NewDocumentationSiteLoader creates a DocumentationSiteLoader.
func NewDocumentationSiteLoader() *DocumentationSiteLoader {
	return &DocumentationSiteLoader{}
}

func (l *DocumentationSiteLoader) CanHandle(kind docsync.SourceKind) bool {
	return kind == docsync.KindDocumentationSite
}

func (l *DocumentationSiteLoader) ValidateConfig(src *docsync.Source) error {
	return validate(src)
}

func (l *DocumentationSiteLoader) Load(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
	return notImplemented(src)
}

func (l *DocumentationSiteLoader) ContentID(ctx context.Context, src *docsync.Source) string {
	return fs.HashStrings(src.URL)
}

// APIDocumentationLoader handles api_documentation sources.
type APIDocumentationLoader struct{}

// NewAPIDocumentationLoader creates an APIDocumentationLoader.
func NewAPIDocumentationLoader() *APIDocumentationLoader {
	return &APIDocumentationLoader{}
}

func (l *APIDocumentationLoader) CanHandle(kind docsync.SourceKind) bool {
	return kind == docsync.KindAPIDocumentation
}

func (l *APIDocumentationLoader) ValidateConfig(src *docsync.Source) error {
	return validate(src)
}

func (l *APIDocumentationLoader) Load(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
	return notImplemented(src)
}

func (l *APIDocumentationLoader) ContentID(ctx context.Context, src *docsync.Source) string {
	return fs.HashStrings(src.URL)
}

func validate(src *docsync.Source) error {
	if src.URL == "" {
		return docsync.Errorf(docsync.EINVALID, "%s source URL required", src.Kind)
	}
	return nil
}

func notImplemented(src *docsync.Source) *docsync.LoadResult {
	return docsync.LoadFailed(docsync.Errorf(docsync.ENOTIMPLEMENTED, "%s sources are not supported yet: %s", src.Kind, src.URL))
}
