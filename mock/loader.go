package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.Loader = (*Loader)(nil)

// Loader is a mock implementation of docsync.Loader.
type Loader struct {
	CanHandleFn      func(kind docsync.SourceKind) bool
	ValidateConfigFn func(src *docsync.Source) error
	LoadFn           func(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult
	ContentIDFn      func(ctx context.Context, src *docsync.Source) string
}

func (l *Loader) CanHandle(kind docsync.SourceKind) bool {
	return l.CanHandleFn(kind)
}

func (l *Loader) ValidateConfig(src *docsync.Source) error {
	return l.ValidateConfigFn(src)
}

func (l *Loader) Load(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
	return l.LoadFn(ctx, src, targetDir)
}

func (l *Loader) ContentID(ctx context.Context, src *docsync.Source) string {
	return l.ContentIDFn(ctx, src)
}
