package zerolog

import (
	"context"
	"time"

	"github.com/fwojciec/docsync"
	"github.com/rs/zerolog"
)

// Ensure LoggingLoader implements docsync.Loader.
var _ docsync.Loader = (*LoggingLoader)(nil)

// LoggingLoader wraps a Loader with logging of loads and content ID
// lookups.
type LoggingLoader struct {
	next   docsync.Loader
	logger zerolog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next docsync.Loader, logger zerolog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// CanHandle delegates to the wrapped loader.
func (l *LoggingLoader) CanHandle(kind docsync.SourceKind) bool {
	return l.next.CanHandle(kind)
}

// ValidateConfig delegates to the wrapped loader.
func (l *LoggingLoader) ValidateConfig(src *docsync.Source) error {
	return l.next.ValidateConfig(src)
}

// Load delegates to the wrapped loader and logs the outcome. Each warning
// is logged on its own line.
func (l *LoggingLoader) Load(ctx context.Context, src *docsync.Source, targetDir string) (res *docsync.LoadResult) {
	defer func(begin time.Time) {
		for _, w := range res.Warnings {
			l.logger.Warn().Str("url", src.URL).Msg(w)
		}
		ev := l.logger.Info()
		if res.Err != nil {
			ev = l.logger.Error().Err(res.Err)
		}
		ev.Str("kind", string(src.Kind)).
			Str("url", src.URL).
			Str("target", targetDir).
			Int("files", len(res.Files)).
			Int("warnings", len(res.Warnings)).
			Dur("duration", time.Since(begin)).
			Msg("load")
	}(time.Now())
	return l.next.Load(ctx, src, targetDir)
}

// ContentID delegates to the wrapped loader and logs the identifier.
func (l *LoggingLoader) ContentID(ctx context.Context, src *docsync.Source) (id string) {
	defer func(begin time.Time) {
		l.logger.Debug().
			Str("kind", string(src.Kind)).
			Str("url", src.URL).
			Str("content_id", id).
			Dur("duration", time.Since(begin)).
			Msg("content id")
	}(time.Now())
	return l.next.ContentID(ctx, src)
}
