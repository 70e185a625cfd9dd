package zerolog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/mock"
	dszerolog "github.com/fwojciec/docsync/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingLoader_Load(t *testing.T) {
	t.Parallel()

	src := &docsync.Source{Kind: docsync.KindGitRepo, URL: "https://github.com/example/repo"}

	t.Run("logs files, warnings and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Loader{
			LoadFn: func(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
				return &docsync.LoadResult{
					Success:  true,
					Files:    []string{"README.md", "docs/a.md"},
					Warnings: []string{"path not found: missing/"},
				}
			},
		}

		loader := dszerolog.NewLoggingLoader(inner, zerolog.New(&buf))
		res := loader.Load(context.Background(), src, "/tmp/target")

		require.True(t, res.Success)
		output := buf.String()
		assert.Contains(t, output, `"message":"load"`)
		assert.Contains(t, output, `"files":2`)
		assert.Contains(t, output, `"warnings":1`)
		assert.Contains(t, output, `"duration":`)
		assert.Contains(t, output, `"message":"path not found: missing/"`)
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Loader{
			LoadFn: func(ctx context.Context, src *docsync.Source, targetDir string) *docsync.LoadResult {
				return docsync.LoadFailed(docsync.Errorf(docsync.EFETCH, "HTTP 404"))
			},
		}

		loader := dszerolog.NewLoggingLoader(inner, zerolog.New(&buf))
		res := loader.Load(context.Background(), src, "/tmp/target")

		require.False(t, res.Success)
		output := buf.String()
		assert.Contains(t, output, `"level":"error"`)
		assert.Contains(t, output, "HTTP 404")
	})
}

func TestLoggingLoader_ContentID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Loader{
		ContentIDFn: func(ctx context.Context, src *docsync.Source) string {
			return "abc123"
		},
	}

	loader := dszerolog.NewLoggingLoader(inner, zerolog.New(&buf))
	id := loader.ContentID(context.Background(), &docsync.Source{Kind: docsync.KindArchive, URL: "docs.zip"})

	assert.Equal(t, "abc123", id)
	assert.Contains(t, buf.String(), `"content_id":"abc123"`)
}

func TestLoggingLoader_Delegates(t *testing.T) {
	t.Parallel()

	inner := &mock.Loader{
		CanHandleFn: func(kind docsync.SourceKind) bool {
			return kind == docsync.KindArchive
		},
		ValidateConfigFn: func(src *docsync.Source) error {
			return docsync.Errorf(docsync.EINVALID, "bad")
		},
	}

	loader := dszerolog.NewLoggingLoader(inner, zerolog.Nop())

	assert.True(t, loader.CanHandle(docsync.KindArchive))
	assert.False(t, loader.CanHandle(docsync.KindGitRepo))
	assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(loader.ValidateConfig(&docsync.Source{})))
}
