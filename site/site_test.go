package site_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubLoaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		loader docsync.Loader
		kind   docsync.SourceKind
	}{
		{name: "documentation site", loader: site.NewDocumentationSiteLoader(), kind: docsync.KindDocumentationSite},
		{name: "api documentation", loader: site.NewAPIDocumentationLoader(), kind: docsync.KindAPIDocumentation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.loader.CanHandle(tt.kind))
			assert.False(t, tt.loader.CanHandle(docsync.KindGitRepo))

			err := tt.loader.ValidateConfig(&docsync.Source{Kind: tt.kind})
			assert.Equal(t, docsync.EINVALID, docsync.ErrorCode(err))

			src := &docsync.Source{Kind: tt.kind, URL: "https://docs.example.com"}
			require.NoError(t, tt.loader.ValidateConfig(src))

			dir := t.TempDir()
			res := tt.loader.Load(context.Background(), src, dir)
			assert.False(t, res.Success)
			assert.Empty(t, res.Files)
			assert.Equal(t, docsync.ENOTIMPLEMENTED, docsync.ErrorCode(res.Err))

			id := tt.loader.ContentID(context.Background(), src)
			assert.Len(t, id, 64)
			assert.Equal(t, id, tt.loader.ContentID(context.Background(), src))
		})
	}
}
