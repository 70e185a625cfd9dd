package mock_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Delegates(t *testing.T) {
	t.Parallel()

	var gotTarget string
	l := &mock.Loader{
		LoadFn: func(_ context.Context, _ *docsync.Source, targetDir string) *docsync.LoadResult {
			gotTarget = targetDir
			return &docsync.LoadResult{Success: true, Files: []string{"README.md"}}
		},
		ContentIDFn: func(_ context.Context, src *docsync.Source) string {
			return "id:" + src.URL
		},
	}

	res := l.Load(context.Background(), &docsync.Source{Kind: docsync.KindGitRepo}, "/docsets/react")

	require.True(t, res.Success)
	assert.Equal(t, "/docsets/react", gotTarget)
	assert.Equal(t, "id:repo", l.ContentID(context.Background(), &docsync.Source{URL: "repo"}))
}

func TestDownloader_Delegates(t *testing.T) {
	t.Parallel()

	d := &mock.Downloader{
		DownloadFn: func(_ context.Context, url string, w io.Writer) (int64, error) {
			n, err := io.Copy(w, strings.NewReader("payload"))
			return n, err
		},
	}

	var sb strings.Builder
	n, err := d.Download(context.Background(), "https://example.com/a.zip", &sb)

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", sb.String())
}

func TestGitRemote_Delegates(t *testing.T) {
	t.Parallel()

	var branches []string
	r := &mock.GitRemote{
		CloneFn: func(_ context.Context, _, branch, _, _ string) error {
			branches = append(branches, branch)
			return nil
		},
	}

	require.NoError(t, r.Clone(context.Background(), "https://github.com/a/b", "main", "/tmp/x", ""))
	assert.Equal(t, []string{"main"}, branches)
}
