package mock

import (
	"context"
	"io"

	"github.com/fwojciec/docsync"
)

var _ docsync.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of docsync.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string, w io.Writer) (int64, error)
	HeadFn     func(ctx context.Context, url string) (*docsync.RemoteInfo, error)
}

func (d *Downloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	return d.DownloadFn(ctx, url, w)
}

func (d *Downloader) Head(ctx context.Context, url string) (*docsync.RemoteInfo, error) {
	return d.HeadFn(ctx, url)
}
