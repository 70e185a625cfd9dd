// Package http provides an HTTP-based implementation of docsync.Downloader
// for fetching remote archives.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsync"
)

// DefaultDownloadTimeout is the default timeout for a whole download,
// including reading the body.
const DefaultDownloadTimeout = 5 * time.Minute

// DefaultHeadTimeout is the default timeout for HEAD requests.
const DefaultHeadTimeout = 10 * time.Second

// Ensure Downloader implements docsync.Downloader at compile time.
var _ docsync.Downloader = (*Downloader)(nil)

// Downloader retrieves archives over HTTP(S).
type Downloader struct {
	client      *http.Client
	timeout     time.Duration
	headTimeout time.Duration
	userAgent   string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithTimeout sets the timeout for downloads.
// Defaults to DefaultDownloadTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		dl.timeout = d
	}
}

// WithHeadTimeout sets the timeout for HEAD requests.
func WithHeadTimeout(d time.Duration) Option {
	return func(dl *Downloader) {
		dl.headTimeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(dl *Downloader) {
		dl.userAgent = ua
	}
}

// NewDownloader creates a new HTTP-based Downloader.
func NewDownloader(opts ...Option) *Downloader {
	dl := &Downloader{
		timeout:     DefaultDownloadTimeout,
		headTimeout: DefaultHeadTimeout,
		userAgent:   "docsync",
	}
	for _, opt := range opts {
		opt(dl)
	}

	dl.client = &http.Client{}

	return dl
}

// Download streams the body at url into w and returns the bytes written.
func (dl *Downloader) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, dl.timeout)
	defer cancel()

	resp, err := dl.do(ctx, http.MethodGet, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, docsync.Errorf(docsync.EFETCH, "downloading %s: %v", url, err)
	}
	return n, nil
}

// Head returns the ETag and Last-Modified validators of url.
func (dl *Downloader) Head(ctx context.Context, url string) (*docsync.RemoteInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, dl.headTimeout)
	defer cancel()

	resp, err := dl.do(ctx, http.MethodHead, url)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	return &docsync.RemoteInfo{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}, nil
}

func (dl *Downloader) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, docsync.Errorf(docsync.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", dl.userAgent)

	resp, err := dl.client.Do(req)
	if err != nil {
		return nil, docsync.Errorf(docsync.EFETCH, "%s %s: %v", method, url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, docsync.Errorf(docsync.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}
	return resp, nil
}
