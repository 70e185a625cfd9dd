package mock

import (
	"context"

	"github.com/fwojciec/docsync"
)

var _ docsync.GitRemote = (*GitRemote)(nil)

// GitRemote is a mock implementation of docsync.GitRemote.
type GitRemote struct {
	CloneFn      func(ctx context.Context, url, branch, dir, token string) error
	ResolveRefFn func(ctx context.Context, url, branch, token string) (string, error)
}

func (r *GitRemote) Clone(ctx context.Context, url, branch, dir, token string) error {
	return r.CloneFn(ctx, url, branch, dir, token)
}

func (r *GitRemote) ResolveRef(ctx context.Context, url, branch, token string) (string, error) {
	return r.ResolveRefFn(ctx, url, branch, token)
}
