// Package git implements docsync.Loader for git repositories using go-git.
package git

import (
	"context"
	"strings"

	"github.com/fwojciec/docsync"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Ensure Remote implements docsync.GitRemote at compile time.
var _ docsync.GitRemote = (*Remote)(nil)

// Remote talks to git servers through go-git. It needs no git binary.
type Remote struct{}

// NewRemote returns a new Remote.
func NewRemote() *Remote {
	return &Remote{}
}

// Clone makes a shallow, single-branch clone without tags.
func (r *Remote) Clone(ctx context.Context, url, branch, dir, token string) error {
	opts := &gogit.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         gogit.NoTags,
		Auth:         authFor(url, token),
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	_, err := gogit.PlainCloneContext(ctx, dir, false, opts)
	return err
}

// ResolveRef lists the remote's references and returns the hash of branch,
// or of HEAD when branch is empty.
func (r *Remote) ResolveRef(ctx context.Context, url, branch, token string) (string, error) {
	remote := gogit.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &gogit.ListOptions{Auth: authFor(url, token)})
	if err != nil {
		return "", err
	}

	want := plumbing.HEAD
	if branch != "" {
		want = plumbing.NewBranchReferenceName(branch)
	}

	byName := make(map[plumbing.ReferenceName]*plumbing.Reference, len(refs))
	for _, ref := range refs {
		byName[ref.Name()] = ref
	}

	ref, ok := byName[want]
	if ok && ref.Type() == plumbing.SymbolicReference {
		ref, ok = byName[ref.Target()]
	}
	if !ok {
		return "", docsync.Errorf(docsync.ENOTFOUND, "ref %s not found on %s", want, url)
	}
	return ref.Hash().String(), nil
}

// authFor returns HTTP basic auth carrying token for HTTP(S) remotes.
// SSH remotes rely on the user's agent and get no explicit auth.
func authFor(url, token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return nil
	}
	return &githttp.BasicAuth{Username: "x-access-token", Password: token}
}
