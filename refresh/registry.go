// Package refresh coordinates initialising, refreshing and inspecting
// docset directories on top of the loaders and metadata store.
package refresh

import (
	"github.com/fwojciec/docsync"
)

// Registry dispatches sources to the loader that serves their kind.
type Registry struct {
	loaders []docsync.Loader
}

// NewRegistry creates a Registry. Loaders are consulted in order.
func NewRegistry(loaders ...docsync.Loader) *Registry {
	return &Registry{loaders: loaders}
}

// LoaderFor returns the first loader able to handle src. Local folders are
// linked rather than loaded and are rejected, as are unknown kinds.
func (r *Registry) LoaderFor(src *docsync.Source) (docsync.Loader, error) {
	if err := src.Kind.Validate(); err != nil {
		return nil, err
	}
	if src.Kind == docsync.KindLocalFolder {
		return nil, docsync.Errorf(docsync.EINVALID, "local folder sources are linked, not loaded")
	}
	for _, l := range r.loaders {
		if l.CanHandle(src.Kind) {
			return l, nil
		}
	}
	return nil, docsync.Errorf(docsync.EINVALID, "no loader registered for %s sources", src.Kind)
}
