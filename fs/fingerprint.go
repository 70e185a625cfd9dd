package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsync"
)

// Fingerprint returns an xxhash of each file's content, keyed by relative
// path. Unreadable files are omitted.
func Fingerprint(root string, files []string) map[string]string {
	out := make(map[string]string, len(files))
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		out[rel] = strconv.FormatUint(xxhash.Sum64(data), 16)
	}
	return out
}

// Drift describes how a docset directory differs from its metadata.
type Drift struct {
	Missing  []string
	Modified []string
}

// Clean reports whether no drift was found.
func (d *Drift) Clean() bool {
	return len(d.Missing) == 0 && len(d.Modified) == 0
}

// Verify compares the files recorded in m against what is on disk under
// root. Files without a recorded fingerprint are only checked for
// existence.
func Verify(root string, m *docsync.SourceMetadata) *Drift {
	d := &Drift{}
	for _, rel := range m.Files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			d.Missing = append(d.Missing, rel)
			continue
		}
		want, ok := m.Fingerprints[rel]
		if !ok {
			continue
		}
		if strconv.FormatUint(xxhash.Sum64(data), 16) != want {
			d.Modified = append(d.Modified, rel)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Modified)
	return d
}
