// Package fs provides the filesystem side of docset synchronization:
// symlinks to user folders, symlink-safe cleanup, file extraction and
// hashing, and the JSON metadata sidecars kept beside synced content.
package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/docsync"
)

// CreateSymlinks links each source folder into targetDir under its base
// name. Relative sources are resolved against projectRoot. An existing link
// with the same name is replaced; any other existing entry is refused with
// EUNSAFE. Every source and link name is checked before anything is
// touched, so a failure leaves targetDir unchanged. It returns the created link names in source order.
func CreateSymlinks(sources []string, targetDir, projectRoot string) ([]string, error) {
	resolved := make([]string, 0, len(sources))
	for _, src := range sources {
		p := src
		if !filepath.IsAbs(p) {
			p = filepath.Join(projectRoot, p)
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(abs); err != nil {
			if os.IsNotExist(err) {
				return nil, docsync.Errorf(docsync.EUNSAFE, "source path does not exist: %s", abs)
			}
			return nil, err
		}
		if err := checkLinkSlot(filepath.Join(targetDir, filepath.Base(abs))); err != nil {
			return nil, err
		}
		resolved = append(resolved, abs)
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resolved))
	for _, abs := range resolved {
		name := filepath.Base(abs)
		link := filepath.Join(targetDir, name)

		if err := removeEntry(link); err != nil {
			return nil, err
		}
		if err := os.Symlink(abs, link); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// RemoveSymlinks unlinks every symlink directly inside targetDir and leaves
// all other entries in place. It returns the number of links removed.
func RemoveSymlinks(targetDir string) (int, error) {
	entries, err := os.ReadDir(targetDir)
	if os.IsNotExist(err) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	var removed int
	for _, e := range entries {
		if e.Type()&os.ModeSymlink == 0 {
			continue
		}
		if err := os.Remove(filepath.Join(targetDir, e.Name())); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// checkLinkSlot fails unless p is missing or already a symlink.
func checkLinkSlot(p string) error {
	fi, err := os.Lstat(p)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		return docsync.Errorf(docsync.EUNSAFE, "cannot link %s: entry exists and is not a symlink", p)
	}
	return nil
}

// removeEntry unlinks an existing link at p.
func removeEntry(p string) error {
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
