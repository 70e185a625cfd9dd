package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/docsync"
)

// Extraction is the outcome of copying a fetched tree into a docset.
type Extraction struct {
	// Files lists copied paths relative to the target, in copy order.
	Files []string

	// Warnings lists files that were skipped.
	Warnings []string
}

// ExtractFiles copies documentation from srcRoot into targetDir.
//
// With a non-empty selector exactly the listed files, directories and glob
// patterns are copied and the classifier is not consulted; entries that do
// not exist are reported as warnings. Without a selector the whole tree is
// scanned (skipping .git) and each file is kept if docsync.Classify accepts
// it. Symlinks inside srcRoot are never copied, and a file whose
// destination would pass through a symlink in targetDir is skipped with a
// warning.
//
// The returned Extraction is never nil. On error it lists the files copied
// before the failure so the caller can remove them.
func ExtractFiles(srcRoot, targetDir string, selector []string) (*Extraction, error) {
	x := &extractor{
		src:    srcRoot,
		dst:    targetDir,
		copied: make(map[string]struct{}),
		result: &Extraction{Files: []string{}},
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return x.result, err
	}

	if len(selector) == 0 {
		if err := x.walk(".", docsync.Classify); err != nil {
			return x.result, err
		}
		return x.result, nil
	}

	for _, entry := range selector {
		x.selectEntry(entry)
	}
	return x.result, nil
}

type extractor struct {
	src    string
	dst    string
	copied map[string]struct{}
	result *Extraction
}

func (x *extractor) warnf(format string, args ...any) {
	x.result.Warnings = append(x.result.Warnings, fmt.Sprintf(format, args...))
}

func (x *extractor) selectEntry(entry string) {
	rel := path.Clean(strings.Trim(filepath.ToSlash(entry), "/"))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		x.warnf("skipping path outside source: %s", entry)
		return
	}

	if isGlob(rel) {
		matches, err := doublestar.Glob(os.DirFS(x.src), rel)
		if err != nil {
			x.warnf("invalid pattern %s: %v", entry, err)
			return
		}
		if len(matches) == 0 {
			x.warnf("pattern matched nothing: %s", entry)
			return
		}
		for _, m := range matches {
			x.selectPath(m)
		}
		return
	}

	fi, err := os.Lstat(filepath.Join(x.src, filepath.FromSlash(rel)))
	if err != nil {
		x.warnf("path not found: %s", entry)
		return
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		x.warnf("skipping symlink: %s", entry)
		return
	}
	x.selectPath(rel)
}

func (x *extractor) selectPath(rel string) {
	fi, err := os.Lstat(filepath.Join(x.src, filepath.FromSlash(rel)))
	if err != nil {
		x.warnf("path not found: %s", rel)
		return
	}
	switch {
	case fi.IsDir():
		if err := x.walk(rel, nil); err != nil {
			x.warnf("reading %s: %v", rel, err)
		}
	case fi.Mode().IsRegular():
		x.copy(rel)
	}
}

// walk copies every regular file under rel for which keep returns true.
// A nil keep copies everything.
func (x *extractor) walk(rel string, keep func(string) bool) error {
	root := filepath.Join(x.src, filepath.FromSlash(rel))
	return filepath.WalkDir(root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			x.warnf("reading %s: %v", p, err)
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		r, err := filepath.Rel(x.src, p)
		if err != nil {
			return err
		}
		r = filepath.ToSlash(r)
		if keep != nil && !keep(r) {
			return nil
		}
		x.copy(r)
		return nil
	})
}

func (x *extractor) copy(rel string) {
	if _, ok := x.copied[rel]; ok {
		return
	}
	src := filepath.Join(x.src, filepath.FromSlash(rel))
	dst := filepath.Join(x.dst, filepath.FromSlash(rel))
	link, err := linkOnPath(x.dst, dst, true)
	if err != nil {
		x.warnf("copying %s: %v", rel, err)
		return
	}
	if link != "" {
		x.warnf("skipping %s: %s is a symlink", rel, link)
		return
	}
	if err := copyFile(src, dst); err != nil {
		x.warnf("copying %s: %v", rel, err)
		return
	}
	x.copied[rel] = struct{}{}
	x.result.Files = append(x.result.Files, rel)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fi.Mode().Perm()|0200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
