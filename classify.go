package docsync

import (
	"path"
	"regexp"
	"strings"
)

// Project metadata files that are never documentation, matched as
// case-insensitive basename prefixes.
var excludedFilePrefixes = []string{
	"changelog",
	"license",
	"contributing",
	"authors",
	"code_of_conduct",
}

// Directory names whose contents are never documentation. Matched against
// every path segment, the basename included.
var excludedDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
	".git":         {},
	"build":        {},
	"dist":         {},
	"target":       {},
	".cache":       {},
	"test":         {},
	"tests":        {},
	"__tests__":    {},
	".github":      {},
	".vscode":      {},
	".idea":        {},
}

var docExtensions = map[string]struct{}{
	".md":       {},
	".mdx":      {},
	".rst":      {},
	".txt":      {},
	".adoc":     {},
	".asciidoc": {},
}

var binaryExtensions = map[string]struct{}{
	".exe":   {},
	".bin":   {},
	".so":    {},
	".dll":   {},
	".dylib": {},
	".a":     {},
	".o":     {},
	".obj":   {},
}

var exampleDirPattern = regexp.MustCompile(`(?i)^(examples?|samples?)$`)

// Classify reports whether the file at the given relative path is
// documentation worth keeping. Rules are evaluated in order and the first
// match wins.
func Classify(p string) bool {
	p = strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return false
	}

	segments := strings.Split(p, "/")
	base := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]
	lowerBase := strings.ToLower(base)
	ext := strings.ToLower(path.Ext(base))

	for _, prefix := range excludedFilePrefixes {
		if strings.HasPrefix(lowerBase, prefix) {
			return false
		}
	}

	for _, seg := range segments {
		if _, ok := excludedDirs[seg]; ok {
			return false
		}
	}

	if strings.HasPrefix(lowerBase, "readme") {
		return true
	}

	if _, ok := docExtensions[ext]; ok {
		return true
	}

	for _, dir := range dirs {
		if exampleDirPattern.MatchString(dir) {
			_, binary := binaryExtensions[ext]
			return !binary
		}
	}

	return false
}

// ClassifyAll returns the paths accepted by Classify in input order.
func ClassifyAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if Classify(p) {
			out = append(out, p)
		}
	}
	return out
}
