package docsync

import (
	"sort"
	"strings"
)

// DiscoverDirectoryPatterns compresses a flat file list into directory
// patterns suitable for a config `paths:` list. Files are grouped by their
// top-level segment; a group with two or more files becomes "<segment>/",
// single-file groups and root-level files stay literal. The result is
// sorted.
func DiscoverDirectoryPatterns(files []string) []string {
	groups := make(map[string][]string)
	var roots []string

	for _, f := range files {
		f = strings.Trim(strings.ReplaceAll(f, "\\", "/"), "/")
		if f == "" {
			continue
		}
		top, _, nested := strings.Cut(f, "/")
		if !nested {
			roots = append(roots, f)
			continue
		}
		groups[top] = append(groups[top], f)
	}

	seen := make(map[string]struct{})
	patterns := []string{}
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		patterns = append(patterns, p)
	}

	for _, f := range roots {
		add(f)
	}
	for top, members := range groups {
		if countDistinct(members) >= 2 {
			add(top + "/")
			continue
		}
		add(members[0])
	}

	sort.Strings(patterns)
	return patterns
}

// DiscoverMinimalPatterns uses the same grouping as
// DiscoverDirectoryPatterns and returns a sorted, duplicate-free list that
// is identical for any permutation of the input.
func DiscoverMinimalPatterns(files []string) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	return DiscoverDirectoryPatterns(sorted)
}

func countDistinct(ss []string) int {
	seen := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		seen[s] = struct{}{}
	}
	return len(seen)
}
