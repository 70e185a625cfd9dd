package main

import (
	"fmt"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/refresh"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	if c.Force {
		deps.Configs.Invalidate(deps.ConfigPath)
	}
	cfg, err := deps.Configs.Load(deps.ConfigPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	docsets, err := cfg.Resolve(c.Docsets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	var failed int
	for _, ds := range docsets {
		res, err := deps.Coordinator.Init(deps.Ctx, ds, refresh.Options{Force: c.Force})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			failed++
			continue
		}

		if res.Cleared != nil {
			fmt.Fprintf(deps.Stdout, "Cleared %s (%d files, %d directories, %d symlinks)\n",
				ds.Dir, res.Cleared.Files, res.Cleared.Directories, res.Cleared.Symlinks)
		}
		fmt.Fprintf(deps.Stdout, "Initialized %s in %s\n", ds.ID, ds.Dir)
		printSources(deps, res.Sources)
		failed += res.Failed()
	}

	if failed > 0 {
		return fmt.Errorf("init finished with %d failure(s)", failed)
	}
	return nil
}

// printSources writes one line per source outcome, followed by its
// warnings and error.
func printSources(deps *Dependencies, sources []refresh.SourceResult) {
	for _, s := range sources {
		locator := s.Source.URL
		if s.Source.Kind == docsync.KindLocalFolder {
			locator = fmt.Sprint(s.Source.Paths)
		}
		fmt.Fprintf(deps.Stdout, "  [%d] %s %s: %s (%d files)\n", s.Index, s.Source.Kind, locator, s.Status, s.Files)
		for _, w := range s.Warnings {
			fmt.Fprintf(deps.Stdout, "      warning: %s\n", w)
		}
		if s.Err != nil {
			fmt.Fprintf(deps.Stdout, "      error: %s\n", errorText(s.Err))
		}
	}
}
