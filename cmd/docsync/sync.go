package main

import (
	"fmt"

	"github.com/fwojciec/docsync/refresh"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
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
		res, err := deps.Coordinator.Refresh(deps.Ctx, ds, refresh.Options{Force: c.Force})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			failed++
			continue
		}
		if res.NotInitialized {
			fmt.Fprintf(deps.Stderr, "docset %q is not initialized. Run 'docsync init %s' first.\n", ds.ID, ds.ID)
			failed++
			continue
		}

		fmt.Fprintf(deps.Stdout, "Synced %s\n", ds.ID)
		printSources(deps, res.Sources)
		if n := res.Failed(); n > 0 {
			fmt.Fprintf(deps.Stdout, "  %d source(s) failed; docset metadata left unchanged\n", n)
			failed += n
		}
	}

	if failed > 0 {
		return fmt.Errorf("sync finished with %d failure(s)", failed)
	}
	return nil
}
