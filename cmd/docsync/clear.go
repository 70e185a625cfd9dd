package main

import (
	"fmt"

	"github.com/fwojciec/docsync"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm removal\n")
		return docsync.Errorf(docsync.EINVALID, "use --force to confirm removal")
	}

	cfg, err := deps.Configs.Load(deps.ConfigPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	ds, err := cfg.Docset(c.Docset)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'docsync status' to see configured docsets.\n", errorText(err))
		return err
	}

	info, err := deps.Coordinator.Clear(deps.Ctx, ds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if info.Total == 0 {
		fmt.Fprintf(deps.Stdout, "Nothing to clear for %q\n", ds.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Cleared %q: %d files, %d directories, %d symlinks removed\n",
		ds.ID, info.Files, info.Directories, info.Symlinks)
	if info.Symlinks > 0 {
		fmt.Fprintln(deps.Stdout, "Linked folders were unlinked; their contents were not touched.")
	}
	return nil
}
