package main

import (
	"context"
	"io"

	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/refresh"
	"github.com/rs/zerolog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger

	ConfigPath  string
	Configs     *ConfigCache
	Coordinator *refresh.Coordinator
	Runs        docsync.SyncRunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" env:"DOCSYNC_CONFIG" default:"docsync.yaml" help:"Path to the config file"`
	DB      string `env:"DOCSYNC_DB" help:"Path to the sync history database"`
	Verbose int    `short:"v" type:"counter" help:"Increase log verbosity (repeatable)"`

	Init     InitCmd     `cmd:"" help:"Initialize docset directories from their sources"`
	Sync     SyncCmd     `cmd:"" help:"Refresh docsets whose sources changed"`
	Status   StatusCmd   `cmd:"" help:"Show docset state, drift and sync history"`
	Clear    ClearCmd    `cmd:"" help:"Remove a docset directory and its history"`
	Patterns PatternsCmd `cmd:"" help:"Print a paths: list covering the files under a directory"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Docsets []string `arg:"" optional:"" help:"Docset IDs (default: all)"`
	Force   bool     `short:"f" help:"Replace existing docset directories"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Docsets []string `arg:"" optional:"" help:"Docset IDs (default: all)"`
	Force   bool     `short:"f" help:"Reload sources even when unchanged"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Docsets []string `arg:"" optional:"" help:"Docset IDs (default: all)"`
	History int      `default:"5" help:"Number of recent sync runs to show per docset"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Docset string `arg:"" help:"Docset ID"`
	Force  bool   `help:"Confirm removal"`
}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct {
	Dir string `arg:"" type:"existingdir" help:"Directory to scan"`
	All bool   `help:"Include files the classifier would skip"`
}
