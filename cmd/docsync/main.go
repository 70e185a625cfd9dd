package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsync"
	"github.com/fwojciec/docsync/archive"
	"github.com/fwojciec/docsync/fs"
	"github.com/fwojciec/docsync/git"
	dshttp "github.com/fwojciec/docsync/http"
	"github.com/fwojciec/docsync/refresh"
	"github.com/fwojciec/docsync/site"
	"github.com/fwojciec/docsync/sqlite"
	"github.com/fwojciec/docsync/zerolog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overridden by --db or DOCSYNC_DB.
	DBPath string

	// SQLite database backing the sync history.
	DB *sqlite.DB

	// Remote and Downloader reach the network. Defaults are used when nil.
	Remote     docsync.GitRemote
	Downloader docsync.Downloader

	// Configs caches parsed config files across runs.
	Configs *ConfigCache
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:  defaultDBPath(),
		Configs: NewConfigCache(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Configs: m.Configs,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsync"),
		kong.Description("Keep local snapshots of documentation in sync with their sources."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsync --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = zerolog.NewLogger(stderr, cli.Verbose)
	deps.ConfigPath = cli.Config

	// patterns works on a plain directory and needs no state.
	if !strings.HasPrefix(kongCtx.Command(), "patterns") {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCSYNC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Runs = sqlite.NewSyncRunService(m.DB)
		deps.Coordinator = m.coordinator(deps)
	}

	return kongCtx.Run(deps)
}

// coordinator wires every loader, wrapped with logging, into a refresh
// coordinator backed by the on-disk metadata store.
func (m *Main) coordinator(deps *Dependencies) *refresh.Coordinator {
	remote := m.Remote
	if remote == nil {
		remote = git.NewRemote()
	}
	downloader := m.Downloader
	if downloader == nil {
		downloader = dshttp.NewDownloader()
	}

	loaders := []docsync.Loader{
		git.NewLoader(remote),
		archive.NewLoader(downloader),
		site.NewDocumentationSiteLoader(),
		site.NewAPIDocumentationLoader(),
	}
	for i, l := range loaders {
		loaders[i] = zerolog.NewLoggingLoader(l, deps.Logger)
	}

	c := refresh.NewCoordinator(refresh.NewRegistry(loaders...), fs.NewMetadataStore())
	c.Runs = deps.Runs
	c.Logger = deps.Logger
	return c
}

// errorText returns the message to show for err: the application message
// when there is one, the full error text otherwise.
func errorText(err error) string {
	if docsync.ErrorCode(err) == docsync.EINTERNAL {
		return err.Error()
	}
	return docsync.ErrorMessage(err)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCSYNC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsync.db"
	}
	return filepath.Join(home, ".docsync", "history.db")
}
