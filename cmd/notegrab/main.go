package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/crawl"
	"github.com/fwojciec/notegrab/fs"
	"github.com/fwojciec/notegrab/goquery"
	nghttp "github.com/fwojciec/notegrab/http"
	"github.com/fwojciec/notegrab/rod"
	ngslog "github.com/fwojciec/notegrab/slog"
	"github.com/fwojciec/notegrab/sqlite"
	"github.com/fwojciec/notegrab/state"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("notegrab"),
		kong.Description("Grab notes (text, author and media links) from xiaohongshu pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'notegrab --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)

	loc := time.Local
	if cli.TZ != "" {
		if loc, err = time.LoadLocation(cli.TZ); err != nil {
			return fmt.Errorf("invalid time zone %q: %w", cli.TZ, err)
		}
	}
	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	switch command(kongCtx) {
	case "grab":
		if !cli.Grab.NoStore {
			if err := m.openDB(stderr); err != nil {
				return err
			}
			deps.Notes = sqlite.NewNoteService(m.DB)
		}
		if cli.Grab.Out != "" {
			out, err := filepath.Abs(cli.Grab.Out)
			if err != nil {
				return fmt.Errorf("invalid output directory %q: %w", cli.Grab.Out, err)
			}
			deps.Store = fs.NewNoteStore(filepath.Dir(out), filepath.Base(out))
		}
		g, err := m.newGrabber(&cli.Grab, loc, deps, stderr)
		if err != nil {
			return err
		}
		deps.Grabber = g

	case "parse":
		deps.Parser = ngslog.NewLoggingParser(state.NewParser(state.WithLocation(loc)), deps.Logger, "state")
		if !cli.Parse.NoMeta {
			deps.MetaParser = ngslog.NewLoggingParser(goquery.NewMetaParser(), deps.Logger, "meta")
		}

	case "list":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		deps.Notes = sqlite.NewNoteService(m.DB)
	}

	return kongCtx.Run(deps)
}

// newGrabber wires fetchers, parsers and sinks for the grab command.
func (m *Main) newGrabber(c *GrabCmd, loc *time.Location, deps *Dependencies, stderr io.Writer) (*crawl.Grabber, error) {
	logger := deps.Logger

	var mobile, desktop notegrab.Fetcher
	if c.Browser {
		mf, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithProfile(notegrab.MobileProfile()))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, mf.Close)

		df, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithProfile(notegrab.DesktopProfile()))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, df.Close)

		mobile, desktop = mf, df
	} else {
		mobile = nghttp.NewFetcher(nghttp.WithTimeout(c.Timeout), nghttp.WithProfile(notegrab.MobileProfile()))
		desktop = nghttp.NewFetcher(nghttp.WithTimeout(c.Timeout), nghttp.WithProfile(notegrab.DesktopProfile()))
	}

	g := &crawl.Grabber{
		Resolver:       ngslog.NewLoggingResolver(nghttp.NewLinkResolver(nghttp.WithTimeout(c.Timeout)), logger),
		Fetcher:        ngslog.NewLoggingFetcher(mobile, logger),
		DesktopFetcher: ngslog.NewLoggingFetcher(desktop, logger),
		Parser:         ngslog.NewLoggingParser(state.NewParser(state.WithLocation(loc)), logger, "state"),
		RateLimiter:    crawl.NewDomainLimiter(crawl.DefaultRequestsPerSecond),
		Concurrency:    c.Concurrency,
		Log: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}
	if !c.NoMeta {
		g.MetaParser = ngslog.NewLoggingParser(goquery.NewMetaParser(), logger, "meta")
	}
	if deps.Notes != nil {
		g.Notes = deps.Notes
		if c.SkipStored {
			stored, err := crawl.LoadStored(deps.Ctx, deps.Notes)
			if err != nil {
				return nil, fmt.Errorf("failed to load stored notes: %w", err)
			}
			g.Stored = stored
		}
	}
	if deps.Store != nil {
		g.Writer = ngslog.NewLoggingNoteWriter(deps.Store, logger)
	}
	return g, nil
}

func (m *Main) openDB(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set NOTEGRAB_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

// command returns the name of the selected subcommand.
func command(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// newLogger logs to stderr when verbose, and discards otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("NOTEGRAB_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "notegrab.db"
	}
	dir := filepath.Join(home, ".notegrab")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "notegrab.db")
}
