package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/clipvault/clipvault/internal/clipboard/sysboard"
	"github.com/clipvault/clipvault/internal/config"
	"github.com/clipvault/clipvault/internal/history"
	"github.com/clipvault/clipvault/internal/monitor"
	"github.com/clipvault/clipvault/internal/search"
	"github.com/clipvault/clipvault/internal/store"
	"github.com/clipvault/clipvault/internal/store/dbstore"
	"github.com/clipvault/clipvault/internal/sweep"
)

// CLI handles the command-line interface
type CLI struct {
	engine    *history.Engine
	session   *search.Session
	configMgr *config.ConfigManager
	cfg       *config.Config
	logger    *log.Logger
}

// New creates a new CLI instance
func New() (*CLI, error) {
	return NewWithArgs(nil)
}

// NewWithArgs creates a new CLI instance with custom arguments for
// database and config paths. A store that fails to open degrades the
// engine to read-empty/write-noop instead of failing the command.
func NewWithArgs(args *Args) (*CLI, error) {
	logger := log.New(os.Stderr, "clipvault: ", log.LstdFlags)

	// Determine config path (precedence: flag > default)
	var configMgr *config.ConfigManager
	if args != nil && args.ConfigPath != nil {
		configMgr = config.NewConfigManagerWithPath(*args.ConfigPath)
	} else {
		var err error
		configMgr, err = config.NewConfigManager()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
	}

	cfg, err := configMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Determine database path (precedence: flag > config > default)
	var dbPath string
	switch {
	case args != nil && args.DBPath != nil:
		dbPath = *args.DBPath
	case cfg.HistoryLocation != "":
		dbPath = cfg.HistoryLocation
	default:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, ".config", "clipvault", "clipvault.db")
	}

	// Open the store. Storage failures degrade rather than abort so
	// that a broken database never takes the whole tool down.
	var entryStore store.EntryStore
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Printf("history degraded, cannot create database directory: %v", err)
	} else {
		sqliteStore, err := dbstore.NewSQLiteStore(dbPath, cfg.MaxHistory)
		if err != nil {
			logger.Printf("history degraded, cannot open database: %v", err)
		} else {
			entryStore = sqliteStore
		}
	}

	engine := history.NewEngine(entryStore, logger)

	return &CLI{
		engine:    engine,
		session:   search.NewSessionWithLimit(engine, cfg.MaxHistory),
		configMgr: configMgr,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Close releases the underlying store.
func (c *CLI) Close() error {
	return c.engine.Close()
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Watch != nil:
		return c.executeWatch(args.Watch)
	case args.List != nil:
		return c.executeList(args.List)
	case args.Search != nil:
		return c.executeSearch(args.Search)
	case args.Image != nil:
		return c.executeImage(args.Image)
	case args.Pin != nil:
		return c.executePin(args.Pin)
	case args.Unpin != nil:
		return c.executeUnpin(args.Unpin)
	case args.Tag != nil:
		return c.executeTag(args.Tag)
	case args.Config != nil:
		return c.executeConfig(args.Config)
	case args.Clear != nil:
		return c.executeClear(args.Clear)
	default:
		// Default behavior: show recent history
		return c.executeList(&ListCmd{Limit: 20})
	}
}

// executeWatch handles the 'clipvault watch' command. It runs the
// clipboard monitor and the expiry sweeper until interrupted.
func (c *CLI) executeWatch(cmd *WatchCmd) error {
	if c.engine.Degraded() {
		return fmt.Errorf("cannot watch: history store is unavailable")
	}

	pasteboard, err := sysboard.New()
	if err != nil {
		return fmt.Errorf("failed to initialize clipboard access: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := monitor.NewMonitor(pasteboard, c.engine, c.cfg, c.logger)
	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	sweeper := sweep.NewSweeper(c.engine, c.cfg.SweepInterval())
	go sweeper.Run(ctx)

	fmt.Println("Watching clipboard. Press Ctrl-C to stop.")
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil
		case event := <-mon.Events():
			if !cmd.Verbose {
				continue
			}
			switch event.Type {
			case monitor.EventRecorded:
				if event.Sensitive {
					c.logger.Printf("recorded %s entry (sensitive, expires in %s)", event.ContentType, c.cfg.SensitiveTTL())
				} else {
					c.logger.Printf("recorded %s entry", event.ContentType)
				}
			case monitor.EventSkipped:
				c.logger.Printf("skipped sensitive %s entry", event.ContentType)
			}
		}
	}
}

// executeList handles the 'clipvault list' command
func (c *CLI) executeList(cmd *ListCmd) error {
	entries := c.engine.Entries(cmd.Limit, false)
	if len(entries) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	for _, entry := range entries {
		c.printEntry(entry, cmd.Tags)
	}
	return nil
}

// executeSearch handles the 'clipvault search' command
func (c *CLI) executeSearch(cmd *SearchCmd) error {
	query := strings.Join(cmd.Query, " ")

	results := c.session.Query(query)
	if len(results) == 0 {
		return fmt.Errorf("no matches found for query: %s", query)
	}

	for _, entry := range results {
		c.printEntry(entry, true)
	}
	return nil
}

// executeImage handles the 'clipvault image' command
func (c *CLI) executeImage(cmd *ImageCmd) error {
	data := c.engine.ImageData(cmd.ID)
	if data == nil {
		return fmt.Errorf("no image data for entry %d", cmd.ID)
	}

	if cmd.File == nil {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(*cmd.File, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	fmt.Printf("Written %d bytes to %s\n", len(data), *cmd.File)
	return nil
}

// executePin handles the 'clipvault pin' command
func (c *CLI) executePin(cmd *PinCmd) error {
	c.engine.SetPinned(cmd.ID, true)
	fmt.Printf("Pinned entry %d\n", cmd.ID)
	return nil
}

// executeUnpin handles the 'clipvault unpin' command
func (c *CLI) executeUnpin(cmd *UnpinCmd) error {
	c.engine.SetPinned(cmd.ID, false)
	fmt.Printf("Unpinned entry %d\n", cmd.ID)
	return nil
}

// executeTag handles the 'clipvault tag' command
func (c *CLI) executeTag(cmd *TagCmd) error {
	switch {
	case cmd.Add != nil:
		c.engine.AddTag(cmd.Add.ID, cmd.Add.Tag)
		fmt.Printf("Tagged entry %d with %q\n", cmd.Add.ID, cmd.Add.Tag)
		return nil
	case cmd.Set != nil:
		tags := store.NormalizeTags(cmd.Set.Tags)
		c.engine.SetTags(cmd.Set.ID, tags)
		if len(tags) == 0 {
			fmt.Printf("Cleared tags on entry %d\n", cmd.Set.ID)
		} else {
			fmt.Printf("Set tags on entry %d: %s\n", cmd.Set.ID, store.JoinTags(tags))
		}
		return nil
	default:
		return fmt.Errorf("no tag subcommand specified")
	}
}

// executeConfig handles the 'clipvault config' command
func (c *CLI) executeConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Get != nil:
		value, err := c.configMgr.Get(cmd.Get.Key)
		if err != nil {
			return fmt.Errorf("failed to get config value: %w", err)
		}
		fmt.Printf("%s\n", value)
		return nil
	case cmd.Set != nil:
		if err := c.configMgr.Update(cmd.Set.Key, cmd.Set.Value); err != nil {
			return fmt.Errorf("failed to set config value: %w", err)
		}
		fmt.Printf("Set %s = %s\n", cmd.Set.Key, cmd.Set.Value)
		return nil
	case cmd.List != nil:
		values, err := c.configMgr.List()
		if err != nil {
			return fmt.Errorf("failed to list config values: %w", err)
		}
		fmt.Printf("Current configuration:\n")
		for key, value := range values {
			fmt.Printf("  %s = %s\n", key, value)
		}
		return nil
	default:
		return fmt.Errorf("no config subcommand specified")
	}
}

// executeClear handles the 'clipvault clear' command
func (c *CLI) executeClear(cmd *ClearCmd) error {
	count := c.engine.Count()
	if count == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	// Prompt for confirmation unless --force is used
	if !cmd.Force {
		fmt.Printf("This will delete %d entr%s from history. Continue? [y/N]: ", count, plural(count, "y", "ies"))
		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	c.engine.Clear()
	fmt.Printf("Cleared %d entr%s from history.\n", count, plural(count, "y", "ies"))
	return nil
}

// printEntry writes one history entry as a single line.
func (c *CLI) printEntry(entry *store.Entry, showTags bool) {
	marker := " "
	if entry.Pinned {
		marker = "*"
	}

	line := fmt.Sprintf("%s %4d  %s  %s", marker, entry.ID, entry.CreatedAt.Format("2006-01-02 15:04"), entry.Preview())
	if entry.Sensitive {
		line += "  [sensitive]"
	}
	if showTags && len(entry.Tags) > 0 {
		line += fmt.Sprintf("  (%s)", store.JoinTags(entry.Tags))
	}
	fmt.Println(line)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
