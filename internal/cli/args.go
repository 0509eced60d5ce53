package cli

import (
	"fmt"
)

// Args represents the top-level command structure
type Args struct {
	Watch  *WatchCmd  `arg:"subcommand:watch" help:"Run the clipboard monitor and expiry sweeper"`
	List   *ListCmd   `arg:"subcommand:list" help:"List clipboard history"`
	Search *SearchCmd `arg:"subcommand:search" help:"Fuzzy-search clipboard history"`
	Image  *ImageCmd  `arg:"subcommand:image" help:"Write an image entry's bytes to a file or stdout"`
	Pin    *PinCmd    `arg:"subcommand:pin" help:"Pin an entry so it survives eviction and sorts first"`
	Unpin  *UnpinCmd  `arg:"subcommand:unpin" help:"Unpin an entry"`
	Tag    *TagCmd    `arg:"subcommand:tag" help:"Manage an entry's tags"`
	Config *ConfigCmd `arg:"subcommand:config" help:"Manage configuration"`
	Clear  *ClearCmd  `arg:"subcommand:clear" help:"Delete all history entries"`

	DBPath     *string `arg:"--db" help:"Custom database path (default: ~/.config/clipvault/clipvault.db)"`
	ConfigPath *string `arg:"--config" help:"Custom config file path (default: ~/.config/clipvault/config.yaml)"`
}

// WatchCmd runs the monitor loop until interrupted.
type WatchCmd struct {
	Verbose bool `arg:"-v,--verbose" help:"Log every recorded entry"`
}

// ListCmd lists history entries.
type ListCmd struct {
	Limit int  `arg:"-n,--limit" default:"20" help:"Maximum entries to show"`
	Tags  bool `arg:"-t,--tags" help:"Show tags"`
}

// SearchCmd fuzzy-searches history. A leading tag:<name> token filters
// by tag membership.
type SearchCmd struct {
	Query []string `arg:"positional" help:"Search query (fuzzy; tag:<name> prefix filters by tag)"`
}

// ImageCmd writes an image entry's payload.
type ImageCmd struct {
	ID   int64   `arg:"positional,required" help:"Entry ID"`
	File *string `arg:"positional" help:"Output file (stdout if omitted)"`
}

// PinCmd pins an entry.
type PinCmd struct {
	ID int64 `arg:"positional,required" help:"Entry ID"`
}

// UnpinCmd unpins an entry.
type UnpinCmd struct {
	ID int64 `arg:"positional,required" help:"Entry ID"`
}

// TagCmd manages entry tags.
type TagCmd struct {
	Add *TagAddCmd `arg:"subcommand:add" help:"Add a tag to an entry"`
	Set *TagSetCmd `arg:"subcommand:set" help:"Replace an entry's tags"`
}

// TagAddCmd adds a single tag.
type TagAddCmd struct {
	ID  int64  `arg:"positional,required" help:"Entry ID"`
	Tag string `arg:"positional,required" help:"Tag to add"`
}

// TagSetCmd replaces the tag set; no tags clears it.
type TagSetCmd struct {
	ID   int64    `arg:"positional,required" help:"Entry ID"`
	Tags []string `arg:"positional" help:"New tag set (empty clears)"`
}

// ConfigCmd manages configuration.
type ConfigCmd struct {
	Get  *ConfigGetCmd  `arg:"subcommand:get" help:"Get a configuration value"`
	Set  *ConfigSetCmd  `arg:"subcommand:set" help:"Set a configuration value"`
	List *ConfigListCmd `arg:"subcommand:list" help:"List all configuration values"`
}

// ConfigGetCmd gets one configuration value.
type ConfigGetCmd struct {
	Key string `arg:"positional,required" help:"Configuration key"`
}

// ConfigSetCmd sets one configuration value.
type ConfigSetCmd struct {
	Key   string `arg:"positional,required" help:"Configuration key"`
	Value string `arg:"positional,required" help:"New value"`
}

// ConfigListCmd lists all configuration values.
type ConfigListCmd struct{}

// ClearCmd deletes all history entries.
type ClearCmd struct {
	Force bool `arg:"-f,--force" help:"Skip confirmation"`
}

// Description returns the program description
func (Args) Description() string {
	return "clipvault - personal clipboard history with search, pinning, and sensitive-content expiry"
}

// Version returns the program version
func (Args) Version() string {
	return "clipvault 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  # Run the monitor (records clipboard changes until interrupted)
  clipvault watch

  # Browse and search
  clipvault list -n 50
  clipvault search docker compose      # fuzzy match
  clipvault search tag:work standup    # only entries tagged "work"

  # Organize
  clipvault pin 42
  clipvault unpin 42
  clipvault tag add 42 work
  clipvault tag set 42 work snippets

  # Configure
  clipvault config set store-sensitive false
  clipvault config set sensitive-ttl 300
  clipvault config list`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.List != nil && args.List.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if args.Image != nil && args.Image.ID <= 0 {
		return fmt.Errorf("entry id must be positive")
	}
	if args.Pin != nil && args.Pin.ID <= 0 {
		return fmt.Errorf("entry id must be positive")
	}
	if args.Unpin != nil && args.Unpin.ID <= 0 {
		return fmt.Errorf("entry id must be positive")
	}
	if args.Tag != nil {
		if args.Tag.Add == nil && args.Tag.Set == nil {
			return fmt.Errorf("tag requires a subcommand: add or set")
		}
	}
	if args.Config != nil {
		if args.Config.Get == nil && args.Config.Set == nil && args.Config.List == nil {
			return fmt.Errorf("config requires a subcommand: get, set, or list")
		}
	}
	return nil
}
