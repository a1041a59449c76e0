package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbreak/pkg/buildinfo"
	"github.com/matzehuels/flowbreak/pkg/cache"
	"github.com/matzehuels/flowbreak/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flowbreak"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "flowbreak finds optimal line and page breaks",
		Long: `flowbreak breaks text into lines and pages with a total-fit search over
boxes, glue and penalties. It places footnotes, honours keep constraints and
varying page sizes, and can show the candidate graph behind every decision.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML profile (default: ./"+pipeline.DefaultConfigFile+" when present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.linesCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the profile named by --config, or the default profile in
// the working directory if there is one.
func (c *CLI) loadConfig() (pipeline.Config, error) {
	if c.configPath != "" {
		return pipeline.LoadConfig(c.configPath)
	}
	return pipeline.LoadConfigIfExists(pipeline.DefaultConfigFile)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Without a configured
// backend the CLI caches results on disk.
func (c *CLI) newRunner(ctx context.Context, cfg cache.Config) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, cfg.Keyer(), c.Logger)
	r.TTL = cfg.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, cfg cache.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "" && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flowbreak/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
