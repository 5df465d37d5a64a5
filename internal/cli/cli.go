// Package cli implements the icview command-line interface.
//
// Every inspection command loads a layout description (--layout) into an
// in-memory session, assigns layer purposes from a layer map (--layermap,
// $ICVIEW_LAYERMAP, or the user config file) and prints the classified
// shapes.
//
// # Commands
//
//   - cells: list top-level cells with bounding boxes and shape counts
//   - layers: list loaded layers with their purposes
//   - shapes: classify a single layer and print per-cell buckets
//   - export: write a JSON snapshot of every classified layer
//   - edit: apply an edit file to layer identities
//   - browse: interactive layer browser
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/icview/pkg/buildinfo"
	"github.com/matzehuels/icview/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "icview"

	// envLayerMap names the environment variable holding a default layer map.
	envLayerMap = "ICVIEW_LAYERMAP"

	// layerMapFile is looked up in the user config directory.
	layerMapFile = "layermap.toml"
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

	layoutPath   string
	layerMapPath string
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
		Use:          appName,
		Short:        "icview inspects IC layouts by layer purpose",
		Long:         `icview loads an IC layout description, sorts the shapes of each layer into drawing, pin, label and net buckets according to a layer map, and prints, exports or browses the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.layoutPath, "layout", "l", "", "layout description file (.toml, .yaml, .json)")
	root.PersistentFlags().StringVarP(&c.layerMapPath, "layermap", "m", "", "layer map file (default $"+envLayerMap+" or the user config file)")

	root.AddCommand(c.cellsCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.shapesCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// installHooks routes classification and cache events to the debug log.
func installHooks(logger *log.Logger) {
	h := logHooks{logger: logger}
	observability.SetClassifyHooks(h)
	observability.SetCacheHooks(h)
	observability.SetEditHooks(h)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/icview/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// resolveLayerMap picks the layer map path: the flag, then $ICVIEW_LAYERMAP,
// then layermap.toml in the config directory if it exists. An empty result
// means no layer map.
func (c *CLI) resolveLayerMap() string {
	if c.layerMapPath != "" {
		return c.layerMapPath
	}
	if p := os.Getenv(envLayerMap); p != "" {
		return p
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, layerMapFile)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
