// Command vdomctl renders vnode tree files, fuzzes the keyed differ and
// serves a live document for inspection.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds state shared by all commands once flags are parsed.
type cli struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg    *config.Config
	logger *slog.Logger
}

// load reads the configuration and builds the logger. Logs go to w.
func (c *cli) load(w io.Writer) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
	}
	if c.noColor {
		c.cfg.Output.Color = false
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	if c.cfg.Output.Color {
		errors.EnableColors()
	} else {
		errors.DisableColors()
	}
	level, _ := c.cfg.SlogLevel()
	c.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "vdomctl",
		Short: "Render and inspect virtual DOM trees",
		Long: `vdomctl drives the virtual DOM renderer from the command line.

Trees are described in YAML and rendered into an in-memory document.
Commands:

  render   render tree files as successive passes and print the result
  fuzz     check the keyed differ against random list edits
  serve    keep a live document and stream its mutations over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to "+config.ConfigFileName+" (default: search from the working directory)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		renderCmd(c),
		fuzzCmd(),
		serveCmd(c),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
