// Package commands implements the CLI commands for fusionary.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/fusionary/internal/app"
	"go.trai.ch/fusionary/internal/build"
)

// CLI represents the command line interface for fusionary.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command

	mode    string
	dir     string
	json    bool
	verbose bool
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Inspect(ctx context.Context, opts app.InspectOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// LogSettings is implemented by loggers whose format and level can be switched.
type LogSettings interface {
	SetJSON(enabled bool)
	SetVerbose(enabled bool)
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogSettings lets --json and --verbose reconfigure the logger.
func WithLogSettings(l LogSettings) Option {
	return func(c *CLI) {
		c.logs = l
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fusionary",
		Short:         "Composable asset pipeline configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.mode, "mode", "m", "", "Build mode: development or production (default from NODE_ENV)")
	flags.StringVarP(&c.dir, "dir", "C", "", "Directory to start looking for fusionary.yaml in")
	flags.BoolVar(&c.json, "json", false, "Write logs as JSON")
	flags.BoolVar(&c.verbose, "verbose", false, "Show debug logs")

	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if c.logs == nil {
			return
		}
		c.logs.SetJSON(c.json)
		c.logs.SetVerbose(c.verbose)
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) passOptions() app.PassOptions {
	return app.PassOptions{Dir: c.dir, Mode: c.mode}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
