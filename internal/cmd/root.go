// Package cmd implements the claude-usage-monitor command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/credentials"
	"github.com/erwint/claude-usage-monitor/internal/output"
	"github.com/erwint/claude-usage-monitor/internal/status"
	"github.com/erwint/claude-usage-monitor/internal/usage"
)

// Exit codes for CLI commands.
const (
	ExitCodeSuccess      = 0
	ExitCodeError        = 1
	ExitCodeAuthRequired = 2
)

// authRequiredError marks failures the user fixes by logging in with the
// claude CLI.
type authRequiredError struct {
	err error
}

func (e *authRequiredError) Error() string { return e.err.Error() }
func (e *authRequiredError) Unwrap() error { return e.err }

type rootOptions struct {
	configPath      string
	credentialsPath string
	endpoint        string
	debug           bool
	noColor         bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "claude-usage-monitor",
		Short: "Show Claude Code usage quota",
		Long: `claude-usage-monitor reads the OAuth credentials stored by the Claude Code CLI
and reports the five-hour and seven-day usage windows of your subscription.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsage(cmd, "")
		},
	}
	root.SetVersionTemplate(`{{printf "claude-usage-monitor version %s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FilePath(), "Path to the YAML config file")
	flags.StringVar(&opts.credentialsPath, "credentials", "", "Credentials file (default ~/.claude/.credentials.json)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "Usage endpoint URL")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug output to the debug log")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
	flags.MarkHidden("endpoint")

	root.AddCommand(
		newStatusCmd(),
		newUsageCmd(),
		newPathCmd(),
		newOverviewCmd(),
		newSettingsCmd(),
	)
	return root
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("credentials") {
		c.CredentialsPath = o.credentialsPath
	}
	if flags.Changed("endpoint") {
		c.Endpoint = o.endpoint
	}
	if flags.Changed("debug") {
		c.Debug = o.debug
	}
	if flags.Changed("no-color") {
		c.NoColor = o.noColor
	}
	c.NoColor = !output.ShouldColor(c)
	config.Set(c)
	config.DebugLog("Running %s", cmd.CommandPath())
	return nil
}

// newMonitor wires the credential resolver and the usage client from the
// active configuration.
func newMonitor() *status.Monitor {
	cfg := config.Get()
	path := cfg.CredentialsPath
	if path == "" {
		p, err := credentials.Path()
		if err != nil {
			// Keep a displayable path; reading it will report not_found.
			config.DebugLog("Cannot determine credentials path: %v", err)
			p = filepath.Join("~", ".claude", ".credentials.json")
		}
		path = p
	}
	return status.New(path, usage.NewClient(cfg.Endpoint))
}

// Execute runs the command line and exits with a code reflecting the error.
func Execute(version string) {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "claude-usage-monitor: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	var authErr *authRequiredError
	if errors.As(err, &authErr) {
		return ExitCodeAuthRequired
	}
	return ExitCodeError
}
