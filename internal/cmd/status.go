package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/erwint/claude-usage-monitor/internal/config"
	"github.com/erwint/claude-usage-monitor/internal/output"
	"github.com/erwint/claude-usage-monitor/internal/settings"
	"github.com/erwint/claude-usage-monitor/internal/status"
	"github.com/erwint/claude-usage-monitor/internal/types"
)

func newStatusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether usable Claude Code credentials are present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newMonitor()
			st := m.CheckStatus()
			if asJSON {
				if err := writeJSON(cmd, st); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), output.FormatStatus(st))
			}
			if !st.Authenticated {
				return &authRequiredError{err: fmt.Errorf("not authenticated: %s", *st.ErrorReason)}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newUsageCmd() *cobra.Command {
	var (
		asJSON bool
		layout string
	)
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Fetch and show current usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				layout = "json"
			}
			return runUsage(cmd, layout)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&layout, "layout", "", "Layout: simple|detailed (default from settings)")
	return cmd
}

func runUsage(cmd *cobra.Command, layout string) error {
	u, err := newMonitor().FetchUsageForCurrentCredentials()
	if err != nil {
		return fetchError(err)
	}
	return renderUsage(cmd, u, layout)
}

func renderUsage(cmd *cobra.Command, u *types.UsageResponse, layout string) error {
	if layout == "" {
		if path, err := settings.Path(); err == nil {
			layout = string(settings.Load(path).Layout.LayoutType)
		}
	}

	now := time.Now()
	out := cmd.OutOrStdout()
	switch settings.LayoutType(layout) {
	case "json":
		return writeJSON(cmd, u)
	case settings.LayoutDetailed:
		fmt.Fprintln(out, output.FormatUsageTable(u, now))
	case settings.LayoutSimple, "":
		fmt.Fprintln(out, output.FormatUsageLine(u, now))
	default:
		return fmt.Errorf("unknown layout %q", layout)
	}
	return nil
}

func fetchError(err error) error {
	if status.NeedsLogin(err) {
		return &authRequiredError{err: err}
	}
	return err
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the credentials file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newMonitor()
			fmt.Fprintln(cmd.OutOrStdout(), m.CredentialsFilePath())
			return nil
		},
	}
}

// overview is the JSON document the overlay front end consumes in one call.
type overview struct {
	Status types.AuthStatus     `json:"status"`
	Usage  *types.UsageResponse `json:"usage,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Report credential status and usage as one JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := newMonitor()

			// The status probe and the fetch are independent; run both.
			var (
				g        errgroup.Group
				ov       overview
				fetchErr error
			)
			g.Go(func() error {
				ov.Status = m.CheckStatus()
				return nil
			})
			g.Go(func() error {
				ov.Usage, fetchErr = m.FetchUsageForCurrentCredentials()
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}
			if fetchErr != nil {
				ov.Error = fetchErr.Error()
				config.DebugLog("Overview fetch failed: %v", fetchErr)
			}
			return writeJSON(cmd, ov)
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
