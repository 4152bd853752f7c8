package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erwint/claude-usage-monitor/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change monitor settings",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if path != "" {
				return nil
			}
			p, err := settings.Path()
			if err != nil {
				return err
			}
			path = p
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&path, "file", "", "Settings file (default ~/.claude-usage-monitor/settings.json)")

	update := func(fn func(*settings.AppSettings) error) error {
		s := settings.Load(path)
		if err := fn(&s); err != nil {
			return err
		}
		return settings.Save(path, s)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return writeJSON(cmd, struct {
					settings.AppSettings
					Platform string `json:"platform"`
				}{settings.Load(path), settings.PlatformName()})
			},
		},
		&cobra.Command{
			Use:   "set-shortcut <modifier> <key>",
			Short: "Set the overlay shortcut, e.g. ctrl+shift u",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				sc := settings.ShortcutConfig{Modifier: args[0], Key: args[1]}
				if _, err := settings.ParseShortcut(sc); err != nil {
					return err
				}
				return update(func(s *settings.AppSettings) error {
					s.Shortcut = sc
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set-layout <simple|detailed>",
			Short: "Set how usage is rendered",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				layout := settings.LayoutType(args[0])
				if layout != settings.LayoutSimple && layout != settings.LayoutDetailed {
					return fmt.Errorf("unknown layout %q", args[0])
				}
				return update(func(s *settings.AppSettings) error {
					s.Layout.LayoutType = layout
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "complete-first-launch",
			Short: "Mark onboarding as done",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return update(func(s *settings.AppSettings) error {
					s.FirstLaunch = false
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the settings file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.Reset(path)
			},
		},
	)
	return cmd
}
