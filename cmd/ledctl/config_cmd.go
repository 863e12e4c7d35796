package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledctl/ledctl/internal/config"
	"github.com/ledctl/ledctl/internal/ui"
)

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config without asking")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ledctl config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with defaults and the built-in presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := v.GetString("config")
		resolved, err := configPath(path)
		if err != nil {
			return err
		}

		exists, err := config.Exists(path)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if exists && !force {
			ok := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Config exists",
				[]string{
					"A config file already exists at " + resolved,
					"Its device, preferences and presets will be replaced",
				},
				"Overwrite it?")
			if !ok {
				return nil
			}
		}

		if err := config.CreateDefaultConfig(path); err != nil {
			return err
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintSuccess("Config written", ui.F("Path", resolved))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings and the config file contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(v)
		if err != nil {
			return err
		}
		cfg, err := config.Load(v.GetString("config"))
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}

		device := s.Device
		if device == "" {
			device = "(not set)"
		}
		logFile := s.LogFile
		if logFile == "" {
			logFile = "(none)"
		}
		logLevel := s.LogLevel
		if logLevel == "" {
			logLevel = "(silent)"
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Effective Settings", s.ConfigPath,
			ui.F("Device", device),
			ui.F("Timeout", s.Timeout.String()),
			ui.F("Scan timeout", s.DiscoverTimeout.String()),
			ui.F("Log level", logLevel),
			ui.F("Log file", logFile),
			ui.F("Presets", fmt.Sprintf("%d", len(s.catalog()))),
		)
		p.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(v.GetString("config"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// configPath returns path, or the default location when empty
func configPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.GetConfigPath()
}
