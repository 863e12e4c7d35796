package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledctl/ledctl/internal/logging"
	"github.com/ledctl/ledctl/internal/tui"
	"github.com/ledctl/ledctl/internal/ui"
)

func init() {
	rootCmd.AddCommand(panelCmd)
}

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Open the interactive control panel",
	Long: `Open the full-screen control panel.

The panel has four tabs: Control (address, power, brightness), Color,
Presets and Segments. Press ? inside the panel for key bindings.

The panel draws over the whole terminal, so logs only go to the file set
by log_file in the config.`,
	Args: cobra.NoArgs,
	RunE: runPanel,
}

func runPanel(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return fmt.Errorf("the panel needs an interactive terminal; use a subcommand such as 'ledctl color' in scripts")
	}

	s, err := loadSettings(v)
	if err != nil {
		return err
	}

	if s.LogFile == "" {
		logging.SetLogger(zap.NewNop())
	} else if err := logging.Initialize(panelLogLevel(s.LogLevel), s.LogFile); err != nil {
		return err
	}
	defer logging.Sync()

	logging.Info("panel starting",
		zap.String("device", s.Device),
		zap.Duration("timeout", s.Timeout),
	)

	return tui.Run(cmd.Context(), tui.Options{
		Client:      s.newClient(),
		Address:     s.Device,
		Presets:     s.Presets,
		ScanTimeout: s.DiscoverTimeout,
	})
}

// panelLogLevel defaults to info so a configured log file is never left empty
func panelLogLevel(level string) string {
	if level == "" {
		return "info"
	}
	return level
}
