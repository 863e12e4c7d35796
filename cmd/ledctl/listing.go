package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledctl/ledctl/internal/discovery"
	"github.com/ledctl/ledctl/internal/ui"
)

func init() {
	scanCmd.Flags().Duration("scan-timeout", 0, "How long to listen for announcements (default from config, 5s)")

	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(scanCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset catalog",
	Long: `List the presets the panel offers.

The catalog comes from the presets section of the config file, or the
built-in list when the config has none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := prepare()
		if err != nil {
			return err
		}

		catalog := s.catalog()
		rows := make([][]string, len(catalog))
		for i, p := range catalog {
			rows[i] = []string{p.ID, p.Name, p.Color}
		}

		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintTable([]string{"ID", "NAME", "COLOR"}, rows)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover controllers on the local network",
	Long: `Listen for mDNS announcements and list the controllers that answer.

Use the ADDRESS column with --device, or set it as device in the config.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := prepare()
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("scan-timeout")
	if timeout <= 0 {
		timeout = s.DiscoverTimeout
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Scan", cmd.CommandPath(), ui.F("Timeout", timeout.String()))

	start := time.Now()
	devices, err := discovery.ScanForDevices(cmd.Context(), timeout)
	if err != nil {
		p.PrintError("Scan failed", err, []string{
			"Check that multicast (UDP 5353) is allowed on this network",
			"Pass the address directly with --device if it is known",
		})
		return ui.Reported(err)
	}

	if len(devices) == 0 {
		p.PrintWarning("No controllers found",
			ui.F("Duration", time.Since(start).Round(time.Millisecond).String()),
			ui.F("Hint", "make sure the controller is powered and on the same network"),
		)
		return nil
	}

	p.PrintTable(scanHeaders, scanRows(devices))
	p.PrintSuccess("Scan complete",
		ui.F("Found", strconv.Itoa(len(devices))),
		ui.F("Duration", time.Since(start).Round(time.Millisecond).String()),
	)
	return nil
}

var scanHeaders = []string{"NAME", "ADDRESS", "URL", "VERSION"}

// scanRows lays out discovered devices; VERSION comes from the "version" TXT record
func scanRows(devices []*discovery.Device) [][]string {
	rows := make([][]string, len(devices))
	for i, dev := range devices {
		version := dev.GetMetadata("version")
		if version == "" {
			version = "-"
		}
		rows[i] = []string{dev.Name, dev.Address(), dev.BaseURL(), version}
	}
	return rows
}
