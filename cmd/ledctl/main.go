// Ledctl is a control panel for addressable-LED controllers on the local network.
//
// It drives the controller's HTTP API: power, brightness, color, presets
// and per-segment colors. Running without arguments opens the full-screen
// panel; subcommands send a single command and exit.
//
// Usage:
//
//	ledctl [command] [flags]
//
// See 'ledctl --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledctl/ledctl/internal/ui"
	"github.com/ledctl/ledctl/internal/version"
)

// envPrefix namespaces the environment variables bound to flags (LEDCTL_DEVICE, ...)
const envPrefix = "LEDCTL"

// v holds flag and environment values; config file values are merged in loadSettings
var v = viper.New()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !ui.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ledctl",
	Short: "LED controller control panel",
	Long: `Control an addressable-LED controller over the local network.

Toggle power, set brightness, pick colors, apply presets and assign
colors to the controller's 12 segments.

If no command is specified, the interactive panel launches.`,
	Example: `  # Open the panel for a known controller
  ledctl --device 192.168.4.1

  # Find controllers on the network
  ledctl scan

  # One-shot commands
  ledctl color "#ff8800" --device 192.168.4.1
  LEDCTL_DEVICE=192.168.4.1 ledctl preset blade_runner`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runPanel,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.String("device", "", "Controller address, host or host:port (env LEDCTL_DEVICE)")
	flags.Duration("timeout", 10*time.Second, "Per-request timeout, 0 disables it (env LEDCTL_TIMEOUT)")
	flags.String("config", "", "Config file (default is the platform config dir, env LEDCTL_CONFIG)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (env LEDCTL_LOG_LEVEL)")

	for _, name := range []string{"device", "timeout", "config", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	configureViper(v)

	rootCmd.AddCommand(versionCmd)
}

// configureViper binds LEDCTL_* environment variables to flag keys
func configureViper(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ledctl %s\n%s\n", version.Full(), version.Platform())
	},
}
