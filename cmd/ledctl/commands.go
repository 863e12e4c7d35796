package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/device"
	"github.com/ledctl/ledctl/internal/panel"
	"github.com/ledctl/ledctl/internal/ui"
)

func init() {
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(brightnessCmd)
	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(segmentsCmd)
}

// colorCmd sets the controller color
var colorCmd = &cobra.Command{
	Use:   "color <hex>",
	Short: "Set the LED color",
	Long: `Send a color to the controller (POST /setColor).

The color is written as #rgb or #rrggbb; the leading # is optional.`,
	Example: `  ledctl color "#ff8800" --device 192.168.4.1
  ledctl color 0f0`,
	Args: cobra.ExactArgs(1),
	RunE: runColor,
}

func runColor(cmd *cobra.Command, args []string) error {
	hex, err := parseColorArg(args[0])
	if err != nil {
		return err
	}
	rgb := color.ParseHex(hex)

	return runDeviceCommand(cmd, args, "Set Color", []ui.Field{ui.F("Color", hex)},
		func(ctx context.Context, client *device.Client) ([]ui.Field, error) {
			if err := client.SetColor(ctx, rgb); err != nil {
				return nil, err
			}
			return []ui.Field{ui.F("Color", hex), ui.F("RGB", rgb.String())}, nil
		})
}

// brightnessCmd sets the controller brightness
var brightnessCmd = &cobra.Command{
	Use:   "brightness <0-255>",
	Short: "Set the LED brightness",
	Long:  `Send a brightness level between 0 and 255 to the controller (POST /setBrightness).`,
	Example: `  ledctl brightness 128 --device 192.168.4.1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBrightness,
}

func runBrightness(cmd *cobra.Command, args []string) error {
	level, err := parseBrightness(args[0])
	if err != nil {
		return err
	}

	return runDeviceCommand(cmd, args, "Set Brightness", []ui.Field{ui.F("Level", strconv.Itoa(level))},
		func(ctx context.Context, client *device.Client) ([]ui.Field, error) {
			if err := client.SetBrightness(ctx, level); err != nil {
				return nil, err
			}
			return []ui.Field{ui.F("Brightness", strconv.Itoa(level))}, nil
		})
}

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the LEDs on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPower(cmd, args, true)
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the LEDs off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPower(cmd, args, false)
	},
}

func runPower(cmd *cobra.Command, args []string, on bool) error {
	title, state := "Turn Off", "off"
	if on {
		title, state = "Turn On", "on"
	}
	return runDeviceCommand(cmd, args, title, nil,
		func(ctx context.Context, client *device.Client) ([]ui.Field, error) {
			if err := client.SetPower(ctx, on); err != nil {
				return nil, err
			}
			return []ui.Field{ui.F("Power", state)}, nil
		})
}

// presetCmd activates a preset by ID
var presetCmd = &cobra.Command{
	Use:   "preset <id>",
	Short: "Activate a preset",
	Long: `Activate a preset on the controller (POST /setPreset).

The ID is sent as given, so presets the controller knows but the catalog
does not are still reachable. See 'ledctl presets' for the catalog.`,
	Example: `  ledctl preset blade_runner --device 192.168.4.1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPreset,
}

func runPreset(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("preset id must not be empty")
	}

	return runDeviceCommand(cmd, args, "Apply Preset", []ui.Field{ui.F("Preset", id)},
		func(ctx context.Context, client *device.Client) ([]ui.Field, error) {
			if err := client.SetPreset(ctx, id); err != nil {
				return nil, err
			}
			return []ui.Field{ui.F("Preset", id)}, nil
		})
}

// segmentsCmd sends per-segment colors
var segmentsCmd = &cobra.Command{
	Use:   "segments <segment>=<hex>...",
	Short: "Set per-segment colors",
	Long: `Send colors for individual segments (POST /setCustomLeds).

A segment is its label S1..S12 or its 0-based index 0..11. Segments not
named keep whatever the controller shows. Naming a segment twice keeps the
last color.`,
	Example: `  ledctl segments S1=#ff0000 S2=#00ff00 --device 192.168.4.1
  ledctl segments 0=f00 11=00f`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSegments,
}

func runSegments(cmd *cobra.Command, args []string) error {
	segments, err := parseSegmentArgs(args)
	if err != nil {
		return err
	}
	payload := segments.Payload()

	labels := make([]string, 0, len(payload))
	for _, seg := range payload {
		labels = append(labels, panel.SegmentLabel(seg.Segment))
	}

	return runDeviceCommand(cmd, args, "Set Segments", []ui.Field{ui.F("Segments", strings.Join(labels, ", "))},
		func(ctx context.Context, client *device.Client) ([]ui.Field, error) {
			if err := client.SetCustomLeds(ctx, payload); err != nil {
				return nil, err
			}
			details := make([]ui.Field, len(payload))
			for i, seg := range payload {
				details[i] = ui.F(labels[i], seg.RGB.Hex())
			}
			return details, nil
		})
}

// runDeviceCommand loads settings and runs op under a CommandRunner
func runDeviceCommand(cmd *cobra.Command, args []string, title string, params []ui.Field, op func(ctx context.Context, client *device.Client) ([]ui.Field, error)) error {
	s, err := prepare()
	if err != nil {
		return err
	}
	client := s.newClient()

	address := s.Device
	if address == "" {
		address = "(not set)"
	}

	runner := ui.NewCommandRunner(ui.RunnerConfig{
		Title:   title,
		Command: strings.TrimSpace(cmd.CommandPath() + " " + strings.Join(args, " ")),
		Params:  append([]ui.Field{ui.F("Device", address)}, params...),
		Output:  cmd.OutOrStdout(),
	})
	client.Observe(runner.Observe)

	return runner.Run(cmd.Context(), func(ctx context.Context) ([]ui.Field, error) {
		return op(ctx, client)
	})
}

// parseColorArg validates a color argument and returns it as #rrggbb
func parseColorArg(s string) (string, error) {
	hex, ok := color.Normalize(s)
	if !ok {
		return "", fmt.Errorf("invalid color %q: use #rgb or #rrggbb", s)
	}
	return hex, nil
}

// parseBrightness parses a level in 0..255
func parseBrightness(s string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid brightness %q: %w", s, err)
	}
	if level < 0 || level > 255 {
		return 0, fmt.Errorf("brightness %d out of range 0-255", level)
	}
	return level, nil
}

// parseSegmentArgs parses "<segment>=<hex>" pairs into assignments
func parseSegmentArgs(args []string) (panel.Segments, error) {
	var segments panel.Segments
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return segments, fmt.Errorf("invalid segment %q: use <segment>=<hex>", arg)
		}
		index, err := parseSegmentName(name)
		if err != nil {
			return segments, err
		}
		hex, err := parseColorArg(value)
		if err != nil {
			return segments, fmt.Errorf("segment %s: %w", name, err)
		}
		if err := segments.Set(index, hex); err != nil {
			return segments, err
		}
	}
	return segments, nil
}

// parseSegmentName accepts a label (S1..S12) or a 0-based index
func parseSegmentName(name string) (int, error) {
	name = strings.TrimSpace(name)
	if rest, ok := strings.CutPrefix(strings.ToUpper(name), "S"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > device.SegmentCount {
			return 0, fmt.Errorf("invalid segment label %q: use S1..S%d", name, device.SegmentCount)
		}
		return n - 1, nil
	}
	index, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("invalid segment %q: use S1..S%d or 0..%d", name, device.SegmentCount, device.SegmentCount-1)
	}
	return index, nil
}
