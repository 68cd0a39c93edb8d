// Package main provides the CLI entrypoint for bigclock.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/nd70/bigclock/internal/clock"
	"github.com/nd70/bigclock/internal/config"
	termhost "github.com/nd70/bigclock/internal/host/term"
	"github.com/nd70/bigclock/internal/tui"
)

var (
	flagForeground      string
	flagShadowColor     string
	flagBlend           int
	flagShadowBlend     int
	flagBorder          string
	flagPadding         int
	flagScale           int
	flagIntervalMs      int
	flagMinCols         int
	flagMinRows         int
	flagShadow          bool
	flagShadowRowOffset int
	flagShadowColOffset int
	flagToggleKey       string
	flagBindToggle      bool
	flagDebug           bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := clock.Defaults()
	rootCmd := &cobra.Command{
		Use:           "bigclock",
		Short:         "Block-digit clock in a floating terminal overlay",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runClockCmd,
	}

	f := rootCmd.Flags()
	f.StringVar(&flagForeground, "fg", defaults.Foreground, "clock foreground color")
	f.StringVar(&flagShadowColor, "shadow-color", defaults.ShadowColor, "shadow foreground color")
	f.IntVar(&flagBlend, "blend", defaults.BlendMain, "clock overlay transparency (0-100)")
	f.IntVar(&flagShadowBlend, "shadow-blend", defaults.BlendShadow, "shadow overlay transparency (0-100)")
	f.StringVar(&flagBorder, "border", defaults.Border, "border style (none, normal, rounded, double, thick)")
	f.IntVar(&flagPadding, "padding", defaults.Padding, "space columns around the digits")
	f.IntVar(&flagScale, "scale", defaults.Scale, "integer digit magnification")
	f.IntVar(&flagIntervalMs, "interval-ms", int(defaults.TickInterval/time.Millisecond), "tick interval in milliseconds")
	f.IntVar(&flagMinCols, "min-cols", defaults.MinCols, "hide the clock below this many columns")
	f.IntVar(&flagMinRows, "min-rows", defaults.MinRows, "hide the clock below this many rows")
	f.BoolVar(&flagShadow, "shadow", defaults.UseShadow, "draw the offset shadow layer")
	f.IntVar(&flagShadowRowOffset, "shadow-row-offset", defaults.ShadowRowOffset, "shadow row offset")
	f.IntVar(&flagShadowColOffset, "shadow-col-offset", defaults.ShadowColOffset, "shadow column offset")
	f.StringVar(&flagToggleKey, "toggle-key", defaults.ToggleKey, "key that toggles the clock")
	f.BoolVar(&flagBindToggle, "bind-toggle", defaults.AutoBindKey, "bind the toggle key")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log recovered failures to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func runClockCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	cols, rows := 0, 0
	if w, h, sizeErr := xterm.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		cols, rows = w, h
	}

	h := termhost.New(cols, rows)
	session := clock.New(h)
	if err := session.Setup(opts); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if flagDebug {
		session.SetDebugf(logErrf)
	}

	model := tui.NewModel(h, session)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveOptions layers the TOML file under explicitly set CLI flags:
// flags win, file values win over defaults otherwise.
func resolveOptions(cmd *cobra.Command) (clock.Options, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return clock.Options{}, fmt.Errorf("failed to load config: %w", err)
	}
	cc := fileCfg.Clock
	applyStringConfig(cmd, "fg", &flagForeground, cc.Foreground)
	applyStringConfig(cmd, "shadow-color", &flagShadowColor, cc.ShadowColor)
	applyIntConfig(cmd, "blend", &flagBlend, cc.Blend)
	applyIntConfig(cmd, "shadow-blend", &flagShadowBlend, cc.ShadowBlend)
	applyStringConfig(cmd, "border", &flagBorder, cc.Border)
	applyIntConfig(cmd, "padding", &flagPadding, cc.Padding)
	applyIntConfig(cmd, "scale", &flagScale, cc.Scale)
	applyIntConfig(cmd, "interval-ms", &flagIntervalMs, cc.IntervalMs)
	applyIntConfig(cmd, "min-cols", &flagMinCols, cc.MinCols)
	applyIntConfig(cmd, "min-rows", &flagMinRows, cc.MinRows)
	applyBoolConfig(cmd, "shadow", &flagShadow, cc.Shadow)
	applyIntConfig(cmd, "shadow-row-offset", &flagShadowRowOffset, cc.ShadowRowOffset)
	applyIntConfig(cmd, "shadow-col-offset", &flagShadowColOffset, cc.ShadowColOffset)
	applyStringConfig(cmd, "toggle-key", &flagToggleKey, cc.ToggleKey)
	applyBoolConfig(cmd, "bind-toggle", &flagBindToggle, cc.BindToggle)

	interval := time.Duration(flagIntervalMs) * time.Millisecond
	return clock.Options{
		Foreground:      &flagForeground,
		ShadowColor:     &flagShadowColor,
		BlendMain:       &flagBlend,
		BlendShadow:     &flagShadowBlend,
		Border:          &flagBorder,
		Padding:         &flagPadding,
		Scale:           &flagScale,
		TickInterval:    &interval,
		MinCols:         &flagMinCols,
		MinRows:         &flagMinRows,
		UseShadow:       &flagShadow,
		ShadowRowOffset: &flagShadowRowOffset,
		ShadowColOffset: &flagShadowColOffset,
		ToggleKey:       &flagToggleKey,
		AutoBindKey:     &flagBindToggle,
	}, nil
}

// optionsFromFile builds options from the TOML file alone, for commands
// without per-option flags.
func optionsFromFile(cc config.ClockConfig) clock.Options {
	opts := clock.Options{
		Foreground:      cc.Foreground,
		ShadowColor:     cc.ShadowColor,
		BlendMain:       cc.Blend,
		BlendShadow:     cc.ShadowBlend,
		Border:          cc.Border,
		Padding:         cc.Padding,
		Scale:           cc.Scale,
		MinCols:         cc.MinCols,
		MinRows:         cc.MinRows,
		UseShadow:       cc.Shadow,
		ShadowRowOffset: cc.ShadowRowOffset,
		ShadowColOffset: cc.ShadowColOffset,
		ToggleKey:       cc.ToggleKey,
		AutoBindKey:     cc.BindToggle,
	}
	if cc.IntervalMs != nil {
		interval := time.Duration(*cc.IntervalMs) * time.Millisecond
		opts.TickInterval = &interval
	}
	return opts
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	defaults := clock.Defaults()
	return fmt.Sprintf(`# bigclock configuration
# Uncomment a value to enable it. CLI flags override config values.

[clock]
# foreground = %q         # Clock foreground color
# shadow-color = %q       # Shadow foreground color
# blend = %d                      # Clock overlay transparency (0-100)
# shadow-blend = %d              # Shadow overlay transparency (0-100)
# border = %q                # Border style (none, normal, rounded, double, thick)
# padding = %d                   # Space columns around the digits
# scale = %d                     # Integer digit magnification
# interval-ms = %d            # Tick interval in milliseconds
# min-cols = %d                 # Hide the clock below this many columns
# min-rows = %d                 # Hide the clock below this many rows
# shadow = %t                 # Draw the offset shadow layer
# shadow-row-offset = %d         # Shadow row offset
# shadow-col-offset = %d         # Shadow column offset
# toggle-key = %q              # Key that toggles the clock
# bind-toggle = %t            # Bind the toggle key
`,
		defaults.Foreground,
		defaults.ShadowColor,
		defaults.BlendMain,
		defaults.BlendShadow,
		defaults.Border,
		defaults.Padding,
		defaults.Scale,
		int(defaults.TickInterval/time.Millisecond),
		defaults.MinCols,
		defaults.MinRows,
		defaults.UseShadow,
		defaults.ShadowRowOffset,
		defaults.ShadowColOffset,
		defaults.ToggleKey,
		defaults.AutoBindKey,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format+"\n", args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
