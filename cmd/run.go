package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/gowlc/internal/config"
	"github.com/bnema/gowlc/internal/sim"
	"github.com/bnema/gowlc/internal/ui"
	"github.com/bnema/gowlc/wlc"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script.js]",
	Short: "Run the compositor",
	Long: `Run the compositor on libwlc with handlers from a JavaScript file.
The script path defaults to script.path from the config file. libwlc reads
its backend settings (WLC_DRM_DEVICE, WLC_XWAYLAND, ...) from native.env.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompositor,
}

func runCompositor(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	scriptPath := cfg.Script.Path
	if len(args) == 1 {
		scriptPath = args[0]
	}

	if cfg.Native.Backend == "sim" {
		return fmt.Errorf("the sim backend needs a scenario, use 'gowlc simulate'")
	}
	native, err := wlc.NewNative()
	if err != nil {
		return &ExitError{Status: wlc.ExitInitFailed, Err: fmt.Errorf("%w: %w", wlc.ErrInitializationFailed, err)}
	}

	s, err := newSession(native, cfg, scriptPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.run(cfg.NativeEnv())
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml> [script.js]",
	Short: "Replay a scenario against a script",
	Long: `Replay a YAML scenario of compositor events through the binding without
a display, printing what the native side got back for every step.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := *config.Get()
	cfg.Native.Backend = "sim"
	// A simulation must not take over the socket of a real instance.
	cfg.IPC.Enabled = false

	scenario, err := sim.Load(args[0])
	if err != nil {
		return err
	}

	scriptPath := ""
	if len(args) == 2 {
		scriptPath = args[1]
	}

	native := sim.New(scenario)
	s, err := newSession(native, &cfg, scriptPath)
	if err != nil {
		return err
	}
	defer s.Close()

	runErr := s.run(cfg.NativeEnv())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FormatHeader("SIMULATION", scenario.Name))
	for _, r := range native.Results() {
		fmt.Fprintln(out, ui.FormatStep(r.Step, r.Event, r.Returned))
	}
	for _, argv := range native.Execs() {
		fmt.Fprintln(out, ui.SubtleStyle.Render("exec "+strings.Join(argv, " ")))
	}
	return runErr
}
