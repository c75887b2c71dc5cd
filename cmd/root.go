package cmd

import (
	"fmt"

	"github.com/bnema/gowlc/internal/config"
	"github.com/bnema/gowlc/internal/logger"
	"github.com/bnema/gowlc/wlc"
	"github.com/spf13/cobra"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configPath string

	rootCmd = &cobra.Command{
		Use:   "gowlc",
		Short: "gowlc - script a libwlc compositor",
		Long: `gowlc drives a libwlc-based Wayland compositor from Go or JavaScript.
Handlers react to output, view, keyboard and pointer events; a status socket
exposes the live outputs and views to other processes.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

// ExitError carries a non-OK loop status out of a command so main can use
// it as the process exit code.
type ExitError struct {
	Status wlc.ExitStatus
	Err    error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("compositor exited: %s", e.Status)
	}
	return fmt.Sprintf("compositor exited: %s: %v", e.Status, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Code is the process exit code for this status.
func (e *ExitError) Code() int {
	if e.Status == wlc.ExitOK {
		return 1
	}
	return int(e.Status)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		config.SetConfigPath(configPath)
	}
	if err := config.Init(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(config.Get().Logging.LogLevel)
	return nil
}
