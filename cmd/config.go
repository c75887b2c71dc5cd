package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bnema/gowlc/internal/config"
	"github.com/bnema/gowlc/internal/logger"
	"github.com/bnema/gowlc/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gowlc configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, ui.FormatHeader("CONFIGURATION", config.GetConfigPath()))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[native]"))
		fmt.Fprintln(out, ui.FormatKeyValue("  backend", cfg.Native.Backend))
		keys := make([]string, 0, len(cfg.Native.Env))
		for k := range cfg.Native.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintln(out, ui.FormatKeyValue("  env."+strings.ToUpper(k), cfg.Native.Env[k]))
		}

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[script]"))
		fmt.Fprintln(out, ui.FormatKeyValue("  path", orNone(cfg.Script.Path)))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[ipc]"))
		fmt.Fprintln(out, ui.FormatKeyValue("  enabled", fmt.Sprint(cfg.IPC.Enabled)))
		fmt.Fprintln(out, ui.FormatKeyValue("  socket", cfg.SocketPath()))

		fmt.Fprintln(out, ui.SubheaderStyle.Render("[logging]"))
		fmt.Fprintln(out, ui.FormatKeyValue("  log_level", orNone(cfg.Logging.LogLevel)))
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				logger.Infof("Configuration file already exists at: %s", configPath)
				logger.Info("Use --force to overwrite")
				return nil
			}
			// Start from defaults, not from what the existing file set.
			defaults := config.DefaultConfig
			config.Set(&defaults)
		}

		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration initialized at: %s", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
