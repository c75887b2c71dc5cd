package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/gowlc/internal/config"
	"github.com/bnema/gowlc/internal/ipc"
	"github.com/bnema/gowlc/internal/ui"
	"github.com/spf13/cobra"
)

var statusTimeout time.Duration

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the outputs and views of a running compositor",
	Long:  `Query the status socket of a running gowlc instance and render its latest snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Get().SocketPath()
		client := ipc.NewClientWithTimeout(path, statusTimeout)
		defer client.Close()

		status, err := client.Status()
		if errors.Is(err, ipc.ErrNotRunning) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatIndicator(false, "gowlc is not running"))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		subtitle := fmt.Sprintf("pid %d, %s backend", status.PID, status.Backend)
		if status.Script != "" {
			subtitle += ", " + status.Script
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatHeader("COMPOSITOR STATUS", subtitle))
		fmt.Fprintln(out, ui.RenderSnapshot(status.Snapshot))
		return nil
	},
}

func init() {
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 2*time.Second, "How long to wait for an answer")
}
