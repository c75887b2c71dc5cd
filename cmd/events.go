package cmd

import (
	"fmt"

	"github.com/bnema/gowlc/internal/ui"
	"github.com/bnema/gowlc/wlc"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List event kinds and their handler arguments",
	Long: `List every event kind a handler can be installed for, the arguments the
handler receives and, for events the compositor waits on, the value used when
no handler decides.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderEventKinds(wlc.EventKinds()))
	},
}
