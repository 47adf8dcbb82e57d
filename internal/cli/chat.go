package cli

import (
	"github.com/rcliao/life-os/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive session",
		Long: "Open the interactive session: capture memories, ask questions, browse the archive and insights.\n" +
			"Keys: tab switches views, ctrl+z undo, ctrl+y redo, ctrl+x erase, /copy copies the last answer.",
		Run: runChat,
	}

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	s := openStore(cmd, true)
	defer s.Close()

	j := s.openJournal()
	if err := tui.Run(cmd.Context(), j); err != nil {
		exitErr("chat", err)
	}
}
