package cli

import (
	"fmt"

	"github.com/rcliao/life-os/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the conversation timeline, oldest first",
		Run:   runTimeline,
	}

	cmd.Flags().IntP("limit", "l", 50, "Show only the most recent N messages (0 for all)")

	RootCmd.AddCommand(cmd)
}

func runTimeline(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s := openStore(cmd, false)
	defer s.Close()

	msgs := s.records.Messages()
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	if textOutput() {
		fmt.Println(render.Timeline(msgs))
		return
	}
	printJSON(msgs)
}
