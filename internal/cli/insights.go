package cli

import (
	"fmt"

	"github.com/rcliao/life-os/internal/render"
	"github.com/rcliao/life-os/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show category distribution and capture habits",
		Run:   runInsights,
	}

	RootCmd.AddCommand(cmd)
}

func runInsights(cmd *cobra.Command, args []string) {
	s := openStore(cmd, false)
	defer s.Close()

	memories := s.records.Memories()
	in := store.Summarize(memories)

	if textOutput() {
		fmt.Println(render.Insights(in, len(memories), 80))
		return
	}
	printJSON(in)
}
