package cli

import (
	"fmt"

	"github.com/rcliao/life-os/internal/render"
	"github.com/rcliao/life-os/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s := openStore(cmd, false)
	defer s.Close()

	path := s.cfg.DBPath
	if s.cfg.Driver == store.DriverMemory {
		path = ""
	}
	stats := s.records.Stats(s.cfg.Driver, path)

	if textOutput() {
		fmt.Printf("driver:     %s\n", stats.Driver)
		if stats.Path != "" {
			fmt.Printf("path:       %s (%s)\n", stats.Path, render.Size(stats.SizeBytes))
		}
		fmt.Printf("memories:   %s\n", render.Count(stats.TotalMemories))
		fmt.Printf("messages:   %s\n", render.Count(stats.TotalMessages))
		fmt.Printf("retrievals: %s\n", render.Count(stats.Retrievals))
		if len(stats.Categories) > 0 {
			fmt.Println()
			fmt.Println(render.Bars(stats.Categories, 40))
		}
		return
	}
	printJSON(stats)
}
