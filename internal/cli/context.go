package cli

import (
	"fmt"

	"github.com/rcliao/life-os/internal/classify"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the memory context a question would be answered from",
		Long:  "Print the most recent memories, oldest first, exactly as they are sent with a retrieval request.",
		Run:   runContext,
	}

	cmd.Flags().IntP("size", "n", 0, "Number of memories (default: llm.context_size)")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	size, _ := cmd.Flags().GetInt("size")

	s := openStore(cmd, false)
	defer s.Close()

	if size <= 0 {
		size = s.cfg.ContextSize
	}
	fmt.Println(classify.ContextWindow(s.records.Memories(), size))
}
