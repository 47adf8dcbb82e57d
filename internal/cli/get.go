package cli

import (
	"fmt"
	"time"

	"github.com/rcliao/life-os/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one memory",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	s := openStore(cmd, false)
	defer s.Close()

	mem, err := s.records.Get(args[0])
	if err != nil {
		exitErr("get", err)
	}

	if textOutput() {
		fmt.Println(render.Card(mem, time.Now(), 80))
		return
	}
	printJSON(mem)
}
