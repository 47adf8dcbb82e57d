package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "erase",
		Short: "Erase every memory and message",
		Long:  "Erase every memory and message from the store. This cannot be undone.",
		Run:   runErase,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	RootCmd.AddCommand(cmd)
}

func runErase(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")

	s := openStore(cmd, false)
	defer s.Close()

	if !yes {
		mems, msgs := s.records.Len()
		fmt.Fprintf(os.Stderr, "Erase %d memories and %d messages? This cannot be undone. [y/N] ", mems, msgs)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
			fmt.Fprintln(os.Stderr, "aborted")
			return
		}
	}

	if err := s.records.Erase(cmd.Context()); err != nil {
		exitErr("erase", err)
	}
	fmt.Println(`{"ok":true}`)
}
