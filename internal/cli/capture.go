package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rcliao/life-os/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "capture [text]",
		Short: "Capture a memory or ask a question",
		Long: "Submit one input. Questions such as \"what did I say about...\" are answered from your memories;\n" +
			"anything else is analyzed and stored. Input can be a positional arg or piped via stdin.",
		Run: runCapture,
	}

	RootCmd.AddCommand(cmd)
}

func runCapture(cmd *cobra.Command, args []string) {
	// Get input: positional arg first, then check stdin
	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			input = string(b)
		}
	}
	input = strings.TrimSpace(input)
	if input == "" {
		exitErr("capture", fmt.Errorf("input is required (positional arg or stdin)"))
	}

	s := openStore(cmd, false)
	defer s.Close()

	j := s.openJournal()
	reply, err := j.Submit(cmd.Context(), input)
	if err != nil {
		exitErr("capture", err)
	}
	if reply == nil {
		exitErr("capture", errors.New("the model call failed; your input was kept in the timeline"))
	}

	if reply.IsRetrieval {
		if textOutput() {
			fmt.Println(reply.Content)
			return
		}
		printJSON(reply)
		return
	}

	mem := j.Memories()[0]
	if textOutput() {
		fmt.Println(render.Card(mem, time.Now(), 80))
		return
	}
	printJSON(mem)
}
