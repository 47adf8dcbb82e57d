package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/life-os/internal/render"
	"github.com/rcliao/life-os/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search memories by keyword",
		Long:  "Search memory content, intent and extracted facts for matching text. No model call is made.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s := openStore(cmd, false)
	defer s.Close()

	results, err := s.records.Search(store.SearchParams{
		Query: query,
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if textOutput() {
		fmt.Println(render.Archive(results, time.Now(), 80))
		return
	}
	printJSON(results)
}
