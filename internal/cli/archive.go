package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/life-os/internal/model"
	"github.com/rcliao/life-os/internal/render"
	"github.com/rcliao/life-os/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List memories, newest first",
		Run:   runArchive,
	}

	cmd.Flags().String("category", "", "Filter by category (Thought, Decision, Idea, Goal, ...)")
	cmd.Flags().StringP("tag", "t", "", "Filter by tag glob, e.g. 'work*'")
	cmd.Flags().StringP("query", "q", "", "Filter by text in content, intent or facts")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("ids-only", false, "Only output memory IDs")

	RootCmd.AddCommand(cmd)
}

func runArchive(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	tag, _ := cmd.Flags().GetString("tag")
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	var cat model.Category
	if category != "" {
		c, err := model.ParseCategory(category)
		if err != nil {
			exitErr("archive", fmt.Errorf("%w (valid: %s)", err, categoryNames()))
		}
		cat = c
	}

	s := openStore(cmd, false)
	defer s.Close()

	memories, err := s.records.Search(store.SearchParams{
		Query:      query,
		Category:   cat,
		TagPattern: tag,
		Limit:      limit,
	})
	if err != nil {
		exitErr("archive", err)
	}

	if idsOnly {
		for _, m := range memories {
			fmt.Println(m.ID)
		}
		return
	}

	if textOutput() {
		fmt.Println(render.Archive(memories, time.Now(), 80))
		return
	}
	printJSON(memories)
}

func categoryNames() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
