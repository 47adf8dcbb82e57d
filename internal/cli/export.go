package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export memories and messages",
		Long:  "Export every memory and message as JSON, or as YAML with --format yaml.",
		Run:   runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	s := openStore(cmd, false)
	defer s.Close()

	data := s.records.ExportAll()

	var (
		b   []byte
		err error
	)
	if formatFlag == "yaml" {
		b, err = yaml.Marshal(data)
	} else {
		b, err = json.MarshalIndent(data, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		exitErr("export", err)
	}

	if output == "" {
		fmt.Print(string(b))
		return
	}
	if err := os.WriteFile(output, b, 0o600); err != nil {
		exitErr("write export", err)
	}
}
