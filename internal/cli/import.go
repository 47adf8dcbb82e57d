package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rcliao/life-os/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import memories from an export",
		Long: "Import memories from a file or stdin. Expects the format produced by export;\n" +
			"YAML is read when --format yaml is set or the file ends in .yaml/.yml. Memories already present are skipped.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	useYAML := formatFlag == "yaml"
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml") {
			useYAML = true
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var export store.Export
	if useYAML {
		err = yaml.Unmarshal(data, &export)
	} else {
		err = json.Unmarshal(data, &export)
	}
	if err != nil {
		exitErr("parse export", err)
	}

	s := openStore(cmd, false)
	defer s.Close()

	imported, err := s.records.Import(cmd.Context(), export.Memories)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d,"skipped":%d}`+"\n", imported, len(export.Memories)-imported)
}
