// Package cli implements the lifeos commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rcliao/life-os/internal/config"
	"github.com/rcliao/life-os/internal/history"
	"github.com/rcliao/life-os/internal/journal"
	"github.com/rcliao/life-os/internal/llm"
	"github.com/rcliao/life-os/internal/logging"
	"github.com/rcliao/life-os/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath   string
	dbPath       string
	driverFlag   string
	formatFlag   string
	logLevelFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "lifeos",
	Short: "A private cognitive operating system",
	Long: "Capture thoughts, decisions and goals as structured memories, then ask questions about them.\n" +
		"Run `lifeos chat` for the interactive session.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.lifeos/config.toml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $LIFE_OS_DB or ~/.lifeos/lifeos.db)")
	RootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Storage driver: sqlite, bolt or memory")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text (export/import also accept yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error or off")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if driverFlag != "" {
		cfg.Driver = driverFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}
	return cfg
}

// session is the opened state shared by every command.
type session struct {
	cfg      *config.Config
	kv       store.KV
	records  *store.Records
	logger   *zap.Logger
	closeLog func() error
}

// openStore loads config, starts logging and loads the records. interactive
// keeps log output off the terminal.
func openStore(cmd *cobra.Command, interactive bool) *session {
	cfg := loadConfig()

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: !interactive,
	})
	if err != nil {
		exitErr("init logging", err)
	}
	cmd.SetContext(logging.ContextWithLogger(commandContext(cmd), logger))

	kv, err := store.Open(cfg.Driver, cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}

	records := store.NewRecords(kv)
	if err := records.Load(cmd.Context()); err != nil {
		kv.Close()
		exitErr("load records", err)
	}
	logger.Debug("store opened", zap.String("driver", cfg.Driver), zap.String("path", cfg.DBPath))

	return &session{cfg: cfg, kv: kv, records: records, logger: logger, closeLog: closeLog}
}

func (s *session) Close() {
	if err := s.kv.Close(); err != nil {
		s.logger.Error("close store", zap.Error(err))
	}
	_ = s.closeLog()
}

// openJournal wires the model provider and history around the loaded records.
func (s *session) openJournal() *journal.Journal {
	provider, err := llm.New(llm.Options{
		Provider: s.cfg.Provider,
		BaseURL:  s.cfg.BaseURL,
	})
	if err != nil {
		exitErr("init model provider", err)
	}

	proc := journal.NewProcessor(provider)
	proc.StorageModel = s.cfg.StorageModel
	proc.RetrievalModel = s.cfg.RetrievalModel
	proc.StorageTemperature = s.cfg.StorageTemperature
	proc.ContextSize = s.cfg.ContextSize

	return journal.New(s.records, proc,
		journal.WithLogger(s.logger),
		journal.WithHistory(history.New(s.cfg.HistoryDepth)),
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
