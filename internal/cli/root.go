// Package cli implements the studycore CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quillview/studycore/internal/config"
	"github.com/quillview/studycore/internal/gen"
	"github.com/quillview/studycore/internal/lexicon"
	"github.com/quillview/studycore/internal/llm"
	"github.com/quillview/studycore/internal/orchestrator"
	"github.com/quillview/studycore/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "studycore",
	Short: "Free-form study assistant",
	Long: "studycore turns one line of free-form text into study content: " +
		"notes, flashcards with spaced-repetition review, and study plans. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $STUDYCORE_DB or ~/.studycore/studycore.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.studycore/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	return cfg
}

func openStore(cfg config.Config) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		exitErr("open store", err)
	}
	return s
}

func newLogger(cfg config.Config) *zap.Logger {
	level := zapcore.WarnLevel
	if err := level.Set(cfg.LogLevel); err != nil {
		level = zapcore.WarnLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// buildOrchestrator wires the pipeline over the store: Gemini-backed
// generation when an API key is configured, offline templates otherwise.
func buildOrchestrator(cmd *cobra.Command, cfg config.Config, s *store.SQLiteStore, log *zap.Logger) *orchestrator.Orchestrator {
	var generator gen.ContentGenerator = gen.Offline{}
	if cfg.LLM.APIKey != "" {
		g, err := llm.NewGeminiGenerator(cmd.Context(), cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			exitErr("create llm client", err)
		}
		generator = g
	} else {
		log.Debug("no API key configured, using offline generator")
	}

	return orchestrator.New(orchestrator.Options{
		Lexicon:  lexicon.New(cfg.LexiconOptions()),
		Registry: orchestrator.DefaultRegistry(generator, s, s),
		Logger:   log,
	})
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
