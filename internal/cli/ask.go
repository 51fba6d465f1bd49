package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask [request]",
		Short: "Process a free-form study request",
		Long: "Process one line of free-form text, e.g.:\n" +
			`  studycore ask "10 flashcards of react and 1 note for css"` + "\n" +
			`  studycore ask "delete all notes and flashcards"`,
		Args: cobra.MinimumNArgs(1),
		Run:  runAsk,
	}

	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	log := newLogger(cfg)
	defer log.Sync()

	s := openStore(cfg)
	defer s.Close()

	orch := buildOrchestrator(cmd, cfg, s, log)
	result := orch.ProcessRequest(cmd.Context(), strings.Join(args, " "))

	if formatFlag == "text" {
		fmt.Println(result.Summary)
		for _, c := range result.Normalized.Corrections {
			fmt.Printf("  corrected %q -> %q (%s)\n", c.Span, c.Replacement, c.Rule)
		}
		return
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
