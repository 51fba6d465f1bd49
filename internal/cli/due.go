package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List flashcards due for review",
		Run:   runDue,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum cards to list (0 = no limit)")

	RootCmd.AddCommand(cmd)
}

func runDue(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	cards, err := s.DueCards(cmd.Context(), time.Now(), limit)
	if err != nil {
		exitErr("due", err)
	}

	if formatFlag == "text" {
		if len(cards) == 0 {
			fmt.Println("no cards due")
			return
		}
		for _, c := range cards {
			fmt.Printf("%s  [%s]  %s\n", c.ID, c.Topic, c.Front)
		}
		return
	}

	b, _ := json.MarshalIndent(cards, "", "  ")
	fmt.Println(string(b))
}
