package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillview/studycore/internal/srs"
)

func init() {
	cmd := &cobra.Command{
		Use:   "review [card-id] [grade]",
		Short: "Grade a flashcard review",
		Long:  "Grade a flashcard and reschedule it. Grades: again, hard, good, easy.",
		Args:  cobra.ExactArgs(2),
		Run:   runReview,
	}

	RootCmd.AddCommand(cmd)
}

func runReview(cmd *cobra.Command, args []string) {
	quality, err := srs.ParseQuality(args[1])
	if err != nil {
		exitErr("review", err)
	}

	cfg := loadConfig()
	s := openStore(cfg)
	defer s.Close()

	card, err := s.ReviewCard(cmd.Context(), args[0], quality, time.Now())
	if err != nil {
		exitErr("review", err)
	}

	if formatFlag == "text" {
		fmt.Printf("next review of %s in %d day(s), due %s\n",
			card.ID, card.Review.IntervalDays, card.Review.DueAt.Format("2006-01-02"))
		return
	}

	b, _ := json.MarshalIndent(card, "", "  ")
	fmt.Println(string(b))
}
