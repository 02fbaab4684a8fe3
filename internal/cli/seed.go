package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Journal-style sample notes for trying out search without writing your own.
var seedNotes = []string{
	"Met Priya for coffee at the bookstore near college. We discussed the project idea and decided to meet again next week to finalize the proposal.",
	"Had a Zoom call with Alex and the rest of the remote team. We finalized the budget plan and talked about the upcoming product demo.",
	"Went to the park alone. Took a notebook and wrote ideas for my personal blog. Felt peaceful and productive. No distractions.",
	"Visited grandma in the afternoon. She told me stories from her youth. We had lunch together, and I fixed her TV afterwards.",
	"Caught up with Ravi after almost a year. We talked about our lives, careers, and how things have changed since college. A refreshing chat.",
	"Morning run in Central Park. 5 miles in 42 minutes. Weather was perfect, sunny but cool.",
	"Yoga class with instructor Lisa. Focused on flexibility and core strength. Feeling much more balanced.",
	"Team standup meeting with Sarah, Mike, and Jennifer. Discussed sprint planning and delivery timeline for Q3.",
	"Reading 'Atomic Habits' by James Clear. The 1% improvement concept is powerful for building consistent routines.",
	"Weekend trip to San Francisco. Visited Golden Gate Bridge and Alcatraz. Amazing views but very windy and cold.",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample notes",
	Long:  `Store a small set of journal-style sample notes for trying out search.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	bar := progressbar.NewOptions(len(seedNotes),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Seeding"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	for _, note := range seedNotes {
		if _, err := a.service.Add(note); err != nil {
			return fmt.Errorf("failed to add sample note: %w", err)
		}
		bar.Add(1)
	}

	fmt.Printf("Seeded %d sample notes. Try: semnotes search -q \"who told me stories\"\n", len(seedNotes))
	return nil
}
