package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Long:  `List every stored note, ordered by id.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

type listedNote struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(!listJSON)
	if err != nil {
		return err
	}
	defer a.Close()

	notes, err := a.service.GetAll()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if listJSON {
		out := make([]listedNote, 0, len(notes))
		for _, n := range notes {
			out = append(out, listedNote{
				ID:        n.ID,
				Content:   n.Content,
				CreatedAt: n.CreatedAt.Format(time.RFC3339),
			})
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if len(notes) == 0 {
		fmt.Println("No notes stored yet.")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("[%d] %s  (%s)\n", n.ID, n.Content, n.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\n%d notes total.\n", len(notes))
	return nil
}
