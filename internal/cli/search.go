package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchTopK  int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search notes by meaning",
	Long: `Search stored notes by semantic similarity. Results are ranked by
distance between the query embedding and each note's embedding; smaller
distance means a closer match.

Examples:
  semnotes search -q "exercise"
  semnotes search -q "what did grandma tell me" -k 3 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

type searchResult struct {
	ID       int64   `json:"id"`
	Content  string  `json:"content"`
	Distance float64 `json:"distance"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp(!searchJSON)
	if err != nil {
		return err
	}
	defer a.Close()

	topK := GetConfig().Search.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	hits, err := a.service.Search(searchQuery, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]searchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, searchResult{
			ID:       h.Note.ID,
			Content:  h.Note.Content,
			Distance: h.Distance,
		})
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No notes stored yet.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for i, r := range results {
		fmt.Printf("%d. [%d] (distance %.4f)\n   %s\n", i+1, r.ID, r.Distance, r.Content)
	}
	return nil
}
