package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Store a note",
	Long: `Store a free-text note. The text is embedded and indexed so it can be
found later by meaning.

Examples:
  semnotes add "Team meeting about budget"
  echo "Yoga class today" | semnotes add`,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	content := strings.Join(args, " ")
	if strings.TrimSpace(content) == "" {
		// No argument: read the note from stdin.
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = strings.Join(lines, "\n")
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.service.Add(content)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("Saved note %d.\n", id)
	return nil
}
