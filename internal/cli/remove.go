package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a note",
	Long:  `Delete a note and its embedding vector by id.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note id %q", args[0])
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.Remove(id); err != nil {
		return fmt.Errorf("failed to remove note %d: %w", id, err)
	}

	fmt.Printf("Removed note %d.\n", id)
	return nil
}
