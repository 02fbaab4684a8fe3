package cli

import (
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"semnotes/internal/adapter/fs"
)

var (
	importIncludes []string
	importExcludes []string
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import text files as notes",
	Long: `Import matching files under a directory, one note per file.

Examples:
  semnotes import ./journal
  semnotes import ./docs --include "**/*.md" --exclude "**/drafts/**"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringSliceVar(&importIncludes, "include", nil, "include glob patterns (default **/*.txt, **/*.md)")
	importCmd.Flags().StringSliceVar(&importExcludes, "exclude", nil, "exclude glob patterns")
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	walker := fs.NewWalker(importIncludes, importExcludes)
	files, err := walker.Walk(dir)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found.")
		return nil
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	imported := 0
	var skipped []string
	for _, file := range files {
		content, err := fs.ReadFile(file.Path)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", file.Path, err))
			bar.Add(1)
			continue
		}
		if strings.TrimSpace(content) == "" {
			skipped = append(skipped, fmt.Sprintf("%s: empty", file.Path))
			bar.Add(1)
			continue
		}
		if _, err := a.service.Add(content); err != nil {
			return fmt.Errorf("failed to import %s: %w", file.Path, err)
		}
		imported++
		bar.Add(1)
	}

	fmt.Printf("Imported %d notes from %s.\n", imported, dir)
	for _, s := range skipped {
		fmt.Printf("  skipped %s\n", s)
	}
	return nil
}
