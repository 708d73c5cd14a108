// ABOUTME: Export, import, and reset commands for the whole journal.
// ABOUTME: Imports merge through the store, one entry per day.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/gratitude/internal/export"
	"github.com/harper/gratitude/internal/models"
	"github.com/harper/gratitude/internal/ui"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries",
		Long:  `Export all entries to JSON or a directory of markdown files.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			outputPath, _ := cmd.Flags().GetString("output")

			entries, err := a.entries.All()
			if err != nil {
				return fmt.Errorf("failed to read entries: %w", err)
			}

			switch format {
			case "json":
				return exportJSON(a, entries, outputPath)
			case "md":
				return exportMarkdown(a, entries, outputPath)
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	cmd.Flags().StringP("output", "o", "", "output path")
	return cmd
}

func exportJSON(a *app, entries []models.Entry, outputPath string) error {
	data, err := export.JSON(entries, a.loc, a.now())
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %d entries to %s", len(entries), outputPath)))
	return nil
}

func exportMarkdown(a *app, entries []models.Entry, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	files, err := export.Markdown(entries, a.loc)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(outputDir, f.Name), f.Data, 0600); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d entries to %s", len(files), outputDir)))
	return nil
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import entries",
		Long: `Import entries from a JSON export or a directory of markdown files.

An imported entry replaces the text of any entry already on the same day.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat path: %w", err)
			}

			var entries []models.Entry
			switch {
			case info.IsDir():
				entries, err = readMarkdownDir(a, path)
			case strings.HasSuffix(path, ".json"):
				var data []byte
				data, err = os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
				if err == nil {
					entries, err = export.ParseJSON(data, a.loc)
				}
			default:
				var data []byte
				data, err = os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
				if err == nil {
					var e models.Entry
					e, err = export.ParseMarkdown(path, data, a.loc)
					entries = []models.Entry{e}
				}
			}
			if err != nil {
				return err
			}

			count, failed := 0, 0
			for _, e := range entries {
				if strings.TrimSpace(e.Content) == "" {
					fmt.Printf("Warning: skipping empty entry for %s\n", e.Day(a.loc))
					continue
				}
				if err := a.entries.Upsert(e); err != nil {
					fmt.Printf("Warning: failed to import %s: %v\n", e.Day(a.loc), err)
					failed++
					continue
				}
				count++
			}

			fmt.Println(ui.Success(fmt.Sprintf("Imported %d entries", count)))
			if failed > 0 {
				return fmt.Errorf("%d of %d entries were not saved", failed, len(entries))
			}
			return nil
		},
	}
}

func readMarkdownDir(a *app, dir string) ([]models.Entry, error) {
	var entries []models.Entry
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		data, err := os.ReadFile(path) //nolint:gosec // Walking a user-specified directory
		if err != nil {
			return err
		}
		e, err := export.ParseMarkdown(path, data, a.loc)
		if errors.Is(err, export.ErrNoDate) {
			fmt.Printf("Warning: skipping %s: %v\n", path, err)
			return nil
		}
		if err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	})
	return entries, err
}

func newResetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every entry",
		Long: `Delete every entry and survey result. This cannot be undone.

Use --settings to also reset preferences and remove the passcode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			withSettings, _ := cmd.Flags().GetBool("settings")

			if !force {
				fmt.Println("This will DELETE every gratitude entry and survey result.")
				if withSettings {
					fmt.Println("Preferences and the passcode will be reset too.")
				}
				if !confirm(os.Stdin, "\nType 'reset' to confirm: ", "reset") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := a.entries.Clear(); err != nil {
				return err
			}
			if err := a.surveys.Clear(); err != nil {
				return err
			}
			if withSettings {
				if err := a.settings.Reset(); err != nil {
					return err
				}
			}

			fmt.Println(ui.Success("Journal reset"))
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "skip confirmation")
	cmd.Flags().Bool("settings", false, "also reset preferences and passcode")
	return cmd
}
