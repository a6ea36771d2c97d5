package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/florinledger/florin/internal/cli"
	"github.com/florinledger/florin/internal/model"
	"github.com/florinledger/florin/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Examples:
  # Import a single file
  florin import ofx ~/Downloads/chase_jan_2024.qfx

  # Import multiple files
  florin import ofx ~/Downloads/chase_*.qfx

  # Import all QFX files in a directory
  florin import ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFileArgs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files",
		"file_count", len(files),
		"dry_run", dryRun)

	parser := ofx.NewParser()
	var drafts []model.Draft

	for _, path := range files {
		f, err := os.Open(path) // #nosec G304 -- user-supplied import path
		if err != nil {
			slog.Error("Failed to open file",
				"file", path,
				"error", err)
			continue
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file",
				"file", path,
				"error", err)
			continue
		}
		if len(parsed) == 0 {
			slog.Warn("No transactions found in file",
				"file", filepath.Base(path))
			continue
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"transactions", len(parsed))
		drafts = append(drafts, parsed...)
	}

	if len(drafts) == 0 {
		slog.Warn("No transactions found in any file")
		return nil
	}

	if dryRun {
		previewDrafts(drafts)
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	saved := saveTransactions(ctx, store, draftsToTransactions(currentUser(), drafts))
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s) from %d file(s)", saved, len(files))))

	return nil
}

// expandFileArgs resolves glob patterns and literal paths into a file list.
// Patterns that match nothing produce a warning, not an error.
func expandFileArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
