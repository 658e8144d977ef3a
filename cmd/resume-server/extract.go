// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-server/internal/pipeline"
	"github.com/pdiddy/resume-server/internal/soffice"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract plain text from a .doc or .docx file",
	Long: `Extract runs a local file through the same pipeline the /api/convert
endpoint uses and prints the extracted text to stdout. Legacy .doc files
require a libreoffice binary on PATH.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	convertTimeout, _ := cmd.Flags().GetDuration("convert-timeout")
	tempDir, _ := cmd.Flags().GetString("temp-dir")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	converter := soffice.New(soffice.Config{
		Timeout: convertTimeout,
		TempDir: tempDir,
		Logger:  logger,
	})
	pipe := pipeline.New(converter, logger)

	text, err := pipe.ExtractText(context.Background(), filepath.Base(args[0]), data)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}

func init() {
	extractCmd.Flags().Duration("convert-timeout", soffice.DefaultTimeout, "timeout for a single LibreOffice conversion")
	extractCmd.Flags().String("temp-dir", "", "parent directory for conversion scratch workspaces (default system temp)")

	rootCmd.AddCommand(extractCmd)
}
