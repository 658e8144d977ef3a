// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-server/internal/store"
	"github.com/pdiddy/resume-server/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored resumes to a YAML file",
	Long: `Export writes every resume in the database, grouped with its owner's
email, to a YAML file. Useful for backups and for inspecting the store
without a SQLite client.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	out, _ := cmd.Flags().GetString("out")

	st, err := store.NewStore(types.StorageConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.ExportYAML(context.Background(), out)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d resume(s) to %s\n", n, out)
	return nil
}

func init() {
	exportCmd.Flags().String("data-dir", "data", "directory for the SQLite database")
	exportCmd.Flags().String("out", "data/export.yaml", "output file path")

	rootCmd.AddCommand(exportCmd)
}
