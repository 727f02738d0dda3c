package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/persistence"
)

var (
	saveOutDir string
	saveFormat string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Load all datasets and write them to durable storage",
	Long:  "Load every dataset, then persist the normalized tables either as one\nJSON-lines file per dataset or as rows in a single SQLite database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, loader, err := setup()
		if err != nil {
			return err
		}

		catalog, err := loader.GetAllDatasets(cmd.Context())
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}
		if len(catalog.Tables) == 0 {
			return fmt.Errorf("nothing to save: no dataset loaded")
		}

		var store persistence.Store
		switch saveFormat {
		case "jsonl":
			store, err = persistence.NewJSONLStore(saveOutDir)
		case "sqlite":
			if err := os.MkdirAll(saveOutDir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			store, err = persistence.NewSQLiteStore(filepath.Join(saveOutDir, "datasets.db"))
		default:
			return fmt.Errorf("unknown format %q (want jsonl or sqlite)", saveFormat)
		}
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		if err := persistence.SaveCatalog(cmd.Context(), store, catalog); err != nil {
			return fmt.Errorf("save catalog: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "saved %d datasets to %s (%s)\n",
			len(catalog.Tables), saveOutDir, saveFormat)
		for key, reason := range catalog.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not saved, load failed: %s\n", key, reason)
		}
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVarP(&saveOutDir, "out", "o", "processed", "output directory")
	saveCmd.Flags().StringVar(&saveFormat, "format", "jsonl", "output format: jsonl or sqlite")
}
