package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load all datasets and print a summary",
	Long:  "Load every known dataset family and split, and summarize what loaded,\nwhat was skipped, and what failed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, loader, err := setup()
		if err != nil {
			return err
		}

		catalog, err := loader.GetAllDatasets(cmd.Context())
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}

		printCatalogSummary(cmd, catalog)
		return nil
	},
}

func printCatalogSummary(cmd *cobra.Command, catalog *datasets.Catalog) {
	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Dataset\tRecords\tSkipped\tStatus\n")
	fmt.Fprintf(w, "-------\t-------\t-------\t------\n")

	keys := make([]string, 0, len(catalog.Tables)+len(catalog.Failures))
	for k := range catalog.Tables {
		keys = append(keys, k)
	}
	for k := range catalog.Failures {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if table, loaded := catalog.Tables[key]; loaded {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", key, len(table.Problems), len(table.Skipped), ok("ok"))
			continue
		}
		fmt.Fprintf(w, "%s\t-\t-\t%s\n", key, fail("failed"))
	}
	w.Flush()

	for _, key := range keys {
		if reason, failed := catalog.Failures[key]; failed {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %s\n", key, reason)
		}
	}
}
