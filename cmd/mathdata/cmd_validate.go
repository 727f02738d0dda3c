package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run quality checks over all loadable datasets",
	Long:  "Load every dataset and report duplicate ids, empty fields, and answers\nthat fail numeric parsing, without modifying anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, loader, err := setup()
		if err != nil {
			return err
		}

		catalog, err := loader.GetAllDatasets(cmd.Context())
		if err != nil {
			return fmt.Errorf("load datasets: %w", err)
		}

		ok := color.New(color.FgGreen).SprintFunc()
		warn := color.New(color.FgYellow).SprintFunc()

		keys := make([]string, 0, len(catalog.Tables))
		for k := range catalog.Tables {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		issueTotal := 0
		for _, key := range keys {
			report, err := validation.Validate(catalog.Tables[key])
			if err != nil {
				return fmt.Errorf("validate %s: %w", key, err)
			}

			if report.Clean() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ok("✓"), report.Summary())
				continue
			}

			issueTotal += len(report.Issues)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", warn("!"), report.Summary())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, issue := range report.Issues {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", issue.RecordID, issue.Kind, issue.Detail)
			}
			w.Flush()
		}

		for key, reason := range catalog.Failures {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not validated, load failed: %s\n", key, reason)
		}

		if issueTotal > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d issues found\n", issueTotal)
		}
		return nil
	},
}
