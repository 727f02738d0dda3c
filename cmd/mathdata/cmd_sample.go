package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
)

var sampleDir string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Seed a data directory with built-in sample datasets",
	Long:  "Write the built-in sample problems for every family into a data\ndirectory, in each family's native on-disk format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := sampleDir
		if dir == "" {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			dir = cfg.Data.Dir
		}

		if err := datasets.WriteSampleFiles(dir); err != nil {
			return fmt.Errorf("write sample files: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "sample datasets written to %s\n", dir)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleDir, "dir", "", "target directory (default: configured data dir)")
}
