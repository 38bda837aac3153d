package main

import (
	"context"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: organize, extract, backsides, manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		p, err := newPipeline(log)
		if err != nil {
			return err
		}

		report, err := p.Run(context.Background(), teamFilter)
		if report != nil {
			report.Print(log)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
