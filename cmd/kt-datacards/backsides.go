package main

import (
	"github.com/spf13/cobra"

	"github.com/Wen-Qualtu/kt-datacards/internal/pipeline"
)

var backsidesCmd = &cobra.Command{
	Use:   "backsides",
	Short: "Attach backside artwork to single-sided cards in the output tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		p, err := newPipeline(log)
		if err != nil {
			return err
		}

		report := pipeline.NewReport()
		err = p.AttachBacksides(teamFilter, report)
		report.Finish()
		report.Print(log)
		return err
	},
}

func init() {
	rootCmd.AddCommand(backsidesCmd)
}
