package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Wen-Qualtu/kt-datacards/internal/pipeline"
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Identify raw PDFs and file them under processed/{team}/",
	Long: `Organize identifies the team and card type of every raw PDF in the
input directory, copies it to processed/{team}/{team}-{type}.pdf and
archives the original. PDFs that cannot be classified are moved to the
failed directory for manual review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		p, err := newPipeline(log)
		if err != nil {
			return err
		}

		report := pipeline.NewReport()
		err = p.Organize(context.Background(), report)
		report.Finish()
		report.Print(log)
		return err
	},
}

func init() {
	rootCmd.AddCommand(organizeCmd)
}
