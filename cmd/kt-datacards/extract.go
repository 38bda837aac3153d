package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Wen-Qualtu/kt-datacards/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract card images from processed PDFs",
	Long: `Extract renders every processed PDF into per-card front/back images
under output/{team}/{card_type}/, attaches backside artwork to
single-sided cards, and records extraction metadata.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		p, err := newPipeline(log)
		if err != nil {
			return err
		}

		report := pipeline.NewReport()
		defer func() {
			report.Finish()
			report.Print(log)
		}()

		cards, hashes, err := p.Extract(context.Background(), teamFilter, report)
		if err != nil {
			return err
		}

		report.BacksidesAdded = p.AddBacksides(cards)
		return p.WriteMetadata(cards, hashes, report)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
