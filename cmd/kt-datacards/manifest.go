package main

import (
	"github.com/spf13/cobra"

	"github.com/Wen-Qualtu/kt-datacards/internal/pipeline"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Generate the JSON and CSV URL manifests from the output tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		p, err := newPipeline(log)
		if err != nil {
			return err
		}

		report := pipeline.NewReport()
		err = p.GenerateManifest(report)
		report.Finish()
		if err == nil {
			log.Info("Manifest written with %d entries", report.ManifestEntries)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}
