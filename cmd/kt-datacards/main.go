// Package main is the entry point for the kt-datacards CLI, which turns
// Kill Team PDF exports into per-card images and import manifests for
// the tabletop simulator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Wen-Qualtu/kt-datacards/internal/config"
	"github.com/Wen-Qualtu/kt-datacards/internal/pipeline"
	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
)

var (
	cfgPath    string
	verbose    bool
	debug      bool
	teamFilter []string
)

var rootCmd = &cobra.Command{
	Use:   "kt-datacards",
	Short: "Extract Kill Team card images from PDF exports",
	Long: `kt-datacards converts Kill Team PDF exports into individual card
images and JSON/CSV manifests for import into the tabletop simulator.

Each pipeline stage is a subcommand: organize raw PDFs, extract card
images, attach backside artwork, and generate the URL manifest. The run
subcommand executes all of them in order.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config/settings.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode with trace logging")
	rootCmd.PersistentFlags().StringSliceVar(&teamFilter, "team", nil, "limit processing to these team slugs (repeatable)")
}

func newLogger() *logger.Logger {
	log := logger.New(logger.WithPrefix("[kt-datacards] "))
	log.SetVerbose(verbose)
	if debug {
		log.SetLevel(logger.LevelTrace)
	}
	return log
}

func newPipeline(log *logger.Logger) (*pipeline.Pipeline, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return pipeline.New(cfg, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
