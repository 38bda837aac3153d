package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams known to the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		p, err := newPipeline(log)
		if err != nil {
			return err
		}

		all := p.Registry().All()
		if len(all) == 0 {
			fmt.Println("No teams registered.")
			return nil
		}

		for _, team := range all {
			line := fmt.Sprintf("%s  %s", team.Slug, team.DisplayName)
			if team.Faction != "" {
				line += fmt.Sprintf("  (%s)", team.Faction)
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d team(s)\n", len(all))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(teamsCmd)
}
