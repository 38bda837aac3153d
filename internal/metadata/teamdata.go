package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
	"github.com/Wen-Qualtu/kt-datacards/pkg/slug"
)

// TeamData is the card index written next to a team's images:
// output/{team}/team_data.json. It is the content counterpart to the
// extraction metadata, which lives outside the published tree.
type TeamData struct {
	Team struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name,omitempty"`
		Faction     string `json:"faction,omitempty"`
		Army        string `json:"army,omitempty"`
	} `json:"team"`
	CardTypes map[string]map[string]TeamDataCard `json:"card_types"`
	Summary   struct {
		TotalCards int            `json:"total_cards"`
		ByType     map[string]int `json:"by_type"`
	} `json:"processing_summary"`
}

type TeamDataCard struct {
	CardName    string `json:"card_name"`
	DisplayName string `json:"display_name"`
	HasBack     bool   `json:"has_back"`
}

// BuildTeamData assembles the card index for one team from its extracted
// cards.
func BuildTeamData(team *models.Team, cards []models.Datacard) *TeamData {
	data := &TeamData{
		CardTypes: make(map[string]map[string]TeamDataCard),
	}
	data.Team.Name = team.Slug
	data.Team.DisplayName = team.DisplayName
	data.Team.Faction = team.Faction
	data.Team.Army = team.Army
	data.Summary.ByType = make(map[string]int)

	for _, card := range cards {
		typeKey := string(card.CardType)
		if data.CardTypes[typeKey] == nil {
			data.CardTypes[typeKey] = make(map[string]TeamDataCard)
		}
		data.CardTypes[typeKey][card.Name] = TeamDataCard{
			CardName:    card.Name,
			DisplayName: slug.Display(card.Name),
			HasBack:     card.HasBack(),
		}
		data.Summary.TotalCards++
		data.Summary.ByType[typeKey]++
	}

	return data
}

// WriteTeamData saves the card index under the team's output directory.
func (m *Manager) WriteTeamData(outputDir string, team *models.Team, data *TeamData) error {
	path := filepath.Join(outputDir, team.Slug, "team_data.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create team output directory: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal team data: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write team data: %w", err)
	}

	m.log.Debug("Saved team data to %s", path)
	return nil
}
