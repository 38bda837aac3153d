// Package teams maintains the alias table mapping free-text team name
// variants to canonical Team entries.
package teams

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
	"github.com/Wen-Qualtu/kt-datacards/pkg/slug"
)

type teamConfig struct {
	Teams map[string]teamEntry `yaml:"teams"`
}

type teamEntry struct {
	DisplayName string   `yaml:"display_name"`
	Aliases     []string `yaml:"aliases"`
	Faction     string   `yaml:"faction"`
	Army        string   `yaml:"army"`
}

// Registry resolves team names to canonical Team entries. It is loaded
// once at batch start and only grows: unknown names are auto-registered,
// nothing is ever removed during a run.
type Registry struct {
	teams map[string]*models.Team
	log   *logger.Logger
}

// Load reads the team alias table from a YAML file. A missing file is
// not an error; the registry starts empty and fills up as unknown teams
// are encountered.
func Load(path string, log *logger.Logger) (*Registry, error) {
	r := &Registry{
		teams: make(map[string]*models.Team),
		log:   log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("team config not found: %s (starting with empty registry)", path)
			return r, nil
		}
		return nil, fmt.Errorf("failed to read team config: %w", err)
	}

	var cfg teamConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse team config: %w", err)
	}

	for key, entry := range cfg.Teams {
		s := slug.Make(key)
		displayName := entry.DisplayName
		if displayName == "" {
			displayName = slug.Display(s)
		}
		r.teams[s] = &models.Team{
			Slug:        s,
			DisplayName: displayName,
			Aliases:     entry.Aliases,
			Faction:     entry.Faction,
			Army:        entry.Army,
		}
	}

	log.Info("Loaded %d teams from %s", len(r.teams), path)
	return r, nil
}

// Resolve looks up a team by name or alias. It never creates teams.
func (r *Registry) Resolve(text string) (*models.Team, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	normalized := slug.Make(text)
	if team, ok := r.teams[normalized]; ok {
		return team, true
	}

	for _, team := range r.teams {
		if team.Matches(text) {
			return team, true
		}
	}

	return nil, false
}

// GetOrCreate resolves a team, auto-registering an entry under the
// normalized slug when the name is unknown. The original spelling is
// kept as the display name.
func (r *Registry) GetOrCreate(name string) *models.Team {
	if team, ok := r.Resolve(name); ok {
		return team
	}

	s := slug.Make(name)
	team := &models.Team{
		Slug:        s,
		DisplayName: strings.TrimSpace(name),
	}
	r.teams[s] = team
	r.log.Info("Registered new team: %s", s)
	return team
}

// All returns every known team sorted by slug.
func (r *Registry) All() []*models.Team {
	all := make([]*models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		all = append(all, team)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	return all
}

// Len reports the number of registered teams.
func (r *Registry) Len() int { return len(r.teams) }
