// Package manifest flattens the output tree into row-per-image listings
// with public raw-content URLs, for consumption by the tabletop importer.
package manifest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
)

// Entry is one published card image.
type Entry struct {
	Team string `json:"team"`
	Type string `json:"type"`
	Name string `json:"name"`
	Side string `json:"side"`
	URL  string `json:"url"`
}

// Generator walks output/{team}/{card_type}/{name}_{side}.jpg and emits
// the manifest. The directory layout is a published contract; downstream
// consumers reference the relative paths verbatim.
type Generator struct {
	outputDir string
	baseURL   string
	log       *logger.Logger
}

func New(outputDir, baseURL string, log *logger.Logger) *Generator {
	return &Generator{
		outputDir: outputDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log,
	}
}

// Collect gathers every card image in the output tree, sorted by
// team/type/name for stable manifests.
func (g *Generator) Collect() ([]Entry, error) {
	var entries []Entry

	teamDirs, err := os.ReadDir(g.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			g.log.Warn("Output directory not found: %s", g.outputDir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, teamDir := range teamDirs {
		if !teamDir.IsDir() {
			continue
		}
		teamName := teamDir.Name()

		typeDirs, err := os.ReadDir(filepath.Join(g.outputDir, teamName))
		if err != nil {
			return nil, fmt.Errorf("failed to read team directory %s: %w", teamName, err)
		}

		for _, typeDir := range typeDirs {
			if !typeDir.IsDir() {
				continue
			}
			typeName := typeDir.Name()

			files, err := os.ReadDir(filepath.Join(g.outputDir, teamName, typeName))
			if err != nil {
				return nil, fmt.Errorf("failed to read type directory %s/%s: %w", teamName, typeName, err)
			}

			for _, file := range files {
				if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".jpg") {
					continue
				}

				name, side := splitSide(file.Name())
				entries = append(entries, Entry{
					Team: teamName,
					Type: typeName,
					Name: name,
					Side: side,
					// URLs always use forward slashes regardless of OS.
					URL: fmt.Sprintf("%s/%s/%s/%s", g.baseURL, teamName, typeName, file.Name()),
				})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Team != entries[j].Team {
			return entries[i].Team < entries[j].Team
		}
		if entries[i].Type != entries[j].Type {
			return entries[i].Type < entries[j].Type
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Side < entries[j].Side
	})

	return entries, nil
}

// WriteJSON writes the manifest as JSON and returns the entry count.
func (g *Generator) WriteJSON(path string, entries []Entry) (int, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write manifest: %w", err)
	}

	g.log.Info("Generated %s with %d entries", path, len(entries))
	g.logBreakdown(entries)
	return len(entries), nil
}

// WriteCSV writes the manifest as CSV with a header row.
func (g *Generator) WriteCSV(path string, entries []Entry) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create manifest directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"team", "type", "name", "side", "url"}); err != nil {
		return 0, err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Team, e.Type, e.Name, e.Side, e.URL}); err != nil {
			return 0, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to write manifest: %w", err)
	}

	g.log.Info("Generated %s with %d entries", path, len(entries))
	return len(entries), nil
}

func (g *Generator) logBreakdown(entries []Entry) {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Team]++
	}

	teams := make([]string, 0, len(counts))
	for team := range counts {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	g.log.Debug("Breakdown by team:")
	for _, team := range teams {
		g.log.Debug("  %s: %d files", team, counts[team])
	}
}

// splitSide separates "{name}_{side}.jpg" into name and side. Files
// without a side suffix report an empty side.
func splitSide(filename string) (string, string) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, side := range []string{"front", "back"} {
		suffix := "_" + side
		if strings.HasSuffix(stem, suffix) {
			return strings.TrimSuffix(stem, suffix), side
		}
	}
	return stem, ""
}
