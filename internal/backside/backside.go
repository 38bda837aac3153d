// Package backside attaches reverse-face artwork to cards that were
// extracted with a front image only.
package backside

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

type cacheKey struct {
	team        string
	orientation string
}

// Attacher copies a substitute backside image for single-sided cards,
// preferring a team-specific image over the default for the card's
// orientation.
type Attacher struct {
	configDir string
	log       *logger.Logger
	cache     map[cacheKey]string
}

func New(configDir string, log *logger.Logger) *Attacher {
	return &Attacher{
		configDir: configDir,
		log:       log,
		cache:     make(map[cacheKey]string),
	}
}

// AddBacksides fills in the back image for every card missing one and
// returns how many were added. Cards whose front is missing or for which
// no backside artwork exists are skipped with a warning.
func (a *Attacher) AddBacksides(cards []models.Datacard) int {
	added := 0

	for i := range cards {
		card := &cards[i]

		if card.HasBack() {
			continue
		}
		if card.FrontImage == "" {
			continue
		}

		source, ok := a.backsideFor(card)
		if !ok {
			a.log.Warn("No backside found for %s/%s/%s", card.Team.Slug, card.CardType, card.Name)
			continue
		}

		dest := filepath.Join(filepath.Dir(card.FrontImage), card.BackFilename())
		if err := copyFile(source, dest); err != nil {
			a.log.Warn("Failed to copy backside to %s: %v", dest, err)
			continue
		}

		card.BackImage = dest
		added++
		a.log.Debug("Added backside: %s", dest)
	}

	return added
}

// backsideFor resolves artwork by priority: team-specific backside for
// the card's orientation, then the default backside.
func (a *Attacher) backsideFor(card *models.Datacard) (string, bool) {
	orientation := card.CardType.Orientation()
	key := cacheKey{team: card.Team.Slug, orientation: orientation}
	if path, ok := a.cache[key]; ok {
		return path, path != ""
	}

	teamBackside := filepath.Join(
		a.configDir, "team", card.Team.Slug,
		fmt.Sprintf("%s-backside-%s.jpg", card.Team.Slug, orientation),
	)
	if fileExists(teamBackside) {
		a.cache[key] = teamBackside
		return teamBackside, true
	}

	defaultBackside := filepath.Join(
		a.configDir, "default",
		fmt.Sprintf("default-backside-%s.jpg", orientation),
	)
	if fileExists(defaultBackside) {
		a.cache[key] = defaultBackside
		return defaultBackside, true
	}

	a.cache[key] = ""
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
