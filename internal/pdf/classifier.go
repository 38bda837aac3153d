package pdf

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Wen-Qualtu/kt-datacards/internal/teams"
	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
	"github.com/Wen-Qualtu/kt-datacards/pkg/slug"
)

// ErrClassificationFailed means neither the filename nor the page content
// yielded a confident team/type match. Callers surface it for manual
// review; identity is never guessed.
var ErrClassificationFailed = errors.New("classification failed")

// Classification is the resolved identity of a PDF.
type Classification struct {
	Team         *models.Team
	CardType     models.CardType
	Confidence   models.Confidence
	FromFilename bool
}

// Classifier determines which team and card type a PDF belongs to,
// preferring filename tokens over content heuristics. Filenames are
// curated during the organizing step and are more reliable than text
// extraction.
type Classifier struct {
	registry *teams.Registry
	log      *logger.Logger
}

func NewClassifier(registry *teams.Registry, log *logger.Logger) *Classifier {
	return &Classifier{
		registry: registry,
		log:      log,
	}
}

// Classify resolves team and card type for a PDF given the text blocks
// of its first page. Returns ErrClassificationFailed when no confident
// match exists.
func (c *Classifier) Classify(pdfPath string, firstPage []models.TextBlock) (Classification, error) {
	name := filepath.Base(pdfPath)

	cardType, typeFromFile := CardTypeFromFilename(pdfPath)
	if !typeFromFile {
		var ok bool
		cardType, ok = CardTypeFromBlocks(firstPage)
		if !ok {
			return Classification{}, fmt.Errorf("%w: no card type match for %s", ErrClassificationFailed, name)
		}
	}

	team, teamFromFile := c.TeamFromFilename(pdfPath)
	if !teamFromFile {
		teamName, ok := TeamNameFromBlocks(firstPage, cardType)
		if !ok {
			return Classification{}, fmt.Errorf("%w: no team name found in %s", ErrClassificationFailed, name)
		}
		team = c.registry.GetOrCreate(teamName)
	}

	confidence := models.ConfidenceHigh
	if typeFromFile != teamFromFile {
		confidence = models.ConfidenceMedium
	}

	c.log.Debug("Classified %s as %s/%s (from filename: %v)", name, team.Slug, cardType, typeFromFile && teamFromFile)

	return Classification{
		Team:         team,
		CardType:     cardType,
		Confidence:   confidence,
		FromFilename: typeFromFile && teamFromFile,
	}, nil
}

// CardTypeFromFilename matches a card-type token in the filename,
// accepting singular/plural and spacing variants.
func CardTypeFromFilename(path string) (models.CardType, bool) {
	stem := filenameStem(path)
	for _, ct := range models.AllCardTypes() {
		for _, variant := range ct.Variants() {
			if strings.Contains(stem, variant) {
				return ct, true
			}
		}
	}
	return "", false
}

// TeamFromFilename strips the card-type token from the filename and
// resolves the remainder against the alias table. Only known teams
// match; filename garbage never auto-registers a team.
func (c *Classifier) TeamFromFilename(path string) (*models.Team, bool) {
	remainder := filenameStem(path)

	if ct, ok := CardTypeFromFilename(path); ok {
		for _, variant := range ct.Variants() {
			remainder = strings.ReplaceAll(remainder, variant, "")
		}
	}
	remainder = slug.Make(remainder)
	if remainder == "" {
		return nil, false
	}

	return c.registry.Resolve(remainder)
}

// CardTypeFromBlocks infers the card type from page content: literal
// type-header strings first, the operatives archetype bar, then the
// datacard stat block as a last resort.
func CardTypeFromBlocks(blocks []models.TextBlock) (models.CardType, bool) {
	var joined strings.Builder
	for _, block := range blocks {
		joined.WriteString(strings.ToUpper(block.Text))
		joined.WriteByte('\n')
	}
	allText := joined.String()
	hasArchetype := strings.Contains(allText, "ARCHETYPE")

	for i, block := range blocks {
		if i >= 30 {
			break
		}
		upper := strings.ToUpper(strings.TrimSpace(block.Text))

		if upper == "OPERATIVES" && hasArchetype {
			return models.CardTypeOperatives, true
		}

		switch {
		case strings.Contains(upper, "STRATEGY PLOY"), strings.Contains(upper, "STRATEGIC PLOY"):
			return models.CardTypeStrategyPloys, true
		case strings.Contains(upper, "FIREFIGHT PLOY"):
			return models.CardTypeFirefightPloys, true
		case strings.Contains(upper, "FACTION EQUIPMENT"):
			return models.CardTypeEquipment, true
		case strings.Contains(upper, "FACTION RULE"):
			return models.CardTypeFactionRules, true
		}
	}

	// Stat labels identify datacards; require most of the block so a
	// stray "MOVE" in rules text does not trigger it.
	statCount := 0
	for _, label := range datacardStatLabels {
		if strings.Contains(allText, label) {
			statCount++
		}
	}
	if statCount >= 3 {
		return models.CardTypeDatacards, true
	}

	return "", false
}

// TeamNameFromBlocks extracts the raw team name from page content
// according to the card type's layout.
func TeamNameFromBlocks(blocks []models.TextBlock, cardType models.CardType) (string, bool) {
	spec := layouts[cardType]

	if spec.teamFromMetadataBar {
		return teamFromMetadataBar(blocks)
	}

	// Operative-selection cards: "TEAM NAME KILL TEAM" in the first lines.
	if spec.teamSuffix != "" {
		for i, block := range blocks {
			if i >= 2 {
				break
			}
			upper := strings.ToUpper(strings.TrimSpace(block.Text))
			if strings.HasSuffix(upper, spec.teamSuffix) {
				name := strings.TrimSpace(strings.TrimSuffix(upper, spec.teamSuffix))
				if name != "" {
					return name, true
				}
			}
		}
	}

	// The team name is the first text item by vertical order, before the
	// literal type header.
	for i, block := range blocks {
		if i >= 20 {
			break
		}
		text := strings.TrimSpace(block.Text)
		upper := strings.ToUpper(text)
		if text == "" {
			continue
		}
		if isTypeHeader(upper) {
			break
		}
		words := strings.Fields(text)
		if len(words) >= 1 && len(words) <= 5 && len(text) > 3 && isAllCaps(text) {
			return text, true
		}
	}

	return "", false
}

// teamFromMetadataBar finds the datacard bottom bar formatted as
// "TEAM NAME, FACTION, KEYWORDS..." and returns its first segment with
// any trailing operative role stripped.
func teamFromMetadataBar(blocks []models.TextBlock) (string, bool) {
	start := len(blocks) - 15
	if start < 0 {
		start = 0
	}
	for i := len(blocks) - 1; i >= start; i-- {
		text := strings.TrimSpace(blocks[i].Text)
		if strings.Count(text, ",") < 2 || !isAllCaps(text) {
			continue
		}
		first := stripRoleKeywords(strings.TrimSpace(strings.SplitN(text, ",", 2)[0]))
		if first != "" {
			return first, true
		}
	}
	return "", false
}

// stripRoleKeywords cuts the segment at the first operative-role word,
// so "PLAGUE MARINE LEADER" yields "PLAGUE MARINE".
func stripRoleKeywords(segment string) string {
	words := strings.Fields(segment)
	kept := words[:0]
	for _, word := range words {
		upper := strings.ToUpper(word)
		isRole := false
		for _, role := range datacardRoleKeywords {
			if strings.Contains(upper, role) {
				isRole = true
				break
			}
		}
		if isRole {
			break
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

func isTypeHeader(upper string) bool {
	if strings.TrimSpace(upper) == "OPERATIVES" {
		return true
	}
	for _, spec := range layouts {
		for _, header := range spec.headers {
			if strings.Contains(upper, header) {
				return true
			}
		}
	}
	return false
}

func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func filenameStem(path string) string {
	base := filepath.Base(path)
	return slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
}
