package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
	"github.com/Wen-Qualtu/kt-datacards/pkg/slug"
)

// Warning is a non-fatal extraction finding surfaced for manual review.
type Warning struct {
	Page   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s", w.Page+1, w.Reason)
}

// PageInfo is the outcome of analyzing one page: its card title, whether
// it is a front page, and which page (if any) holds its back side.
type PageInfo struct {
	PageNum    int
	Title      string
	Confidence models.Confidence
	IsFront    bool
	BackPage   int
	Malformed  bool
}

// AnalyzePages walks a document's pages in order and pairs fronts with
// their continuation backs. Page order matters: a back page is only
// recognized when the page before it was a confirmed front carrying a
// continuation marker. A headerless page without that marker is flagged
// malformed, never guessed.
func AnalyzePages(pages [][]models.TextBlock, cardType models.CardType, team *models.Team) ([]PageInfo, []Warning) {
	var infos []PageInfo
	var warnings []Warning

	skipNext := false
	for i, blocks := range pages {
		if skipNext {
			skipNext = false
			continue
		}

		if !IsFrontPage(blocks, cardType) {
			warnings = append(warnings, Warning{
				Page:   i,
				Reason: "no header and no continuation marker on preceding page; flagged for manual review",
			})
			infos = append(infos, PageInfo{PageNum: i, Malformed: true, BackPage: -1})
			continue
		}

		title, confidence := ExtractTitle(blocks, cardType, team)
		info := PageInfo{
			PageNum:    i,
			Title:      title,
			Confidence: confidence,
			IsFront:    true,
			BackPage:   -1,
		}

		if HasContinuationMarker(blocks) {
			switch {
			case i+1 >= len(pages):
				// The export claims a back side the PDF does not have.
				warnings = append(warnings, Warning{
					Page:   i,
					Reason: "continuation marker on the final page; back side missing from export",
				})
			case IsFrontPage(pages[i+1], cardType):
				// An explicit new header on the next page overrides the
				// marker (export bug on the front page).
				warnings = append(warnings, Warning{
					Page:   i,
					Reason: "continuation marker present but next page has its own header",
				})
			default:
				info.BackPage = i + 1
				skipNext = true
			}
		} else if cardType == models.CardTypeDatacards && i+1 < len(pages) {
			// Datacard backs repeat the operative name instead of
			// carrying a continuation marker.
			nextTitle, _ := ExtractTitle(pages[i+1], cardType, team)
			if title != "" && nextTitle == title {
				info.BackPage = i + 1
				skipNext = true
			}
		}

		infos = append(infos, info)
	}

	return infos, warnings
}

// IsFrontPage reports whether a page carries the full header its card
// type requires. Back pages have no header at all.
func IsFrontPage(blocks []models.TextBlock, cardType models.CardType) bool {
	spec := layouts[cardType]

	if len(spec.headers) > 0 {
		for _, block := range blocks {
			upper := strings.ToUpper(block.Text)
			for _, header := range spec.headers {
				if strings.Contains(upper, header) {
					return true
				}
			}
		}
		return false
	}

	// Datacards have no type header; the stat block is the front signal.
	statCount := 0
	joined := joinUpper(blocks)
	for _, label := range datacardStatLabels {
		if strings.Contains(joined, label) {
			statCount++
		}
	}
	return statCount >= 3
}

// HasContinuationMarker reports whether the page states that its content
// continues on the reverse side.
func HasContinuationMarker(blocks []models.TextBlock) bool {
	joined := joinUpper(blocks)
	for _, marker := range continuationMarkers {
		if strings.Contains(joined, marker) {
			return true
		}
	}
	return false
}

// ExtractTitle finds the card's name on a front page per the card type's
// layout rule. Returns the slugified title and a confidence grade, or an
// empty title with ConfidenceLow when nothing qualified.
func ExtractTitle(blocks []models.TextBlock, cardType models.CardType, team *models.Team) (string, models.Confidence) {
	spec := layouts[cardType]

	if spec.fixedTitle != "" {
		return spec.fixedTitle, models.ConfidenceHigh
	}

	if cardType == models.CardTypeFactionRules && isMarkerTokenGuide(blocks) {
		return "markertoken-guide", models.ConfidenceHigh
	}

	if spec.titleAfterHeader {
		headerIndex := -1
		for i, block := range blocks {
			if isTypeHeader(strings.ToUpper(block.Text)) {
				headerIndex = i
				break
			}
		}
		if headerIndex >= 0 {
			for i := headerIndex + 1; i < len(blocks); i++ {
				if titleCandidate(blocks[i], spec, team) {
					confidence := models.ConfidenceHigh
					if i > headerIndex+1 {
						confidence = models.ConfidenceMedium
					}
					return slug.Make(blocks[i].Text), confidence
				}
			}
		}
	}

	// Largest text first. For datacards this is the rule (the operative
	// name heads the card); for everything else it is a fallback.
	bySize := make([]models.TextBlock, len(blocks))
	copy(bySize, blocks)
	sort.SliceStable(bySize, func(i, j int) bool { return bySize[i].Size > bySize[j].Size })

	for i, block := range bySize {
		if i >= 20 {
			break
		}
		if titleCandidate(block, spec, team) {
			confidence := models.ConfidenceMedium
			if spec.titleFromLargest {
				confidence = models.ConfidenceHigh
			}
			return slug.Make(block.Text), confidence
		}
	}

	return "", models.ConfidenceLow
}

// titleCandidate applies the layout's filters: length bounds, generic
// labels, rules-text punctuation, font size, and the team name (a title
// equal to the team is only legitimate where the layout allows it).
func titleCandidate(block models.TextBlock, spec layoutSpec, team *models.Team) bool {
	text := strings.TrimSpace(block.Text)
	if len(text) < 5 || len(text) > 50 {
		return false
	}

	lower := strings.ToLower(text)
	for _, term := range titleSkipTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}

	if strings.ContainsAny(text, ":()") {
		return false
	}

	if block.Size > 0 && spec.minTitleSize > 0 && block.Size < spec.minTitleSize {
		return false
	}

	if team != nil && !spec.allowTeamTitle && squash(lower) == squash(team.Slug) {
		return false
	}

	return true
}

func isMarkerTokenGuide(blocks []models.TextBlock) bool {
	joined := joinUpper(blocks)
	return strings.Contains(joined, "MARKER") &&
		strings.Contains(joined, "TOKEN") &&
		strings.Contains(joined, "GUIDE")
}

func joinUpper(blocks []models.TextBlock) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(strings.ToUpper(block.Text))
		b.WriteByte('\n')
	}
	return b.String()
}

func squash(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}
