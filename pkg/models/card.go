package models

import (
	"fmt"
	"strings"
)

// CardType is the closed set of Kill Team card categories. The string
// values double as output directory names.
type CardType string

const (
	CardTypeDatacards      CardType = "datacards"
	CardTypeEquipment      CardType = "equipment"
	CardTypeFactionRules   CardType = "faction-rules"
	CardTypeFirefightPloys CardType = "firefight-ploys"
	CardTypeOperatives     CardType = "operatives"
	CardTypeStrategyPloys  CardType = "strategy-ploys"
)

// AllCardTypes returns every card type in a stable order.
func AllCardTypes() []CardType {
	return []CardType{
		CardTypeDatacards,
		CardTypeEquipment,
		CardTypeFactionRules,
		CardTypeFirefightPloys,
		CardTypeOperatives,
		CardTypeStrategyPloys,
	}
}

// ParseCardType converts a free-form string ("datacard", "Strategy Ploy",
// "firefight_ploys") into a CardType.
func ParseCardType(value string) (CardType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")

	for _, ct := range AllCardTypes() {
		for _, variant := range ct.Variants() {
			if normalized == variant {
				return ct, nil
			}
		}
	}

	return "", fmt.Errorf("unknown card type: %q", value)
}

// Variants lists the kebab-case spellings accepted for this card type,
// canonical value first.
func (t CardType) Variants() []string {
	variants := []string{string(t)}
	switch t {
	case CardTypeDatacards:
		variants = append(variants, "datacard")
	case CardTypeFactionRules:
		variants = append(variants, "faction-rule")
	case CardTypeFirefightPloys:
		variants = append(variants, "firefight-ploy")
	case CardTypeOperatives:
		variants = append(variants, "operative")
	case CardTypeStrategyPloys:
		variants = append(variants, "strategy-ploy", "strategic-ploys", "strategic-ploy")
	}
	return variants
}

// Orientation reports the physical card orientation used when selecting
// backside artwork. Datacards are landscape, everything else portrait.
func (t CardType) Orientation() string {
	if t == CardTypeDatacards {
		return "landscape"
	}
	return "portrait"
}

func (t CardType) String() string { return string(t) }

// Confidence grades how a card's identity was established.
//
//	ConfidenceHigh   - type header and title found at their expected positions
//	ConfidenceMedium - identity inferred from partial or fallback signals
//	ConfidenceLow    - a generated placeholder name was used
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// TextBlock is one line of text extracted from a PDF page together with
// its position and style. Blocks are ordered top to bottom.
type TextBlock struct {
	Text  string
	X     float64
	Y     float64
	Size  float64
	Color string
}

// PageRecord holds the classification state of a single PDF page.
type PageRecord struct {
	PageNum    int
	Blocks     []TextBlock
	Team       string
	CardType   CardType
	Title      string
	IsFront    bool
	Confidence Confidence
}

// Datacard is one logical card: a front page and, when the content
// continues, the page immediately after it as the back.
type Datacard struct {
	SourcePDF  string
	Team       *Team
	CardType   CardType
	Name       string
	PageNum    int
	FrontImage string
	BackImage  string
	Confidence Confidence
}

// HasBack reports whether a back image has been attached or extracted.
func (d *Datacard) HasBack() bool { return d.BackImage != "" }

// FrontFilename returns the output filename for the front side.
func (d *Datacard) FrontFilename() string { return d.Name + "_front.jpg" }

// BackFilename returns the output filename for the back side.
func (d *Datacard) BackFilename() string { return d.Name + "_back.jpg" }
