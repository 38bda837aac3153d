package pdf

import (
	"image"

	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

// CropBox is a crop region expressed as fractions of the page bounds, so
// the same region applies at any render DPI.
type CropBox struct {
	Left, Top, Right, Bottom float64
}

// Rect converts the fractional box into pixel coordinates.
func (c CropBox) Rect(bounds image.Rectangle) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	return image.Rect(
		bounds.Min.X+int(c.Left*w),
		bounds.Min.Y+int(c.Top*h),
		bounds.Min.X+int(c.Right*w),
		bounds.Min.Y+int(c.Bottom*h),
	)
}

// layoutSpec declares, per card type, where identity lives on a front
// page. Classification and title extraction read these rules instead of
// branching on the card type at every call site.
type layoutSpec struct {
	// headers are the literal card-type header strings printed on a
	// front page. Empty for datacards, which carry stat labels instead.
	headers []string

	// titleAfterHeader: the card title is the next text block below the
	// type header (the third text element: team, header, title).
	titleAfterHeader bool

	// titleFromLargest: the title is the largest text on the page
	// (datacard operative names, top left).
	titleFromLargest bool

	// teamFromMetadataBar: the team is the first comma-delimited segment
	// of the bottom metadata bar (datacards only).
	teamFromMetadataBar bool

	// teamSuffix is stripped from the team line ("KILL TEAM" on
	// operative-selection cards).
	teamSuffix string

	// allowTeamTitle permits a title equal to the team name. Faction
	// rules are legitimately named after the team.
	allowTeamTitle bool

	// fixedTitle: the page has no discrete card name; the whole page is
	// the card.
	fixedTitle string

	// minTitleSize is the smallest font size accepted for a title.
	minTitleSize float64

	// crop, when set, limits rendering to a sub-region of the page.
	// All current layouts render the full page, matching the printable
	// bounds of the source exports.
	crop *CropBox
}

var layouts = map[models.CardType]layoutSpec{
	models.CardTypeStrategyPloys: {
		headers:          []string{"STRATEGY PLOY", "STRATEGIC PLOY"},
		titleAfterHeader: true,
		minTitleSize:     7,
	},
	models.CardTypeFirefightPloys: {
		headers:          []string{"FIREFIGHT PLOY"},
		titleAfterHeader: true,
		minTitleSize:     7,
	},
	models.CardTypeEquipment: {
		headers:          []string{"FACTION EQUIPMENT", "EQUIPMENT"},
		titleAfterHeader: true,
		minTitleSize:     7,
	},
	models.CardTypeFactionRules: {
		headers:          []string{"FACTION RULES", "FACTION RULE"},
		titleAfterHeader: true,
		allowTeamTitle:   true,
		minTitleSize:     7,
	},
	models.CardTypeOperatives: {
		headers:    []string{"OPERATIVES"},
		teamSuffix: "KILL TEAM",
		fixedTitle: "operatives",
	},
	models.CardTypeDatacards: {
		titleFromLargest:    true,
		teamFromMetadataBar: true,
		minTitleSize:        10,
	},
}

// datacardStatLabels identify a datacard front page: the stat block
// printed on every operative datacard.
var datacardStatLabels = []string{"APL", "MOVE", "SAVE", "WOUNDS"}

// datacardRoleKeywords are operative roles printed after the team name
// in the datacard metadata bar ("PLAGUE MARINE LEADER, ..."). The team
// name ends where the first role word begins.
var datacardRoleKeywords = []string{
	"LEADER", "OPERATIVE", "WARRIOR", "SERGEANT", "THEYN",
	"NOB", "BOSS", "PRIEST", "TECH-PRIEST", "TECHNOARCHEOLOGIST",
	"ARCHAEOPTER", "SERVITOR", "IMMORTAL", "WRAITH", "CRYPTEK",
}

// continuationMarkers are the literal strings printed on a front page
// whose content continues on the reverse side.
var continuationMarkers = []string{
	"CONTINUES ON OTHER SIDE",
	"CONTINUES ON THE OTHER SIDE",
	"RULES CONTINUE ON OTHER SIDE",
}

// titleSkipTerms are generic labels that are never card titles.
var titleSkipTerms = []string{
	"rules continue", "wounds", "save", "move", "apl",
	"strategy ploy", "strategic ploy", "tactical ploy",
	"firefight ploy", "firefight",
	"faction equipment", "equipment",
	"faction rules", "faction rule", "datacard", "datacards",
	"operatives", "kill team", "archetype",
	"hit", "dmg", "name", "atk",
}
