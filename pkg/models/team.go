package models

import (
	"github.com/Wen-Qualtu/kt-datacards/pkg/slug"
)

// Team is a Kill Team faction identity. Slug is the canonical kebab-case
// identifier used in output paths; aliases cover the spelling variants
// seen in PDF exports.
type Team struct {
	Slug        string
	DisplayName string
	Aliases     []string
	Faction     string
	Army        string
}

// Matches reports whether text resolves to this team, comparing the
// normalized form against the slug and every alias.
func (t *Team) Matches(text string) bool {
	normalized := slug.Make(text)
	if normalized == t.Slug {
		return true
	}
	for _, alias := range t.Aliases {
		if normalized == slug.Make(alias) {
			return true
		}
	}
	return false
}
