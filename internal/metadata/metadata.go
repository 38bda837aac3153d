// Package metadata records per-team extraction results so downstream
// consumers can audit what was produced, with what confidence, and from
// which source.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

type TeamInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name,omitempty"`
	Faction        string `json:"faction,omitempty"`
	ExtractionDate string `json:"extraction_date"`
}

type CardRecord struct {
	CardName    string            `json:"card_name"`
	PageNum     int               `json:"page_num"`
	SourcePDF   string            `json:"source_pdf"`
	SourceHash  string            `json:"source_hash"`
	ExtractedAt time.Time         `json:"extracted_at"`
	Confidence  models.Confidence `json:"confidence"`
	FrontImage  string            `json:"front_image"`
	BackImage   string            `json:"back_image,omitempty"`
}

type Summary struct {
	PDFsProcessed  int      `json:"pdfs_processed"`
	PagesProcessed int      `json:"total_pages_processed"`
	CardsExtracted int      `json:"cards_extracted"`
	Errors         int      `json:"extraction_errors"`
	Warnings       []string `json:"warnings"`
}

// TeamMetadata is the on-disk record for one team:
// metadata/{team}/extraction_metadata.json.
type TeamMetadata struct {
	Team      TeamInfo                         `json:"team"`
	CardTypes map[string]map[string]CardRecord `json:"card_types"`
	Summary   Summary                          `json:"processing_summary"`
}

// Manager loads, updates and saves per-team extraction metadata.
type Manager struct {
	dir string
	log *logger.Logger
}

func NewManager(dir string, log *logger.Logger) *Manager {
	return &Manager{dir: dir, log: log}
}

func (m *Manager) path(teamSlug string) string {
	return filepath.Join(m.dir, teamSlug, "extraction_metadata.json")
}

// LoadOrCreate reads a team's existing metadata or starts a fresh record.
func (m *Manager) LoadOrCreate(team *models.Team) (*TeamMetadata, error) {
	meta := &TeamMetadata{
		Team: TeamInfo{
			Name:           team.Slug,
			DisplayName:    team.DisplayName,
			Faction:        team.Faction,
			ExtractionDate: time.Now().Format(time.RFC3339),
		},
		CardTypes: make(map[string]map[string]CardRecord),
	}

	data, err := os.ReadFile(m.path(team.Slug))
	if err != nil {
		if os.IsNotExist(err) {
			return meta, nil
		}
		return nil, fmt.Errorf("failed to read extraction metadata: %w", err)
	}

	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("failed to parse extraction metadata: %w", err)
	}

	meta.Team.Name = team.Slug
	meta.Team.DisplayName = team.DisplayName
	meta.Team.Faction = team.Faction
	meta.Team.ExtractionDate = time.Now().Format(time.RFC3339)
	if meta.CardTypes == nil {
		meta.CardTypes = make(map[string]map[string]CardRecord)
	}
	return meta, nil
}

// RecordCard upserts one card's record. When the source PDF's content
// hash is unchanged from the previous run the original extraction
// timestamp is kept, so re-runs do not fake freshness.
func (meta *TeamMetadata) RecordCard(card models.Datacard, sourceHash string) {
	typeKey := string(card.CardType)
	if meta.CardTypes[typeKey] == nil {
		meta.CardTypes[typeKey] = make(map[string]CardRecord)
	}

	extractedAt := time.Now()
	if prev, ok := meta.CardTypes[typeKey][card.Name]; ok && prev.SourceHash == sourceHash && sourceHash != "" {
		extractedAt = prev.ExtractedAt
	} else {
		meta.Summary.CardsExtracted++
	}

	meta.CardTypes[typeKey][card.Name] = CardRecord{
		CardName:    card.Name,
		PageNum:     card.PageNum,
		SourcePDF:   card.SourcePDF,
		SourceHash:  sourceHash,
		ExtractedAt: extractedAt,
		Confidence:  card.Confidence,
		FrontImage:  card.FrontImage,
		BackImage:   card.BackImage,
	}
}

// AddPDFProcessed tracks one processed source document.
func (meta *TeamMetadata) AddPDFProcessed(pages int) {
	meta.Summary.PDFsProcessed++
	meta.Summary.PagesProcessed += pages
}

// AddWarning records a warning once.
func (meta *TeamMetadata) AddWarning(warning string) {
	for _, existing := range meta.Summary.Warnings {
		if existing == warning {
			return
		}
	}
	meta.Summary.Warnings = append(meta.Summary.Warnings, warning)
}

// AddError increments the extraction error count.
func (meta *TeamMetadata) AddError() {
	meta.Summary.Errors++
}

// Save writes the metadata file, creating the team directory as needed.
func (m *Manager) Save(teamSlug string, meta *TeamMetadata) error {
	path := m.path(teamSlug)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal extraction metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write extraction metadata: %w", err)
	}

	m.log.Debug("Saved extraction metadata to %s", path)
	return nil
}
