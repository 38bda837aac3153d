// Package pipeline sequences the extraction workflow: organize raw PDFs,
// extract card images, attach backsides, write metadata, generate the
// manifest. Per-item failures are aggregated into the run report; a bad
// input never aborts the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Wen-Qualtu/kt-datacards/internal/backside"
	"github.com/Wen-Qualtu/kt-datacards/internal/config"
	"github.com/Wen-Qualtu/kt-datacards/internal/manifest"
	"github.com/Wen-Qualtu/kt-datacards/internal/metadata"
	"github.com/Wen-Qualtu/kt-datacards/internal/pdf"
	"github.com/Wen-Qualtu/kt-datacards/internal/scanner"
	"github.com/Wen-Qualtu/kt-datacards/internal/teams"
	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
	"github.com/Wen-Qualtu/kt-datacards/pkg/utils"
)

// Pipeline wires the processing stages together around one config and
// one team registry, both loaded once at construction.
type Pipeline struct {
	cfg        *config.Config
	registry   *teams.Registry
	classifier *pdf.Classifier
	extractor  pdf.CardExtractor
	attacher   *backside.Attacher
	manifest   *manifest.Generator
	metadata   *metadata.Manager
	scanner    *scanner.DirectoryScanner
	log        *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	registry, err := teams.Load(cfg.TeamConfig, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load team registry: %w", err)
	}

	extractor, err := pdf.NewExtractor(cfg.OutputDir, cfg.DPI, cfg.ImageQuality, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize extractor: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		registry:   registry,
		classifier: pdf.NewClassifier(registry, log),
		extractor:  extractor,
		attacher:   backside.New(cfg.BacksideDir, log),
		manifest:   manifest.New(cfg.OutputDir, cfg.Manifest.BaseURL, log),
		metadata:   metadata.NewManager(cfg.MetadataDir, log),
		scanner:    scanner.New(log),
		log:        log,
	}, nil
}

// Registry exposes the team registry, mainly for the CLI team listing.
func (p *Pipeline) Registry() *teams.Registry { return p.registry }

// SetExtractor swaps the card extractor; tests use this to run the
// pipeline without MuPDF.
func (p *Pipeline) SetExtractor(extractor pdf.CardExtractor) { p.extractor = extractor }

// Run executes the full workflow. teamFilter, when non-empty, limits
// extraction to the named team slugs.
func (p *Pipeline) Run(ctx context.Context, teamFilter []string) (*Report, error) {
	report := NewReport()
	defer report.Finish()

	if err := p.Organize(ctx, report); err != nil {
		return report, err
	}

	cards, hashes, err := p.Extract(ctx, teamFilter, report)
	if err != nil {
		return report, err
	}

	report.BacksidesAdded = p.attacher.AddBacksides(cards)

	if err := p.WriteMetadata(cards, hashes, report); err != nil {
		return report, err
	}

	if err := p.GenerateManifest(report); err != nil {
		return report, err
	}

	return report, nil
}

// Organize identifies raw PDFs and files them under
// processed/{team}/{team}-{type}.pdf, archiving the originals.
// Unreadable or unclassifiable PDFs are moved to the failed directory
// for manual review; they are never guessed at.
func (p *Pipeline) Organize(ctx context.Context, report *Report) error {
	pdfs, err := p.scanner.FindPDFs(ctx, p.cfg.InputDir)
	if err != nil {
		if errors.Is(err, scanner.ErrNoPDFs) || os.IsNotExist(err) {
			p.log.Info("No raw PDFs found in %s", p.cfg.InputDir)
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			p.log.Info("No raw PDFs found in %s", p.cfg.InputDir)
			return nil
		}
		return err
	}

	p.log.Info("Found %d raw PDF(s) in %s", len(pdfs), p.cfg.InputDir)

	for _, file := range pdfs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := api.PageCountFile(file.AbsolutePath); err != nil {
			report.AddFailure(file.RelativePath, "validate", err)
			p.moveToFailed(file.AbsolutePath)
			continue
		}

		blocks, err := pdf.FirstPageBlocks(file.AbsolutePath)
		if err != nil {
			report.AddFailure(file.RelativePath, "read", err)
			p.moveToFailed(file.AbsolutePath)
			continue
		}

		class, err := p.classifier.Classify(file.AbsolutePath, blocks)
		if err != nil {
			report.AddFailure(file.RelativePath, "classify", err)
			p.moveToFailed(file.AbsolutePath)
			continue
		}

		destDir := filepath.Join(p.cfg.ProcessedDir, class.Team.Slug)
		destName := fmt.Sprintf("%s-%s.pdf", class.Team.Slug, class.CardType)
		if err := copyFile(file.AbsolutePath, filepath.Join(destDir, destName)); err != nil {
			report.AddFailure(file.RelativePath, "organize", err)
			continue
		}

		archivePath := filepath.Join(p.cfg.ArchiveDir, class.Team.Slug, filepath.Base(file.AbsolutePath))
		if err := moveFile(file.AbsolutePath, archivePath); err != nil {
			report.AddFailure(file.RelativePath, "archive", err)
			continue
		}

		p.log.Info("Processed: %s -> %s/%s", filepath.Base(file.AbsolutePath), class.Team.Slug, destName)
		report.PDFsOrganized++
	}

	return nil
}

// Extract renders card images from every processed PDF. Card types come
// from the curated filenames ({team}-{type}.pdf); filename identity wins
// over content inference. Returns the extracted cards and, aligned by
// index, the content hash of each card's source PDF.
func (p *Pipeline) Extract(ctx context.Context, teamFilter []string, report *Report) ([]models.Datacard, []string, error) {
	var cards []models.Datacard
	var hashes []string

	teamDirs, err := os.ReadDir(p.cfg.ProcessedDir)
	if err != nil {
		if os.IsNotExist(err) {
			p.log.Warn("Processed directory not found: %s", p.cfg.ProcessedDir)
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read processed directory: %w", err)
	}

	filter := make(map[string]bool, len(teamFilter))
	for _, slug := range teamFilter {
		filter[slug] = true
	}

	for _, teamDir := range teamDirs {
		if !teamDir.IsDir() {
			continue
		}
		teamSlug := teamDir.Name()
		if len(filter) > 0 && !filter[teamSlug] {
			continue
		}

		team := p.registry.GetOrCreate(teamSlug)
		pdfPaths, err := filepath.Glob(filepath.Join(p.cfg.ProcessedDir, teamSlug, "*.pdf"))
		if err != nil {
			return cards, hashes, err
		}
		sort.Strings(pdfPaths)

		for _, pdfPath := range pdfPaths {
			select {
			case <-ctx.Done():
				return cards, hashes, ctx.Err()
			default:
			}

			name := filepath.Base(pdfPath)
			cardType, ok := pdf.CardTypeFromFilename(pdfPath)
			if !ok {
				report.AddTeamFailure(teamSlug, name, "extract", fmt.Errorf("no card type token in filename"))
				continue
			}

			hash, err := utils.FileHash(pdfPath)
			if err != nil {
				p.log.Warn("Couldn't hash %s: %v", name, err)
			}

			extracted, warnings, err := p.extractor.ExtractPDF(ctx, pdfPath, team, cardType)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return cards, hashes, err
				}
				report.AddTeamFailure(teamSlug, name, "extract", err)
				continue
			}

			for _, w := range warnings {
				report.AddTeamWarning(teamSlug, fmt.Sprintf("%s: %s", name, w))
				p.log.Warn("%s: %s", name, w)
			}

			p.log.Info("Extracted %d card(s) from %s", len(extracted), name)
			report.PDFsProcessed++
			report.CardsExtracted += len(extracted)
			cards = append(cards, extracted...)
			for range extracted {
				hashes = append(hashes, hash)
			}
		}
	}

	return cards, hashes, nil
}

// WriteMetadata persists per-team extraction metadata and the published
// card index. Must run after backside attachment so has_back is final.
// Teams whose extraction failed outright still get a metadata record so
// the error count is visible for review.
func (p *Pipeline) WriteMetadata(cards []models.Datacard, hashes []string, report *Report) error {
	byTeam := make(map[string][]int)
	teamBySlug := make(map[string]*models.Team)
	for i, card := range cards {
		byTeam[card.Team.Slug] = append(byTeam[card.Team.Slug], i)
		teamBySlug[card.Team.Slug] = card.Team
	}

	slugSet := make(map[string]bool, len(byTeam))
	for slug := range byTeam {
		slugSet[slug] = true
	}
	for _, failure := range report.Failures {
		if failure.Team != "" {
			slugSet[failure.Team] = true
		}
	}
	for slug := range report.TeamWarnings {
		slugSet[slug] = true
	}

	slugs := make([]string, 0, len(slugSet))
	for slug := range slugSet {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		team := teamBySlug[slug]
		if team == nil {
			team = p.registry.GetOrCreate(slug)
		}

		meta, err := p.metadata.LoadOrCreate(team)
		if err != nil {
			report.AddFailure(slug, "metadata", err)
			continue
		}

		pdfPages := make(map[string]int)
		teamCards := make([]models.Datacard, 0, len(byTeam[slug]))
		for _, i := range byTeam[slug] {
			card := cards[i]
			meta.RecordCard(card, hashes[i])
			teamCards = append(teamCards, card)

			pdfPages[card.SourcePDF]++
			if card.HasBack() {
				pdfPages[card.SourcePDF]++
			}
		}
		for _, pages := range pdfPages {
			meta.AddPDFProcessed(pages)
		}
		for _, warning := range report.TeamWarnings[slug] {
			meta.AddWarning(warning)
		}
		for _, failure := range report.Failures {
			if failure.Team == slug {
				meta.AddError()
			}
		}

		if err := p.metadata.Save(slug, meta); err != nil {
			report.AddFailure(slug, "metadata", err)
			continue
		}

		if len(teamCards) == 0 {
			// Nothing extracted; keep any previously published index.
			continue
		}
		teamData := metadata.BuildTeamData(team, teamCards)
		if err := p.metadata.WriteTeamData(p.cfg.OutputDir, team, teamData); err != nil {
			report.AddFailure(slug, "metadata", err)
		}
	}

	return nil
}

// AddBacksides attaches backside artwork to the given cards in place and
// returns the number of cards that received one.
func (p *Pipeline) AddBacksides(cards []models.Datacard) int {
	return p.attacher.AddBacksides(cards)
}

// AttachBacksides runs the backside step against cards already present
// in the output tree, for re-runs that skip extraction.
func (p *Pipeline) AttachBacksides(teamFilter []string, report *Report) error {
	cards, err := p.CollectExistingCards(teamFilter)
	if err != nil {
		return err
	}
	report.BacksidesAdded = p.attacher.AddBacksides(cards)
	return nil
}

// CollectExistingCards rebuilds Datacard records from the files in the
// output tree (team/type/name_front.jpg).
func (p *Pipeline) CollectExistingCards(teamFilter []string) ([]models.Datacard, error) {
	var cards []models.Datacard

	filter := make(map[string]bool, len(teamFilter))
	for _, slug := range teamFilter {
		filter[slug] = true
	}

	teamDirs, err := os.ReadDir(p.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	for _, teamDir := range teamDirs {
		if !teamDir.IsDir() {
			continue
		}
		teamSlug := teamDir.Name()
		if len(filter) > 0 && !filter[teamSlug] {
			continue
		}
		team := p.registry.GetOrCreate(teamSlug)

		typeDirs, err := os.ReadDir(filepath.Join(p.cfg.OutputDir, teamSlug))
		if err != nil {
			return cards, err
		}
		for _, typeDir := range typeDirs {
			if !typeDir.IsDir() {
				continue
			}
			cardType, err := models.ParseCardType(typeDir.Name())
			if err != nil {
				continue
			}

			typePath := filepath.Join(p.cfg.OutputDir, teamSlug, typeDir.Name())
			fronts, err := filepath.Glob(filepath.Join(typePath, "*_front.jpg"))
			if err != nil {
				return cards, err
			}
			sort.Strings(fronts)

			for _, front := range fronts {
				name := strings.TrimSuffix(filepath.Base(front), "_front.jpg")
				card := models.Datacard{
					Team:       team,
					CardType:   cardType,
					Name:       name,
					FrontImage: front,
				}
				back := filepath.Join(typePath, card.BackFilename())
				if _, err := os.Stat(back); err == nil {
					card.BackImage = back
				}
				cards = append(cards, card)
			}
		}
	}

	return cards, nil
}

// GenerateManifest walks the output tree and writes the JSON and CSV
// manifests.
func (p *Pipeline) GenerateManifest(report *Report) error {
	entries, err := p.manifest.Collect()
	if err != nil {
		return err
	}

	if _, err := p.manifest.WriteJSON(p.cfg.Manifest.JSONPath, entries); err != nil {
		return err
	}
	if _, err := p.manifest.WriteCSV(p.cfg.Manifest.CSVPath, entries); err != nil {
		return err
	}

	report.ManifestEntries = len(entries)
	return nil
}

func (p *Pipeline) moveToFailed(path string) {
	dest := filepath.Join(p.cfg.FailedDir, filepath.Base(path))
	if err := moveFile(path, dest); err != nil {
		p.log.Warn("Couldn't move %s to failed directory: %v", filepath.Base(path), err)
		return
	}
	p.log.Warn("Moved %s to %s for manual review", filepath.Base(path), p.cfg.FailedDir)
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

func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy+remove.
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
