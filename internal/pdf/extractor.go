package pdf

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

// Extractor renders classified PDF pages into cropped card images under
// output/{team}/{card_type}/{card_name}_{side}.jpg.
type Extractor struct {
	outputDir string
	dpi       int
	quality   int
	log       *logger.Logger
}

func NewExtractor(outputDir string, dpi, quality int, log *logger.Logger) (*Extractor, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Extractor{
		outputDir: outputDir,
		dpi:       dpi,
		quality:   quality,
		log:       log,
	}, nil
}

// ExtractPDF analyzes every page of one PDF and writes a front image and,
// when the content continues, a back image per card. The input PDF is
// never modified; existing output files are overwritten.
func (e *Extractor) ExtractPDF(ctx context.Context, pdfPath string, team *models.Team, cardType models.CardType) ([]models.Datacard, []Warning, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([][]models.TextBlock, doc.NumPage())
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		blocks, err := ExtractBlocks(doc, pageNum)
		if err != nil {
			e.log.Warn("Couldn't extract text from %s page %d: %v", filepath.Base(pdfPath), pageNum+1, err)
			continue
		}
		pages[pageNum] = blocks
	}

	infos, warnings := AnalyzePages(pages, cardType, team)

	outDir := filepath.Join(e.outputDir, team.Slug, string(cardType))
	used := make(map[string]bool)
	operativesCount := 0
	factionRuleCount := 0

	var cards []models.Datacard
	for _, info := range infos {
		if info.Malformed {
			continue
		}

		name := info.Title
		confidence := info.Confidence
		switch {
		case cardType == models.CardTypeOperatives:
			operativesCount++
			if operativesCount > 1 {
				name = fmt.Sprintf("operatives-%d", operativesCount)
			}
		case name == "" && cardType == models.CardTypeFactionRules:
			factionRuleCount++
			name = fmt.Sprintf("faction-rule-%d", factionRuleCount)
			confidence = models.ConfidenceLow
		case name == "":
			name = fmt.Sprintf("%s-%d", cardType, info.PageNum+1)
			confidence = models.ConfidenceLow
			warnings = append(warnings, Warning{
				Page:   info.PageNum,
				Reason: "could not extract card name; using page-numbered fallback",
			})
		}
		if used[name] {
			name = fmt.Sprintf("%s-%d", name, info.PageNum+1)
		}
		used[name] = true

		card := models.Datacard{
			SourcePDF:  pdfPath,
			Team:       team,
			CardType:   cardType,
			Name:       name,
			PageNum:    info.PageNum,
			Confidence: confidence,
		}

		frontPath := filepath.Join(outDir, card.FrontFilename())
		if err := e.renderPage(doc, info.PageNum, cardType, frontPath); err != nil {
			return cards, warnings, fmt.Errorf("failed to extract page %d: %w", info.PageNum+1, err)
		}
		card.FrontImage = frontPath
		e.log.Debug("Extracted: %s", frontPath)

		if info.BackPage >= 0 {
			backPath := filepath.Join(outDir, card.BackFilename())
			if err := e.renderPage(doc, info.BackPage, cardType, backPath); err != nil {
				return cards, warnings, fmt.Errorf("failed to extract page %d: %w", info.BackPage+1, err)
			}
			card.BackImage = backPath
			e.log.Debug("Extracted: %s", backPath)
		}

		cards = append(cards, card)
	}

	return cards, warnings, nil
}

// renderPage rasterizes one page at the configured DPI, applies the card
// type's crop region when one is declared, and writes the image.
func (e *Extractor) renderPage(doc *fitz.Document, pageNum int, cardType models.CardType, outPath string) error {
	img, err := doc.ImageDPI(pageNum, float64(e.dpi))
	if err != nil {
		return fmt.Errorf("failed to render page %d: %w", pageNum+1, err)
	}

	var out image.Image = img
	if crop := layouts[cardType].crop; crop != nil {
		out = CropImage(img, crop.Rect(img.Bounds()))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return e.saveImage(out, outPath)
}

func (e *Extractor) saveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: e.quality})
}

// CropImage copies a sub-region of an image into a new buffer.
func CropImage(src image.Image, rect image.Rectangle) *image.RGBA {
	rect = rect.Intersect(src.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x-rect.Min.X, y-rect.Min.Y, src.At(x, y))
		}
	}
	return dst
}
