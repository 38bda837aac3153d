package pdf

import (
	"context"

	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

type CardExtractor interface {
	ExtractPDF(ctx context.Context, pdfPath string, team *models.Team, cardType models.CardType) ([]models.Datacard, []Warning, error)
}
