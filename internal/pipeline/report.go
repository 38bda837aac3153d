package pipeline

import (
	"fmt"
	"time"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
)

// Failure is one per-item error caught at the pipeline boundary. Team
// is set when the owning team is known, so its metadata can count the
// error.
type Failure struct {
	Item   string
	Stage  string
	Team   string
	Reason string
}

// Report aggregates the outcome of a run: counters, per-item failures
// and review warnings. Failures never abort the batch; they end up here.
// TeamWarnings holds the same warnings keyed by team slug for the
// per-team metadata records.
type Report struct {
	StartTime       time.Time
	EndTime         time.Time
	PDFsOrganized   int
	PDFsProcessed   int
	CardsExtracted  int
	BacksidesAdded  int
	ManifestEntries int
	Failures        []Failure
	Warnings        []string
	TeamWarnings    map[string][]string
}

func NewReport() *Report {
	return &Report{
		StartTime:    time.Now(),
		TeamWarnings: make(map[string][]string),
	}
}

func (r *Report) Finish() {
	r.EndTime = time.Now()
}

func (r *Report) AddFailure(item, stage string, err error) {
	r.Failures = append(r.Failures, Failure{
		Item:   item,
		Stage:  stage,
		Reason: err.Error(),
	})
}

// AddTeamFailure records a failure attributed to a team.
func (r *Report) AddTeamFailure(team, item, stage string, err error) {
	r.Failures = append(r.Failures, Failure{
		Item:   item,
		Stage:  stage,
		Team:   team,
		Reason: err.Error(),
	})
}

func (r *Report) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// AddTeamWarning records a warning attributed to a team.
func (r *Report) AddTeamWarning(team, warning string) {
	r.Warnings = append(r.Warnings, warning)
	r.TeamWarnings[team] = append(r.TeamWarnings[team], warning)
}

func (r *Report) Print(log *logger.Logger) {
	log.Info("Processing complete:")
	log.Info("- PDFs organized: %d", r.PDFsOrganized)
	log.Info("- PDFs extracted: %d", r.PDFsProcessed)
	log.Info("- Cards extracted: %d", r.CardsExtracted)
	log.Info("- Backsides added: %d", r.BacksidesAdded)
	log.Info("- Manifest entries: %d", r.ManifestEntries)

	if len(r.Warnings) > 0 {
		log.Warn("%d warning(s) for manual review:", len(r.Warnings))
		for _, warning := range r.Warnings {
			log.Warn("  %s", warning)
		}
	}

	if len(r.Failures) > 0 {
		log.Warn("%d item(s) failed:", len(r.Failures))
		for _, failure := range r.Failures {
			log.Warn("  %s [%s]: %s", failure.Item, failure.Stage, failure.Reason)
		}
	}

	duration := r.EndTime.Sub(r.StartTime)
	if r.EndTime.IsZero() {
		duration = time.Since(r.StartTime)
	}
	log.Info("Run took %s", duration.Round(time.Millisecond))
}

// Summary returns a one-line result for CLI exit messages.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d PDFs, %d cards, %d failures, %d warnings",
		r.PDFsProcessed, r.CardsExtracted, len(r.Failures), len(r.Warnings))
}
