package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
)

// ErrNoPDFs is returned when a scan finds nothing to process.
var ErrNoPDFs = errors.New("no PDF files found")

// PDFFile is one discovered input document.
type PDFFile struct {
	AbsolutePath string
	RelativePath string
}

type DirectoryScanner struct {
	log *logger.Logger
}

func New(log *logger.Logger) *DirectoryScanner {
	return &DirectoryScanner{log: log}
}

// FindPDFs walks dir recursively and returns every .pdf file. Directories
// named "failed" are skipped; that is where unclassifiable inputs are
// parked for manual review.
func (s *DirectoryScanner) FindPDFs(ctx context.Context, dir string) ([]PDFFile, error) {
	var pdfs []PDFFile

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			if info.Name() == "failed" && path != dir {
				return filepath.SkipDir
			}
			s.log.Debug("Scanning directory: %s", path)
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}

		pdfs = append(pdfs, PDFFile{
			AbsolutePath: path,
			RelativePath: relPath,
		})
		return nil
	})

	if err != nil {
		return pdfs, err
	}

	if len(pdfs) == 0 {
		return pdfs, fmt.Errorf("%w in %s or its subdirectories", ErrNoPDFs, dir)
	}

	return pdfs, nil
}
