// debug_pdf dumps the positioned text blocks of a PDF page, the same
// view the classifier and title extraction work from. Useful when a new
// export lays its headers out differently.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/Wen-Qualtu/kt-datacards/internal/pdf"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	page := flag.Int("page", 0, "Page to dump (1-based, 0 for all pages)")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	doc, err := fitz.New(*pdfPath)
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	fmt.Printf("Analyzing PDF: %s (%d pages)\n", *pdfPath, doc.NumPage())

	first, last := 0, doc.NumPage()-1
	if *page > 0 {
		first, last = *page-1, *page-1
	}
	if last >= doc.NumPage() {
		fmt.Printf("Page %d out of range\n", *page)
		os.Exit(1)
	}

	for pageNum := first; pageNum <= last; pageNum++ {
		blocks, err := pdf.ExtractBlocks(doc, pageNum)
		if err != nil {
			fmt.Printf("Error reading page %d: %v\n", pageNum+1, err)
			os.Exit(1)
		}

		fmt.Printf("\nPage %d (%d blocks):\n", pageNum+1, len(blocks))
		for _, b := range blocks {
			fmt.Printf("  y=%7.1f x=%7.1f size=%5.1f color=%-8s %q\n",
				b.Y, b.X, b.Size, b.Color, b.Text)
		}
	}
}
