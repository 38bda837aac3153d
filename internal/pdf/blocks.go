package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/net/html"

	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

// ExtractBlocks pulls the text lines of a page together with position,
// font size and color. MuPDF's structured-text HTML rendering carries the
// geometry as inline styles (top/left on the paragraph, font-size and
// color on the span); that is the only way go-fitz exposes it.
func ExtractBlocks(doc *fitz.Document, pageNum int) ([]models.TextBlock, error) {
	content, err := doc.HTML(pageNum, false)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
	}
	return ParseBlocks(content)
}

// FirstPageBlocks opens a PDF just long enough to read the first page's
// text blocks. The organizing step classifies documents this way without
// paying for a full render.
func FirstPageBlocks(pdfPath string) ([]models.TextBlock, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	return ExtractBlocks(doc, 0)
}

// ParseBlocks converts one page of MuPDF HTML into ordered text blocks,
// one block per paragraph, sorted top to bottom.
func ParseBlocks(content string) ([]models.TextBlock, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page text: %w", err)
	}

	var blocks []models.TextBlock
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if block, ok := blockFromParagraph(n); ok {
				blocks = append(blocks, block)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Y != blocks[j].Y {
			return blocks[i].Y < blocks[j].Y
		}
		return blocks[i].X < blocks[j].X
	})

	return blocks, nil
}

func blockFromParagraph(p *html.Node) (models.TextBlock, bool) {
	style := attrValue(p, "style")
	block := models.TextBlock{
		Y: parsePt(styleValue(style, "top")),
		X: parsePt(styleValue(style, "left")),
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		case n.Type == html.ElementNode && n.Data == "span":
			spanStyle := attrValue(n, "style")
			if block.Size == 0 {
				block.Size = parsePt(styleValue(spanStyle, "font-size"))
			}
			if block.Color == "" {
				block.Color = styleValue(spanStyle, "color")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(p)

	block.Text = strings.Join(parts, " ")
	return block, block.Text != ""
}

func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// styleValue extracts one property from an inline CSS style string.
func styleValue(style, key string) string {
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.TrimSpace(parts[0]) == key {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

func parsePt(value string) float64 {
	value = strings.TrimSuffix(strings.TrimSpace(value), "pt")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
