package pdf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Wen-Qualtu/kt-datacards/internal/pdf"
)

const pageHTML = `<html><body>
<p style="top:100.5pt;left:50pt"><span style="font-size:12pt;color:#ffffff">STRATEGY PLOY</span></p>
<p style="top:50pt;left:30pt"><span style="font-size:8pt;color:#000000">BLOODED</span></p>
<p style="top:120pt;left:50pt"><span style="font-size:10pt">Dark <b>Communion</b></span></p>
<p style="top:130pt;left:50pt"><span style="font-size:7pt"> </span></p>
</body></html>`

var _ = Describe("ParseBlocks", func() {
	It("returns one block per paragraph, sorted top to bottom", func() {
		blocks, err := pdf.ParseBlocks(pageHTML)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(3))

		Expect(blocks[0].Text).To(Equal("BLOODED"))
		Expect(blocks[1].Text).To(Equal("STRATEGY PLOY"))
		Expect(blocks[2].Text).To(Equal("Dark Communion"))
	})

	It("carries position, size and color from the inline styles", func() {
		blocks, err := pdf.ParseBlocks(pageHTML)
		Expect(err).NotTo(HaveOccurred())

		header := blocks[1]
		Expect(header.Y).To(BeNumerically("~", 100.5, 0.01))
		Expect(header.X).To(BeNumerically("~", 50, 0.01))
		Expect(header.Size).To(BeNumerically("~", 12, 0.01))
		Expect(header.Color).To(Equal("#ffffff"))
	})

	It("joins nested text nodes into one line", func() {
		blocks, err := pdf.ParseBlocks(pageHTML)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks[2].Text).To(Equal("Dark Communion"))
	})

	It("drops whitespace-only paragraphs", func() {
		blocks, err := pdf.ParseBlocks(pageHTML)
		Expect(err).NotTo(HaveOccurred())
		for _, block := range blocks {
			Expect(block.Text).NotTo(BeEmpty())
		}
	})

	It("returns no blocks for an empty page", func() {
		blocks, err := pdf.ParseBlocks("<html><body></body></html>")
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(BeEmpty())
	})
})
