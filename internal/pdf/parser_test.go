package pdf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Wen-Qualtu/kt-datacards/internal/pdf"
	"github.com/Wen-Qualtu/kt-datacards/pkg/models"
)

func sizedBlock(text string, size float64) models.TextBlock {
	return models.TextBlock{Text: text, Size: size}
}

var _ = Describe("ExtractTitle", func() {
	blooded := &models.Team{Slug: "blooded", DisplayName: "Blooded"}

	Context("for ploy and equipment cards", func() {
		It("takes the first candidate right after the type header with high confidence", func() {
			blocks := []models.TextBlock{
				sizedBlock("BLOODED", 8),
				sizedBlock("STRATEGY PLOY", 10),
				sizedBlock("Dark Communion", 9),
				sizedBlock("Until the end of the turning point...", 7),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeStrategyPloys, blooded)
			Expect(title).To(Equal("dark-communion"))
			Expect(confidence).To(Equal(models.ConfidenceHigh))
		})

		It("downgrades confidence when the title is not immediately after the header", func() {
			blocks := []models.TextBlock{
				sizedBlock("BLOODED", 8),
				sizedBlock("FIREFIGHT PLOY", 10),
				sizedBlock("1CP", 7),
				sizedBlock("Vicious Reprisal", 9),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeFirefightPloys, blooded)
			Expect(title).To(Equal("vicious-reprisal"))
			Expect(confidence).To(Equal(models.ConfidenceMedium))
		})

		It("rejects titles matching the team name", func() {
			blocks := []models.TextBlock{
				sizedBlock("BLOODED", 8),
				sizedBlock("STRATEGY PLOY", 10),
				sizedBlock("BLOODED", 9),
				sizedBlock("Dark Communion", 9),
			}

			title, _ := pdf.ExtractTitle(blocks, models.CardTypeStrategyPloys, blooded)
			Expect(title).To(Equal("dark-communion"))
		})

		It("skips generic labels and rules-text lines", func() {
			blocks := []models.TextBlock{
				sizedBlock("BLOODED", 8),
				sizedBlock("FACTION EQUIPMENT", 10),
				sizedBlock("Select one operative (see below):", 7),
				sizedBlock("Corpse Tokens", 9),
			}

			title, _ := pdf.ExtractTitle(blocks, models.CardTypeEquipment, blooded)
			Expect(title).To(Equal("corpse-tokens"))
		})
	})

	Context("for faction rules", func() {
		It("allows a title equal to the team name", func() {
			blocks := []models.TextBlock{
				sizedBlock("FACTION RULES", 10),
				sizedBlock("BLOODED", 12),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeFactionRules, blooded)
			Expect(title).To(Equal("blooded"))
			Expect(confidence).To(Equal(models.ConfidenceHigh))
		})

		It("names the marker and token reference page", func() {
			blocks := []models.TextBlock{
				sizedBlock("FACTION RULES", 10),
				sizedBlock("MARKER AND TOKEN GUIDE", 9),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeFactionRules, blooded)
			Expect(title).To(Equal("markertoken-guide"))
			Expect(confidence).To(Equal(models.ConfidenceHigh))
		})
	})

	Context("for operative-selection pages", func() {
		It("always uses the fixed title", func() {
			blocks := []models.TextBlock{
				sizedBlock("BLOODED KILL TEAM", 12),
				sizedBlock("OPERATIVES", 10),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeOperatives, blooded)
			Expect(title).To(Equal("operatives"))
			Expect(confidence).To(Equal(models.ConfidenceHigh))
		})
	})

	Context("for datacards", func() {
		It("takes the largest text as the operative name with high confidence", func() {
			blocks := []models.TextBlock{
				sizedBlock("CHOSEN OF THE DARK GODS", 18),
				sizedBlock("APL 2", 8),
				sizedBlock("MOVE 6\"", 8),
				sizedBlock("BLOODED, ASTRA MILITARUM, CHAOS", 6),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeDatacards, blooded)
			Expect(title).To(Equal("chosen-of-the-dark-gods"))
			Expect(confidence).To(Equal(models.ConfidenceHigh))
		})

		It("ignores text below the minimum title size", func() {
			blocks := []models.TextBlock{
				sizedBlock("Some body text line", 8),
				sizedBlock("Another body line", 8),
			}

			title, confidence := pdf.ExtractTitle(blocks, models.CardTypeDatacards, blooded)
			Expect(title).To(BeEmpty())
			Expect(confidence).To(Equal(models.ConfidenceLow))
		})
	})

	It("returns an empty title with low confidence when nothing qualifies", func() {
		title, confidence := pdf.ExtractTitle(nil, models.CardTypeStrategyPloys, blooded)
		Expect(title).To(BeEmpty())
		Expect(confidence).To(Equal(models.ConfidenceLow))
	})
})

var _ = Describe("IsFrontPage", func() {
	It("requires the literal type header for ploy cards", func() {
		front := blocksOf("BLOODED", "STRATEGY PLOY", "Dark Communion")
		back := blocksOf("Continued rules text", "more rules text")

		Expect(pdf.IsFrontPage(front, models.CardTypeStrategyPloys)).To(BeTrue())
		Expect(pdf.IsFrontPage(back, models.CardTypeStrategyPloys)).To(BeFalse())
	})

	It("requires the stat block for datacards", func() {
		front := blocksOf("PLAGUE MARINE FIGHTER", "APL 2", "MOVE 5\"", "SAVE 3+", "WOUNDS 12")
		back := blocksOf("PLAGUE MARINE FIGHTER", "Special rules continue here")

		Expect(pdf.IsFrontPage(front, models.CardTypeDatacards)).To(BeTrue())
		Expect(pdf.IsFrontPage(back, models.CardTypeDatacards)).To(BeFalse())
	})
})

var _ = Describe("HasContinuationMarker", func() {
	DescribeTable("recognizing marker phrasings",
		func(text string, expected bool) {
			Expect(pdf.HasContinuationMarker(blocksOf(text))).To(Equal(expected))
		},
		Entry("plain marker", "CONTINUES ON OTHER SIDE", true),
		Entry("with article", "CONTINUES ON THE OTHER SIDE", true),
		Entry("rules variant", "RULES CONTINUE ON OTHER SIDE", true),
		Entry("mixed case", "Rules continue on other side", true),
		Entry("unrelated text", "SEE OPPOSITE PAGE", false),
	)
})

var _ = Describe("AnalyzePages", func() {
	blooded := &models.Team{Slug: "blooded", DisplayName: "Blooded"}

	It("pairs a marked front with the following page as its back", func() {
		pages := [][]models.TextBlock{
			blocksOf("BLOODED", "FACTION RULES", "Blessings of the Dark Gods", "RULES CONTINUE ON OTHER SIDE"),
			blocksOf("Continued rules text without any header"),
		}

		infos, warnings := pdf.AnalyzePages(pages, models.CardTypeFactionRules, blooded)
		Expect(warnings).To(BeEmpty())
		Expect(infos).To(HaveLen(1))
		Expect(infos[0].Title).To(Equal("blessings-of-the-dark-gods"))
		Expect(infos[0].IsFront).To(BeTrue())
		Expect(infos[0].BackPage).To(Equal(1))
	})

	It("lets an explicit header on the next page override the marker", func() {
		pages := [][]models.TextBlock{
			blocksOf("BLOODED", "STRATEGY PLOY", "Dark Communion", "CONTINUES ON OTHER SIDE"),
			blocksOf("BLOODED", "STRATEGY PLOY", "Glory Kill"),
		}

		infos, warnings := pdf.AnalyzePages(pages, models.CardTypeStrategyPloys, blooded)
		Expect(infos).To(HaveLen(2))
		Expect(infos[0].BackPage).To(Equal(-1))
		Expect(infos[1].Title).To(Equal("glory-kill"))
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Reason).To(ContainSubstring("next page has its own header"))
	})

	It("warns when a marker on the final page has no back to pair with", func() {
		pages := [][]models.TextBlock{
			blocksOf("BLOODED", "STRATEGY PLOY", "Dark Communion", "CONTINUES ON OTHER SIDE"),
		}

		infos, warnings := pdf.AnalyzePages(pages, models.CardTypeStrategyPloys, blooded)
		Expect(infos).To(HaveLen(1))
		Expect(infos[0].BackPage).To(Equal(-1))
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Reason).To(ContainSubstring("final page"))
	})

	It("flags a headerless page without a preceding marker as malformed", func() {
		pages := [][]models.TextBlock{
			blocksOf("BLOODED", "STRATEGY PLOY", "Dark Communion"),
			blocksOf("Orphaned continuation text"),
		}

		infos, warnings := pdf.AnalyzePages(pages, models.CardTypeStrategyPloys, blooded)
		Expect(infos).To(HaveLen(2))
		Expect(infos[0].BackPage).To(Equal(-1))
		Expect(infos[1].Malformed).To(BeTrue())
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0].Page).To(Equal(1))
	})

	It("pairs datacard pages repeating the operative name", func() {
		pages := [][]models.TextBlock{
			{
				sizedBlock("CHOSEN OF THE DARK GODS", 18),
				sizedBlock("APL 2", 8),
				sizedBlock("MOVE 6\"", 8),
				sizedBlock("SAVE 5+", 8),
				sizedBlock("WOUNDS 8", 8),
			},
			{
				sizedBlock("CHOSEN OF THE DARK GODS", 18),
				sizedBlock("Unique actions continue here", 8),
			},
		}

		infos, warnings := pdf.AnalyzePages(pages, models.CardTypeDatacards, blooded)
		Expect(warnings).To(BeEmpty())
		Expect(infos).To(HaveLen(1))
		Expect(infos[0].Title).To(Equal("chosen-of-the-dark-gods"))
		Expect(infos[0].BackPage).To(Equal(1))
	})

	It("keeps distinct datacards separate", func() {
		pages := [][]models.TextBlock{
			{
				sizedBlock("CHOSEN OF THE DARK GODS", 18),
				sizedBlock("APL 2", 8),
				sizedBlock("MOVE 6\"", 8),
				sizedBlock("SAVE 5+", 8),
				sizedBlock("WOUNDS 8", 8),
			},
			{
				sizedBlock("TRAITOR GUNNER", 18),
				sizedBlock("APL 2", 8),
				sizedBlock("MOVE 6\"", 8),
				sizedBlock("SAVE 5+", 8),
				sizedBlock("WOUNDS 7", 8),
			},
		}

		infos, _ := pdf.AnalyzePages(pages, models.CardTypeDatacards, blooded)
		Expect(infos).To(HaveLen(2))
		Expect(infos[0].BackPage).To(Equal(-1))
		Expect(infos[1].BackPage).To(Equal(-1))
	})
})

var _ = Describe("Warning", func() {
	It("reports pages 1-based", func() {
		w := pdf.Warning{Page: 0, Reason: "something odd"}
		Expect(w.String()).To(Equal("page 1: something odd"))
	})
})
