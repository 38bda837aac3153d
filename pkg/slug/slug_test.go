package slug_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Wen-Qualtu/kt-datacards/pkg/slug"
)

var _ = Describe("Make", func() {
	DescribeTable("converting text to slugs",
		func(input, expected string) {
			Expect(slug.Make(input)).To(Equal(expected))
		},
		Entry("uppercase team name", "HEARTHKYN SALVAGERS", "hearthkyn-salvagers"),
		Entry("mixed case", "Angels of Death", "angels-of-death"),
		Entry("punctuation dropped", "Dr. Cawl's Elite!", "dr-cawls-elite"),
		Entry("underscores", "strategy_ploys", "strategy-ploys"),
		Entry("multiple spaces collapse", "plague   marines", "plague-marines"),
		Entry("leading and trailing space", "  Kasrkin  ", "kasrkin"),
		Entry("digits kept", "Angels of Death 2021", "angels-of-death-2021"),
		Entry("already a slug", "hearthkyn-salvagers", "hearthkyn-salvagers"),
		Entry("empty input", "", ""),
		Entry("only punctuation", "!!!", ""),
	)

	It("is idempotent", func() {
		inputs := []string{
			"HEARTHKYN SALVAGERS",
			"Dr. Cawl's Elite!",
			"strategy_ploys",
			"angels-of-death-2021",
		}
		for _, input := range inputs {
			once := slug.Make(input)
			Expect(slug.Make(once)).To(Equal(once))
		}
	})
})

var _ = Describe("Display", func() {
	It("turns a slug into title-cased words", func() {
		Expect(slug.Display("hearthkyn-salvagers")).To(Equal("Hearthkyn Salvagers"))
	})

	It("handles a single word", func() {
		Expect(slug.Display("kasrkin")).To(Equal("Kasrkin"))
	})

	It("keeps digits as-is", func() {
		Expect(slug.Display("faction-rule-2")).To(Equal("Faction Rule 2"))
	})
})
