package teams_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Wen-Qualtu/kt-datacards/internal/teams"
	"github.com/Wen-Qualtu/kt-datacards/pkg/logger"
)

func testLogger() *logger.Logger {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[teams-test] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(true)
	return log
}

const teamConfigYAML = `teams:
  hearthkyn-salvagers:
    display_name: Hearthkyn Salvagers
    aliases:
      - Hearthkyn
      - HEARTHKYN SALVAGER
    faction: Leagues of Votann
    army: Leagues of Votann

  angels-of-death:
    display_name: Angels of Death
    aliases:
      - Angels of Death 2021
    faction: Adeptus Astartes
`

var _ = Describe("Registry", func() {
	var (
		tempDir    string
		configPath string
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "teams-test-*")
		Expect(err).NotTo(HaveOccurred())

		configPath = filepath.Join(tempDir, "teams.yaml")
		err = os.WriteFile(configPath, []byte(teamConfigYAML), 0644)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Context("loading the alias table", func() {
		It("loads every configured team", func() {
			registry, err := teams.Load(configPath, testLogger())
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Len()).To(Equal(2))
		})

		It("starts empty when the file is missing", func() {
			registry, err := teams.Load(filepath.Join(tempDir, "nope.yaml"), testLogger())
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Len()).To(BeZero())
		})

		It("rejects malformed YAML", func() {
			err := os.WriteFile(configPath, []byte("teams: [not a map"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = teams.Load(configPath, testLogger())
			Expect(err).To(HaveOccurred())
		})
	})

	Context("resolving names", func() {
		var registry *teams.Registry

		BeforeEach(func() {
			var err error
			registry, err = teams.Load(configPath, testLogger())
			Expect(err).NotTo(HaveOccurred())
		})

		It("resolves the canonical slug", func() {
			team, ok := registry.Resolve("hearthkyn-salvagers")
			Expect(ok).To(BeTrue())
			Expect(team.DisplayName).To(Equal("Hearthkyn Salvagers"))
		})

		It("resolves free-text spellings", func() {
			team, ok := registry.Resolve("HEARTHKYN SALVAGERS")
			Expect(ok).To(BeTrue())
			Expect(team.Slug).To(Equal("hearthkyn-salvagers"))
		})

		It("resolves aliases", func() {
			team, ok := registry.Resolve("Angels of Death 2021")
			Expect(ok).To(BeTrue())
			Expect(team.Slug).To(Equal("angels-of-death"))
		})

		It("does not resolve unknown names", func() {
			_, ok := registry.Resolve("Void Dancer Troupe")
			Expect(ok).To(BeFalse())
		})

		It("does not resolve empty text", func() {
			_, ok := registry.Resolve("   ")
			Expect(ok).To(BeFalse())
		})
	})

	Context("auto-registering unknown teams", func() {
		var registry *teams.Registry

		BeforeEach(func() {
			var err error
			registry, err = teams.Load(configPath, testLogger())
			Expect(err).NotTo(HaveOccurred())
		})

		It("creates a normalized entry keeping the original spelling", func() {
			team := registry.GetOrCreate("Xyzzyx Clan")
			Expect(team.Slug).To(Equal("xyzzyx-clan"))
			Expect(team.DisplayName).To(Equal("Xyzzyx Clan"))
			Expect(registry.Len()).To(Equal(3))
		})

		It("returns the same entry on repeat lookups", func() {
			first := registry.GetOrCreate("Xyzzyx Clan")
			second := registry.GetOrCreate("XYZZYX CLAN")
			Expect(second).To(BeIdenticalTo(first))
			Expect(registry.Len()).To(Equal(3))
		})

		It("returns configured teams instead of creating duplicates", func() {
			team := registry.GetOrCreate("Hearthkyn")
			Expect(team.Slug).To(Equal("hearthkyn-salvagers"))
			Expect(registry.Len()).To(Equal(2))
		})
	})

	It("lists all teams sorted by slug", func() {
		registry, err := teams.Load(configPath, testLogger())
		Expect(err).NotTo(HaveOccurred())

		all := registry.All()
		Expect(all).To(HaveLen(2))
		Expect(all[0].Slug).To(Equal("angels-of-death"))
		Expect(all[1].Slug).To(Equal("hearthkyn-salvagers"))
	})
})
