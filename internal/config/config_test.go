package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Wen-Qualtu/kt-datacards/internal/config"
)

var _ = Describe("Config", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("runs on defaults when the file is missing", func() {
		cfg, err := config.Load(filepath.Join(tempDir, "nope.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.InputDir).To(Equal("input"))
		Expect(cfg.OutputDir).To(Equal("output"))
		Expect(cfg.FailedDir).To(Equal("input/failed"))
		Expect(cfg.DPI).To(Equal(300))
		Expect(cfg.ImageQuality).To(Equal(95))
		Expect(cfg.Manifest.JSONPath).To(Equal("output/datacards-urls.json"))
	})

	It("overrides only what the file sets", func() {
		path := filepath.Join(tempDir, "settings.yaml")
		content := []byte("output_dir: cards\ndpi: 150\nmanifest:\n  base_url: https://example.com/cards\n")
		Expect(os.WriteFile(path, content, 0644)).To(Succeed())

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.OutputDir).To(Equal("cards"))
		Expect(cfg.DPI).To(Equal(150))
		Expect(cfg.Manifest.BaseURL).To(Equal("https://example.com/cards"))

		Expect(cfg.InputDir).To(Equal("input"))
		Expect(cfg.ImageQuality).To(Equal(95))
	})

	It("rejects malformed YAML", func() {
		path := filepath.Join(tempDir, "settings.yaml")
		Expect(os.WriteFile(path, []byte("dpi: [oops"), 0644)).To(Succeed())

		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("provides the same defaults via Default", func() {
		cfg := config.Default()
		Expect(cfg.TeamConfig).To(Equal("config/teams.yaml"))
		Expect(cfg.BacksideDir).To(Equal("config/card-backside"))
	})
})
