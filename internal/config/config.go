// internal/config/config.go
package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Config struct {
	InputDir     string `yaml:"input_dir"`
	ProcessedDir string `yaml:"processed_dir"`
	OutputDir    string `yaml:"output_dir"`
	ArchiveDir   string `yaml:"archive_dir"`
	MetadataDir  string `yaml:"metadata_dir"`
	FailedDir    string `yaml:"failed_dir"`
	BacksideDir  string `yaml:"backside_dir"`
	TeamConfig   string `yaml:"team_config"`
	DPI          int    `yaml:"dpi"`
	ImageQuality int    `yaml:"image_quality"`
	Manifest     struct {
		BaseURL  string `yaml:"base_url"`
		JSONPath string `yaml:"json_path"`
		CSVPath  string `yaml:"csv_path"`
	} `yaml:"manifest"`
}

func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// Missing config file is fine; run on defaults.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.InputDir == "" {
		cfg.InputDir = "input"
	}
	if cfg.ProcessedDir == "" {
		cfg.ProcessedDir = "processed"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "archive"
	}
	if cfg.MetadataDir == "" {
		cfg.MetadataDir = "metadata"
	}
	if cfg.FailedDir == "" {
		cfg.FailedDir = "input/failed"
	}
	if cfg.BacksideDir == "" {
		cfg.BacksideDir = "config/card-backside"
	}
	if cfg.TeamConfig == "" {
		cfg.TeamConfig = "config/teams.yaml"
	}
	if cfg.DPI == 0 {
		cfg.DPI = 300
	}
	if cfg.ImageQuality == 0 {
		cfg.ImageQuality = 95
	}
	if cfg.Manifest.BaseURL == "" {
		cfg.Manifest.BaseURL = "https://raw.githubusercontent.com/Wen-Qualtu/kt-datacards/main/output"
	}
	if cfg.Manifest.JSONPath == "" {
		cfg.Manifest.JSONPath = "output/datacards-urls.json"
	}
	if cfg.Manifest.CSVPath == "" {
		cfg.Manifest.CSVPath = "output/datacards-urls.csv"
	}
}
