package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig carries defaults normally given as flags. Flags set on the
// command line always win.
type fileConfig struct {
	Lines string `yaml:"lines"`
	Quiet *bool  `yaml:"quiet"`
	Color string `yaml:"color"`
	S3    struct {
		Region    string `yaml:"region"`
		Profile   string `yaml:"profile"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"s3"`
	Azure struct {
		ConnectionString string `yaml:"connection_string"`
	} `yaml:"azure"`
}

// loadConfig reads the defaults file. An explicit --config path must
// exist; the default location (~/.config/tailr/config.yaml) is optional.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(home, ".config", "tailr", "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		return nil, nil
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// applyConfig fills in values for flags the user did not set.
func applyConfig(cmd *cobra.Command, cfg *fileConfig) {
	if cfg == nil {
		return
	}
	f := cmd.Flags()
	if cfg.Lines != "" && !f.Changed("lines") {
		linesSpec = cfg.Lines
	}
	if cfg.Quiet != nil && !f.Changed("quiet") {
		quiet = *cfg.Quiet
	}
	if cfg.Color != "" && !f.Changed("color") {
		colorMode = cfg.Color
	}
	if cfg.S3.Region != "" && !f.Changed("s3-region") {
		s3Region = cfg.S3.Region
	}
	if cfg.S3.Profile != "" && !f.Changed("s3-profile") {
		s3Profile = cfg.S3.Profile
	}
	if cfg.S3.AccessKey != "" && !f.Changed("s3-access-key") {
		s3AccessKey = cfg.S3.AccessKey
	}
	if cfg.S3.SecretKey != "" && !f.Changed("s3-secret-key") {
		s3SecretKey = cfg.S3.SecretKey
	}
	if cfg.Azure.ConnectionString != "" && !f.Changed("azure-connection-string") {
		azConnStr = cfg.Azure.ConnectionString
	}
}
