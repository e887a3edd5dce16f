package main

import (
	"fmt"
	"os"

	"github.com/hexaploid/glossa/langdet"
	"github.com/hexaploid/glossa/metrics"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  string               `yaml:"log_level"`
	LogFormat string               `yaml:"log_format"`
	Server    ServerConfig         `yaml:"server"`
	Detector  DetectorConfig       `yaml:"detector"`
	Metric    metrics.MetricConfig `yaml:"metric"`
}

// DetectorConfig pairs the detector tunables with the profile source.
type DetectorConfig struct {
	// ProfilesDir holds one frequency table per language, named <code>.json.
	// Empty selects the embedded profiles.
	ProfilesDir string `yaml:"profiles_dir"`

	langdet.Config `yaml:",inline"`
}

func newConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: logFormatText,
		Server:    newServerConfig(),
		Metric:    metrics.MetricConfig{Listen: ":9090"},
	}
}

func loadConfig(configFile string) (cfg *Config, err error) {

	cfg = newConfig()
	yamlFile, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("config file '%s' not found", configFile)
			return
		}
		return nil, fmt.Errorf("read config file '%s' failed: %w", configFile, err)
	}

	err = yaml.Unmarshal(yamlFile, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse '%s' failed: %w", configFile, err)
	}
	return
}
