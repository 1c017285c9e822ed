package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const uncurlFileName = ".uncurl"

type uncurlProfile struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type uncurlFile struct {
	Include  []string                 `yaml:"include"`
	Exclude  []string                 `yaml:"exclude"`
	Indent   int                      `yaml:"indent"`
	Output   string                   `yaml:"output"`
	Profiles map[string]uncurlProfile `yaml:"profiles"`
}

type uncurlRuleSet struct {
	include []string
	exclude []string
	indent  int
}

// readUncurlFile loads the rule set from an .uncurl file, merging the named
// profile (or the "default" profile when the named one is absent) on top of
// the top-level include/exclude lists.
func readUncurlFile(path string, profile string) (*uncurlRuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg uncurlFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse uncurl file: %w", err)
	}

	include := append([]string{}, cfg.Include...)
	exclude := append([]string{}, cfg.Exclude...)

	if len(cfg.Profiles) > 0 {
		if prof, ok := cfg.Profiles[profile]; ok {
			include = append(include, prof.Include...)
			exclude = append(exclude, prof.Exclude...)
		} else if prof, ok := cfg.Profiles["default"]; ok {
			include = append(include, prof.Include...)
			exclude = append(exclude, prof.Exclude...)
		}
	}

	return &uncurlRuleSet{
		include: include,
		exclude: exclude,
		indent:  cfg.Indent,
	}, nil
}
