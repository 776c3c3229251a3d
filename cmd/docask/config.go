package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/docask"
	"gopkg.in/yaml.v3"
)

// sourcesFile is the layout of a --sources YAML file.
type sourcesFile struct {
	Sources []*docask.DocSource `yaml:"sources"`
}

// LoadSources reads documentation sources from a YAML file. Every source
// is validated; an empty path returns no sources.
func LoadSources(path string) ([]*docask.DocSource, error) {
	if path == "" {
		return nil, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, docask.Errorf(docask.EINVALID, "parsing sources file %q: %v", path, err)
	}
	for _, s := range f.Sources {
		if s == nil {
			return nil, docask.Errorf(docask.EINVALID, "sources file %q has an empty entry", path)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Sources, nil
}
