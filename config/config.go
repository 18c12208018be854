// Package config loads the optional .rcs.yaml profile.
//
// A profile names the three source files of a recurring reconciliation, how
// each one is encoded, and the currency used to display amounts:
//
//	currency: USD
//	sources:
//	  im:
//	    path: exports/im.csv
//	  cust:
//	    path: exports/custodian.txt
//	    delimiter: pipe
//	  ch:
//	    path: exports/clearing.json
//	    format: json
//	    jsonpath: $.trades[*]
//
// Relative paths are resolved against the directory holding the profile.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/recon"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the profile looked up in the current directory.
const DefaultFile = ".rcs.yaml"

// SourceConfig declares one source entry of the profile.
type SourceConfig struct {
	Path      string `yaml:"path,omitempty"`
	Delimiter string `yaml:"delimiter,omitempty"`
	Format    string `yaml:"format,omitempty"`
	JSONPath  string `yaml:"jsonpath,omitempty"`
}

// Profile models .rcs.yaml.
type Profile struct {
	Currency string                  `yaml:"currency,omitempty"`
	Sources  map[string]SourceConfig `yaml:"sources,omitempty"`
}

// Load reads the profile at path. A missing file is not an error and yields an
// empty profile.
func Load(path string) (*Profile, error) {
	p := &Profile{Sources: map[string]SourceConfig{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if p.Sources == nil {
		p.Sources = map[string]SourceConfig{}
	}
	p.normalize(filepath.Dir(path))
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Source returns the entry of a source, empty when the profile omits it.
func (p *Profile) Source(id recon.SourceID) SourceConfig {
	return p.Sources[id.Key()]
}

// Input returns the file description of a source. The format defaults to the
// one suggested by the file extension.
func (p *Profile) Input(id recon.SourceID) recon.Input {
	sc := p.Source(id)
	in := recon.Input{Path: sc.Path, Format: recon.FormatOf(sc.Path), JSONPath: sc.JSONPath}
	if sc.Format != "" {
		in.Format, _ = recon.ParseFormat(sc.Format)
	}
	return in
}

// Inputs returns the file descriptions of the three sources in canonical order.
func (p *Profile) Inputs() [3]recon.Input {
	var inputs [3]recon.Input
	for i, id := range recon.Sources {
		inputs[i] = p.Input(id)
	}
	return inputs
}

// Workspace returns an empty workspace configured with the profile delimiters.
func (p *Profile) Workspace() recon.Workspace {
	w := recon.NewWorkspace()
	for _, id := range recon.Sources {
		d, _ := recon.ParseDelimiter(p.Source(id).Delimiter)
		w = w.WithDelimiter(id, d)
	}
	return w
}

func (p *Profile) normalize(base string) {
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	normalized := make(map[string]SourceConfig, len(p.Sources))
	for key, sc := range p.Sources {
		sc.Path = resolvePath(base, sc.Path)
		sc.Format = strings.ToLower(strings.TrimSpace(sc.Format))
		sc.JSONPath = strings.TrimSpace(sc.JSONPath)
		normalized[strings.ToLower(strings.TrimSpace(key))] = sc
	}
	p.Sources = normalized
}

func (p *Profile) validate() error {
	if p.Currency != "" && money.GetCurrency(p.Currency) == nil {
		return fmt.Errorf("unknown currency %q", p.Currency)
	}
	for key, sc := range p.Sources {
		if _, err := recon.ParseSourceID(key); err != nil {
			return fmt.Errorf("sources: %w", err)
		}
		if _, err := recon.ParseDelimiter(sc.Delimiter); err != nil {
			return fmt.Errorf("sources[%s]: %w", key, err)
		}
		f, err := recon.ParseFormat(sc.Format)
		if err != nil {
			return fmt.Errorf("sources[%s]: %w", key, err)
		}
		if sc.Format == "" {
			f = recon.FormatOf(sc.Path)
		}
		if sc.JSONPath != "" && f != recon.JSON {
			return fmt.Errorf("sources[%s]: jsonpath is only used by json sources", key)
		}
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
