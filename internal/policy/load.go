package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a policy file.
//
//	policies:
//	  - name: TEAM_STANDARD
//	    category: business
//	    min_length: 14
//	    min_entropy: 40
//	    forbid_top_passwords: true
type File struct {
	Policies []Policy `yaml:"policies"`
}

// LoadFile decodes every YAML document in path and returns their policies.
func LoadFile(path string) ([]Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var out []Policy
	for {
		var f File
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, f.Policies...)
	}
	return out, nil
}

// LoadFiles expands a doublestar glob (e.g. "policies/**/*.yaml") and loads
// each match in lexical order. A pattern with no matches yields no policies.
func LoadFiles(pattern string) ([]Policy, error) {
	if pattern == "" {
		return nil, nil
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("policy glob %q: %w", pattern, err)
	}
	sort.Strings(matches)
	var out []Policy
	for _, m := range matches {
		ps, err := LoadFile(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}
