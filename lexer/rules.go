package lexer

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Rule describes one token kind.
//
// Exactly one of Pattern and Literals must be set. Patterns are anchored
// automatically; Literals build an Aho-Corasick keyword matcher.
type Rule struct {
	Name     string   `yaml:"name"`
	Pattern  string   `yaml:"pattern,omitempty"`
	Literals []string `yaml:"literals,omitempty"`

	// Skip drops matched tokens (whitespace, comments) from the output.
	Skip bool `yaml:"skip,omitempty"`
}

// Rules is the rule file format. Rules are tried in order; the first rule
// matching at the current position wins.
type Rules struct {
	Rules []Rule `yaml:"rules"`
}

// ParseRules decodes a YAML rule file. Unknown fields are rejected.
func ParseRules(data []byte) (*Rules, error) {
	var rs Rules
	if err := yaml.UnmarshalStrict(data, &rs); err != nil {
		return nil, errors.Wrap(err, "decode rules")
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// LoadRules reads and decodes a YAML rule file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read rules")
	}
	rs, err := ParseRules(data)
	if err != nil {
		return nil, errors.Wrapf(err, "rules file %s", path)
	}
	return rs, nil
}

// Validate checks rule names and that each rule has exactly one matcher.
func (rs *Rules) Validate() error {
	if len(rs.Rules) == 0 {
		return errors.New("no rules defined")
	}

	seen := make(map[string]bool, len(rs.Rules))
	for i, r := range rs.Rules {
		if r.Name == "" {
			return errors.Errorf("rule %d: missing name", i)
		}
		if seen[r.Name] {
			return errors.Errorf("rule %q: duplicate name", r.Name)
		}
		seen[r.Name] = true

		hasPattern := r.Pattern != ""
		hasLiterals := len(r.Literals) > 0
		if hasPattern == hasLiterals {
			return errors.Errorf("rule %q: exactly one of pattern and literals is required", r.Name)
		}
	}
	return nil
}
