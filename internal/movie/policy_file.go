package movie

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyHeader is read first to find the policy a file builds on.
type policyHeader struct {
	Base string `yaml:"base"`
}

// LoadPolicyFile reads a YAML policy. Fields left out of the file keep the
// values of its base policy (the "base" key, or fallback when absent):
//
//	base: bracketed
//	name: festival
//	max_year: 2024
//	invalid_rating: skip
func LoadPolicyFile(path string, fallback Policy) (Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(b, fallback)
}

// ParsePolicy decodes a YAML policy layered over its base.
func ParsePolicy(data []byte, fallback Policy) (Policy, error) {
	var hdr policyHeader
	if err := yaml.Unmarshal(data, &hdr); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}

	p := fallback
	if hdr.Base != "" {
		base, err := PolicyByName(hdr.Base)
		if err != nil {
			return Policy{}, err
		}
		p = base
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
