// Package race defines the canonical race categories shared by every pipeline
// stage and the normalization of raw source values into them.
package race

import (
	"strings"

	"uofstats/internal/config"
)

// Category is a canonical race category.
type Category string

const (
	Black          Category = "Black"
	White          Category = "White"
	Hispanic       Category = "Hispanic"
	AsianPacific   Category = "Asian / Pacific Islander"
	NativeAmerican Category = "Native American"
	Unknown        Category = "Unknown"
)

// Recognized lists the categories with population denominators, in the order
// used by every table and chart. Unknown is excluded: it has no census
// counterpart.
var Recognized = []Category{Black, White, Hispanic, AsianPacific, NativeAmerican}

// All is Recognized plus Unknown.
var All = append(append([]Category{}, Recognized...), Unknown)

// Normalizer maps raw source race strings onto canonical categories.
type Normalizer struct {
	aliases map[string]Category
	policy  config.UnknownPolicy
}

// NewNormalizer builds a Normalizer from config. Alias keys are matched
// case-insensitively.
func NewNormalizer(cfg config.RacesConfig) *Normalizer {
	n := &Normalizer{
		aliases: make(map[string]Category, len(cfg.Aliases)),
		policy:  cfg.UnknownPolicy,
	}
	for raw, canonical := range cfg.Aliases {
		n.aliases[strings.ToLower(strings.TrimSpace(raw))] = Category(canonical)
	}
	return n
}

// Normalize returns the canonical category for a raw value and whether the
// value should be kept. Empty and unrecognized values fall into Unknown under
// the bucket policy; under the drop policy unrecognized values report keep ==
// false. Empty values are always Unknown: they represent missing data, not an
// unrecognized category.
func (n *Normalizer) Normalize(raw string) (cat Category, keep bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return Unknown, true
	}
	if c, ok := n.aliases[key]; ok {
		return c, true
	}
	if n.policy == config.UnknownDrop {
		return Unknown, false
	}
	return Unknown, true
}
