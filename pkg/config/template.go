package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

const yamlTemplate = `# golift configuration
# See: https://github.com/yaklabco/golift

# Named genome pairs. Block paths are relative to this file.
pairs:
  pombase_leupold:
    name: "PomBase ↔ Leupold Consensus"
    genome_a: PomBase
    genome_b: Leupold
    blocks_ab: data/pombase_leupold/A_to_B.blocks.tsv
    blocks_ba: data/pombase_leupold/B_to_A.blocks.tsv

# Pair used when --pair is not given
default_pair: pombase_leupold

# Interval policy: reject, split, or stitch
policy: reject

# Query syntax: chrpos (CHR:POS, 1-based), bed, or region (CHR:START-END)
input_format: chrpos

# Output format: tsv, json, summary, or html
format: tsv

# Number of parallel workers (0 = auto)
jobs: 0

# Block file loading
blocks:
  # Fail instead of warning when blocks overlap on genome A
  reject_overlaps: false

# Block file discovery for "golift check"
# check:
#   extensions: [".tsv"]
#   ignore:
#     - "archive/**"
`

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	return []byte(yamlTemplate), nil
}

// templateToJSON renders the template settings as JSON. Comments are lost.
func templateToJSON() ([]byte, error) {
	cfg, err := FromYAML([]byte(yamlTemplate))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	pairs := make(map[string]any, len(cfg.Pairs))
	for key, p := range cfg.Pairs {
		pairs[key] = map[string]any{
			"name":      p.Name,
			"genome_a":  p.GenomeA,
			"genome_b":  p.GenomeB,
			"blocks_ab": p.BlocksAB,
			"blocks_ba": p.BlocksBA,
		}
	}

	out := map[string]any{
		"pairs":        pairs,
		"default_pair": cfg.DefaultPair,
		"policy":       cfg.Policy,
		"input_format": cfg.InputFormat,
		"format":       cfg.Format,
		"jobs":         cfg.Jobs,
		"blocks": map[string]any{
			"reject_overlaps": cfg.Blocks.RejectOverlaps,
		},
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# golift configuration
# See: https://github.com/yaklabco/golift`
}
