package configloader

import "github.com/yaklabco/golift/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pairs: merged by key, with override's non-empty fields taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans can only be switched on by a higher layer
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.DefaultPair != "" {
		result.DefaultPair = override.DefaultPair
	}
	if override.Policy != "" {
		result.Policy = override.Policy
	}
	if override.InputFormat != "" {
		result.InputFormat = override.InputFormat
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a layer can only switch these on.
	if override.Blocks.RejectOverlaps {
		result.Blocks.RejectOverlaps = true
	}
	if override.Check.FollowSymlinks {
		result.Check.FollowSymlinks = true
	}
	if override.Strict {
		result.Strict = true
	}
	if override.AllowSplit {
		result.AllowSplit = true
	}
	if override.Stitch {
		result.Stitch = true
	}
	if override.Stats {
		result.Stats = true
	}

	result.Pairs = mergePairs(base.Pairs, override.Pairs)

	if override.Check.Extensions != nil {
		result.Check.Extensions = override.Check.Extensions
	}
	if override.Check.Ignore != nil {
		result.Check.Ignore = override.Check.Ignore
	}

	return &result
}

// mergePairs merges pair definitions by key.
func mergePairs(base, override map[string]config.GenomePair) map[string]config.GenomePair {
	result := make(map[string]config.GenomePair, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergePair(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

func mergePair(base, override config.GenomePair) config.GenomePair {
	result := base
	if override.Name != "" {
		result.Name = override.Name
	}
	if override.GenomeA != "" {
		result.GenomeA = override.GenomeA
	}
	if override.GenomeB != "" {
		result.GenomeB = override.GenomeB
	}
	if override.BlocksAB != "" {
		result.BlocksAB = override.BlocksAB
	}
	if override.BlocksBA != "" {
		result.BlocksBA = override.BlocksBA
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
