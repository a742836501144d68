package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/golift/pkg/config"
)

// envVarPrefix is the prefix for all golift environment variables.
const envVarPrefix = "GOLIFT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PAIR":             {field: "default_pair", typ: envTypeString},
	"POLICY":           {field: "policy", typ: envTypeString},
	"INPUT_FORMAT":     {field: "input_format", typ: envTypeString},
	"FORMAT":           {field: "format", typ: envTypeString},
	"JOBS":             {field: "jobs", typ: envTypeInt},
	"REJECT_OVERLAPS":  {field: "blocks.reject_overlaps", typ: envTypeBool},
	"CHECK_EXTENSIONS": {field: "check.extensions", typ: envTypeSlice},
	"CHECK_IGNORE":     {field: "check.ignore", typ: envTypeSlice},
	"STATS":            {field: "stats", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOLIFT_ (e.g., GOLIFT_POLICY).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "default_pair":
		cfg.DefaultPair = value
	case "policy":
		cfg.Policy = value
	case "input_format":
		cfg.InputFormat = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "blocks.reject_overlaps":
		cfg.Blocks.RejectOverlaps = value
	case "stats":
		cfg.Stats = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "check.extensions":
		cfg.Check.Extensions = value
	case "check.ignore":
		cfg.Check.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns the supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOLIFT_PAIR":             "Genome pair used when --pair is not given",
		"GOLIFT_POLICY":           "Interval policy: reject, split, or stitch",
		"GOLIFT_INPUT_FORMAT":     "Query syntax: chrpos, bed, or region",
		"GOLIFT_FORMAT":           "Output format: tsv, json, summary, or html",
		"GOLIFT_JOBS":             "Number of parallel workers (0 = auto)",
		"GOLIFT_REJECT_OVERLAPS":  "Fail on overlapping blocks: true or false",
		"GOLIFT_CHECK_EXTENSIONS": "Comma-separated block file extensions for check",
		"GOLIFT_CHECK_IGNORE":     "Comma-separated ignore patterns for check",
		"GOLIFT_STATS":            "Print summary counters to stderr: true or false",
	}
}
