package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] for YAML config files.
//
// Top-level keys name global flags. A key naming a subcommand holds a
// mapping of that command's flags:
//
//	log-level: debug
//	log-pretty: false
//	parse:
//	  grammar: left
//	scale:
//	  sizes: [16, 32, 64]
//
// Keys may use underscores in place of hyphens. Command-line flags override
// config file values. A file that does not decode to a mapping is ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		return config{}, nil //nolint:nilerr 
	}

	return config(values), nil
}

// config implements [kong.Resolver] over a decoded YAML mapping.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := lookup(r, parent.Command.Name).(map[string]any); ok {
			if v := lookup(section, flag.Name); v != nil {
				return flagValue(v), nil
			}
		}
	}

	if v := lookup(r, flag.Name); v != nil {
		if _, isSection := v.(map[string]any); !isSection {
			return flagValue(v), nil
		}
	}

	return nil, nil
}

// lookup returns m[name], trying the underscore spelling of name as well.
func lookup(m map[string]any, name string) any {
	if v, ok := m[name]; ok {
		return v
	}

	return m[strings.ReplaceAll(name, "-", "_")]
}

// flagValue converts a decoded YAML value to a form kong can map onto a
// flag. Kong parses numbers from strings and slices from separated lists.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(flagValue(e))
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}
