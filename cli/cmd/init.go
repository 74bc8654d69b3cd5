package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/packrat/log"
	"github.com/ardnew/packrat/profile"
)

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrConfigUndefined
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok || confPath == "" {
		return ErrConfigUndefined
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	out, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.WriteFile(confPath, out, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// configValues collects the values of the application-level flags in
// declaration order. Help and profiling flags are left out.
func configValues(ktx *kong.Context) yaml.MapSlice {
	ignore := []string{"help", profile.Tag}

	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
			}
		case []string:
			if len(v) > 0 {
				values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
			}
		default:
			values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return values
}
