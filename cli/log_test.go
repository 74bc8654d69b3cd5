package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/packrat/log"
)

func TestLogConfigScan(t *testing.T) {
	defer log.Config(log.WithDefaults(os.Stderr))

	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate_values",
			args: []string{"parse", "--log-level", "trace", "--log-format", "json"},
			want: logConfig{Level: "trace", Format: "json", Pretty: true},
		},
		{
			name: "assigned_values",
			args: []string{"--log-level=warn", "--log-caller", "--no-log-pretty"},
			want: logConfig{Level: "warn", Caller: true},
		},
		{
			name: "explicit_bools",
			args: []string{"--log-pretty=false", "--no-log-caller=false"},
			want: logConfig{Caller: true},
		},
		{
			name: "missing_value",
			args: []string{"--log-level", "--log-pretty"},
			want: logConfig{Pretty: true},
		},
		{
			name: "malformed_bool_ignored",
			args: []string{"--log-caller=maybe"},
			want: logConfig{Pretty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logConfig{Pretty: true}
			got.scan(tt.args)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogConfigVars(t *testing.T) {
	vars := (&logConfig{}).vars()
	assert.Equal(t, "trace,debug,info,warn,error", vars["logLevelEnum"])
	assert.Equal(t, "text,json", vars["logFormatEnum"])
}
