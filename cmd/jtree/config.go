package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	Grammar   string `hcl:"grammar,optional"`
	Condensed bool   `hcl:"condensed,optional"`
	Target    string `hcl:"target,optional"`
	Output    string `hcl:"output,optional"`
	LogLevel  string `hcl:"log_level,optional"`
}

func loadConfig(name string) (config, error) {
	var res config
	f, diags := hclparse.NewParser().ParseHCLFile(name)
	if diags.HasErrors() {
		return res, fmt.Errorf("failed to parse configuration file %s: %w", name, diags)
	}

	diags = gohcl.DecodeBody(f.Body, nil, &res)
	if diags.HasErrors() {
		return res, fmt.Errorf("failed to decode configuration file %s: %w", name, diags)
	}
	return res, nil
}

// override replaces values with explicitly set flags.
func (c config) override(flags config, set map[string]bool) config {
	if set["g"] {
		c.Grammar = flags.Grammar
	}
	if set["condensed"] {
		c.Condensed = flags.Condensed
	}
	if set["t"] {
		c.Target = flags.Target
	}
	if set["o"] {
		c.Output = flags.Output
	}
	if set["log-level"] {
		c.LogLevel = flags.LogLevel
	}
	return c
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	if level == "" {
		level = "warn"
	}
	l, e := zapcore.ParseLevel(strings.ToLower(level))
	if e != nil {
		return nil, fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", level)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), l)
	return zap.New(core), nil
}
