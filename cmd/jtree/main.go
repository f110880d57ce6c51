/*
jtree is a console utility checking, compiling, and converting tree notation documents.
Usage is

	jtree [-c <file>] [-g <file> [-condensed]] [-t <target>] [-o <file>] [-log-level <level>] [-v] <command> [<file>]

-c <file> defines HCL configuration file, flags override its values;

-g <file> defines grammar file parsable by langdef.Parse();

-condensed flag tells that grammar file is in condensed format;

-t <target> defines compile target, default is the target of the first root compiler;

-o <file> defines output file name, default is standard output;

-log-level <level> defines logging level, one of debug, info, warn, error; -v sets debug level.

Configuration file may contain attributes grammar, condensed, target, output, and log_level, e.g.

	grammar   = "html.grammar"
	target    = "html"
	log_level = "info"

Commands requiring grammar are check, compile, syntax, types, usage, and repl.
Commands expand, json, yaml, and outline convert any tree notation document.
Exit code is 1 if the document contains errors, 2 for invalid arguments, 3 for other failures.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
)

const (
	exitOK = iota
	exitInvalid
	exitUsage
	exitFailure
)

var errUsage = errors.New("invalid arguments")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jtree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage is  jtree [-c <file>] [-g <file> [-condensed]] [-t <target>] [-o <file>] [-v] <command> [<file>]")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "  <command>")
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(fs.Output(), "\t%-8s %s\n", name, commands[name].usage)
		}
	}

	var (
		configName string
		verbose    bool
		flags      config
	)
	fs.StringVar(&configName, "c", "", "HCL configuration file name")
	fs.StringVar(&flags.Grammar, "g", "", "grammar file name")
	fs.BoolVar(&flags.Condensed, "condensed", false, "grammar file is in condensed format")
	fs.StringVar(&flags.Target, "t", "", "compile target, default is the target of the first root compiler")
	fs.StringVar(&flags.Output, "o", "", "output file name, default is standard output")
	fs.StringVar(&flags.LogLevel, "log-level", "", "logging level: debug, info, warn, or error (default warn)")
	fs.BoolVar(&verbose, "v", false, "same as -log-level debug")
	if e := fs.Parse(args); e != nil {
		if e == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	cfg := config{}
	if configName != "" {
		var e error
		cfg, e = loadConfig(configName)
		if e != nil {
			printError(stderr, e)
			return exitUsage
		}
	}
	cfg = cfg.override(flags, setFlags(fs))
	if verbose {
		cfg.LogLevel = "debug"
	}

	log, e := newLogger(cfg.LogLevel, stderr)
	if e != nil {
		printError(stderr, e)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	cmd := commands[fs.Arg(0)]
	if cmd == nil || (cmd.file && fs.NArg() != 2) || (!cmd.file && fs.NArg() != 1) {
		fs.Usage()
		return exitUsage
	}

	en := &env{cfg: cfg, log: log, stdout: stdout, stderr: stderr}
	if cmd.grammar {
		if e = en.loadParser(); e != nil {
			printError(stderr, e)
			if errors.Is(e, errUsage) {
				return exitUsage
			}
			return exitFailure
		}
	}

	log.Debug("running command", zap.String("command", fs.Arg(0)), zap.String("file", fs.Arg(1)))
	code, e := cmd.run(en, fs.Arg(1))
	if e != nil {
		printError(stderr, e)
		if code == exitOK {
			code = exitFailure
		}
	}
	return code
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	res := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		res[f.Name] = true
	})
	return res
}
