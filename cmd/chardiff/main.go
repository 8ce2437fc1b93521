// Command chardiff prints the character-level differences between two strings
// or between two files compared line by line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/dacharyc/chardiff"
	"github.com/dacharyc/chardiff/internal/config"
	"github.com/dacharyc/chardiff/internal/logger"
	"github.com/dacharyc/chardiff/linediff"
	"github.com/dacharyc/chardiff/present"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const (
	flagStr1  = "s1"
	flagStr2  = "s2"
	flagFile1 = "f1"
	flagFile2 = "f2"
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	str1, str2   string
	file1, file2 string
	help         bool
	configPath   string
	color        string
	workers      int
	normalize    bool
	collapse     bool
	set          map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: map[string]bool{}}

	fs := flag.NewFlagSet("chardiff", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.str1, flagStr1, "", "first string to be compared")
	fs.StringVar(&f.str2, flagStr2, "", "second string to be compared")
	fs.StringVar(&f.file1, flagFile1, "", "first file to be compared")
	fs.StringVar(&f.file2, flagFile2, "", "second file to be compared")
	fs.BoolVar(&f.help, "h", false, "print help")
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.color, "color", "", "marker colour: auto, always or never")
	fs.IntVar(&f.workers, "workers", 0, "compare file lines with this many goroutines")
	fs.BoolVar(&f.normalize, "normalize", false, "NFC-normalize lines before comparing")
	fs.BoolVar(&f.collapse, "collapse", true, "hide adjacent insert/remove pairs that cancel out")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// applyTo overrides config values with the flags given on the command line.
func (f *cliFlags) applyTo(cfg *config.Config) {
	if f.set["color"] {
		cfg.Output.Color = f.color
	}
	if f.set["workers"] {
		cfg.Diff.Workers = f.workers
	}
	if f.set["normalize"] {
		cfg.Diff.Normalize = f.normalize
	}
	if f.set["collapse"] {
		cfg.Output.CollapseMirrored = f.collapse
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printError(stderr, "No argument specified")
		printHelp(stderr)
		return exitUsage
	}

	f, err := parseFlags(args)
	if err != nil {
		printError(stderr, "Incorrect arguments passed: "+err.Error())
		printHelp(stderr)
		return exitUsage
	}
	if f.help {
		printHelp(stdout)
		return exitOK
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		printError(stderr, err.Error())
		return exitError
	}
	f.applyTo(cfg)
	if err := config.Validate(cfg); err != nil {
		printError(stderr, err.Error())
		return exitUsage
	}

	log, err := logger.NewWithWriter(cfg.Log, stderr)
	if err != nil {
		printError(stderr, err.Error())
		return exitError
	}

	p := present.New(stdout,
		present.WithColor(present.ColorMode(cfg.Output.Color)),
		present.WithCollapseMirrored(cfg.Output.CollapseMirrored))

	stringMode := f.set[flagStr1] && f.set[flagStr2]
	fileMode := f.set[flagFile1] && f.set[flagFile2]
	switch {
	case stringMode && !f.set[flagFile1] && !f.set[flagFile2]:
		err = compareStrings(f.str1, f.str2, cfg, p, stdout)
	case fileMode && !f.set[flagStr1] && !f.set[flagStr2]:
		err = compareFiles(ctx, f.file1, f.file2, cfg, p, stdout, log)
	default:
		printError(stderr, "Incorrect sequence of arguments")
		printHelp(stderr)
		return exitUsage
	}

	if err != nil {
		log.Error().Err(err).Msg("comparison failed")
		printError(stderr, err.Error())
		return exitError
	}
	return exitOK
}

func compareStrings(old, new string, cfg *config.Config, p *present.Presenter, stdout io.Writer) error {
	engine := newEngine(cfg)

	if cfg.Output.Header {
		if err := p.Header(old, new); err != nil {
			return err
		}
	}
	records := engine.Diff(old, new)
	if len(visible(records, cfg)) == 0 {
		_, err := fmt.Fprintln(stdout, "No difference")
		return err
	}
	return p.Present(old, new, 0, records)
}

func compareFiles(ctx context.Context, oldPath, newPath string, cfg *config.Config,
	p *present.Presenter, stdout io.Writer, log zerolog.Logger) error {
	opts := []linediff.Option{
		linediff.WithWorkers(cfg.Diff.Workers),
		linediff.WithNormalization(cfg.Diff.Normalize),
		linediff.WithCapacity(cfg.Diff.Capacity),
		linediff.WithLogger(log),
	}

	if cfg.Output.Header {
		if err := p.Header(oldPath, newPath); err != nil {
			return err
		}
	}

	var stats linediff.Stats
	shown := 0
	show := func(d linediff.LineDiff) error {
		stats.Add(d)
		if len(visible(d.Records, cfg)) > 0 {
			shown++
		}
		return p.Present(d.Old, d.New, d.Line, d.Records)
	}

	if cfg.Diff.Workers > 1 {
		diffs, err := linediff.CompareFiles(ctx, oldPath, newPath, opts...)
		if err != nil {
			return err
		}
		for _, d := range diffs {
			if err := show(d); err != nil {
				return err
			}
		}
	} else if err := linediff.WalkFiles(ctx, oldPath, newPath, show, opts...); err != nil {
		return err
	}

	log.Info().
		Str("old", oldPath).
		Str("new", newPath).
		Int("lines", stats.Lines).
		Int("changed", stats.Changed).
		Int("inserted", stats.Inserted).
		Int("removed", stats.Removed).
		Int("updated", stats.Updated).
		Msg("comparison finished")

	if shown == 0 {
		_, err := fmt.Fprintln(stdout, "No difference")
		return err
	}
	return nil
}

// visible returns the records the presenter will actually render.
func visible(records []chardiff.DiffRecord, cfg *config.Config) []chardiff.DiffRecord {
	if cfg.Output.CollapseMirrored {
		return present.CollapseMirrored(records)
	}
	return records
}

func newEngine(cfg *config.Config) *chardiff.Engine {
	if n := cfg.Diff.Capacity; n > 0 {
		return chardiff.New(chardiff.WithCapacity(n, n))
	}
	return chardiff.New()
}

func printError(w io.Writer, msg string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "== ERROR == ")
	fmt.Fprintln(w, msg)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Command line options: ")
	fmt.Fprintf(w, "-%s  :  first  string to be compared\n", flagStr1)
	fmt.Fprintf(w, "-%s  :  second string to be compared\n", flagStr2)
	fmt.Fprintf(w, "-%s  :  first  file to be compared\n", flagFile1)
	fmt.Fprintf(w, "-%s  :  second file to be compared\n", flagFile2)
	fmt.Fprintln(w, "-config <path>   : YAML config file (default: $"+config.EnvConfigPath+" or ./"+config.DefaultConfigFile+")")
	fmt.Fprintln(w, "-color <mode>    : auto, always or never")
	fmt.Fprintln(w, "-workers <n>     : compare file lines in parallel")
	fmt.Fprintln(w, "-normalize       : NFC-normalize lines before comparing")
	fmt.Fprintln(w, "-collapse=false  : keep adjacent insert/remove pairs that cancel out")
	fmt.Fprintln(w, "-h   : print help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Note : -s and -f options are mutually exclusive. You have to specify one _or_ another in both parameters")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example: ")
	fmt.Fprintf(w, "chardiff -%s 'Hello!' -%s 'Hola!'\n", flagStr1, flagStr2)
	fmt.Fprintln(w)
}
