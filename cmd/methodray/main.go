// Command methodray is the batch CLI for the type checker: check a file or
// project, watch a file for changes, manage the signature cache.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/mattn/go-isatty"

	"github.com/dak2/methodray/checker"
	"github.com/dak2/methodray/config"
	"github.com/dak2/methodray/diagnostics"
)

type checkCmd struct {
	File    string `arg:"positional" help:"ruby file to check (omit to check the whole project)"`
	Verbose bool   `arg:"-v,--verbose" help:"show per-file results even without findings"`
}

type watchCmd struct {
	File string `arg:"positional,required" help:"ruby file to watch"`
}

type clearCacheCmd struct{}

type versionCmd struct{}

type cliArgs struct {
	Check      *checkCmd      `arg:"subcommand:check" help:"check ruby file(s) for type errors"`
	Watch      *watchCmd      `arg:"subcommand:watch" help:"re-check a file on every change"`
	ClearCache *clearCacheCmd `arg:"subcommand:clear-cache" help:"delete the per-user signature cache"`
	Version    *versionCmd    `arg:"subcommand:version" help:"print the tool version"`
	NoColor    bool           `arg:"--no-color" help:"disable colored output"`
}

func (cliArgs) Description() string {
	return "methodray - fast Ruby type checker with method chain validation"
}

func main() {
	var args cliArgs
	p := arg.MustParse(&args)

	logger := log.New(os.Stderr, "methodray: ", 0)
	ctx := context.Background()

	switch {
	case args.Check != nil:
		app := newApp(args.NoColor, logger)
		ok, err := app.check(ctx, args.Check.File, args.Check.Verbose)
		if err != nil {
			logger.Fatal(err)
		}
		if !ok {
			os.Exit(1)
		}
	case args.Watch != nil:
		app := newApp(args.NoColor, logger)
		if err := app.watch(ctx, args.Watch.File); err != nil {
			logger.Fatal(err)
		}
	case args.ClearCache != nil:
		app := newApp(args.NoColor, logger)
		if err := app.checker.ClearCache(ctx); err != nil {
			logger.Fatal(err)
		}
		fmt.Println("signature cache cleared")
	case args.Version != nil:
		fmt.Printf("methodray %s\n", checker.Version)
	default:
		p.WriteHelp(os.Stdout)
	}
}

type app struct {
	checker   *checker.Checker
	formatter diagnostics.Formatter
	logger    *log.Logger
}

func newApp(noColor bool, logger *log.Logger) *app {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg, err := config.Load(checker.FindProjectRoot(wd))
	if err != nil {
		logger.Printf("%v; continuing with defaults", err)
		cfg = &config.Config{}
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cfg.Color != nil {
		color = *cfg.Color
	}
	if noColor {
		color = false
	}

	return &app{
		checker:   checker.New(checker.WithConfig(cfg), checker.WithLogger(logger)),
		formatter: diagnostics.Formatter{Color: color},
		logger:    logger,
	}
}

// check runs one pass and reports whether it was error-free.
func (a *app) check(ctx context.Context, file string, verbose bool) (bool, error) {
	if file == "" {
		wd, err := os.Getwd()
		if err != nil {
			return false, err
		}
		diags, err := a.checker.CheckProject(ctx, wd)
		if err != nil {
			return false, err
		}
		if len(diags) == 0 {
			if verbose {
				fmt.Println("No errors found")
			}
			return true, nil
		}
		fmt.Println(a.formatter.Format(diags))
		return !diagnostics.HasErrors(diags), nil
	}

	diags, err := a.checker.CheckFile(ctx, file)
	if err != nil {
		return false, err
	}
	if len(diags) == 0 {
		if verbose {
			fmt.Printf("%s: No errors found\n", file)
		}
		return true, nil
	}
	source, readErr := os.ReadFile(file)
	if readErr != nil {
		fmt.Println(a.formatter.Format(diags))
	} else {
		fmt.Println(a.formatter.FormatWithSource(diags, source))
	}
	return !diagnostics.HasErrors(diags), nil
}
