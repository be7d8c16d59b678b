// Package checker is the per-file driver: it parses the source, installs the
// inference graph, drains the box queue, and maps the collected findings
// back to line/column diagnostics.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"

	"github.com/dak2/methodray/analyzer"
	"github.com/dak2/methodray/config"
	"github.com/dak2/methodray/diagnostics"
	"github.com/dak2/methodray/env"
	"github.com/dak2/methodray/parser"
	"github.com/dak2/methodray/rbs"
	"github.com/dak2/methodray/scope"
)

// Version is the tool's semantic version, part of the cache validity key.
const Version = "0.3.0"

// Checker orchestrates analyses. It is safe to reuse across files; each
// check owns a fresh GlobalEnv, so hosts wanting parallelism run one Checker
// per worker.
type Checker struct {
	fs         afs.Service
	logger     *log.Logger
	cfg        *config.Config
	harvester  rbs.Harvester
	cacheStore *rbs.CacheStore
	version    string

	loadOnce sync.Once
	records  []rbs.Record
}

type Option func(*Checker)

// WithHarvester injects the signature harvester used on cache regeneration.
func WithHarvester(h rbs.Harvester) Option {
	return func(c *Checker) { c.harvester = h }
}

// WithCacheStore overrides cache locations.
func WithCacheStore(s *rbs.CacheStore) Option {
	return func(c *Checker) { c.cacheStore = s }
}

// WithConfig applies a loaded project configuration.
func WithConfig(cfg *config.Config) Option {
	return func(c *Checker) { c.cfg = cfg }
}

// WithLogger redirects progress and failure logging.
func WithLogger(l *log.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// WithRecords seeds the signature catalog directly, bypassing cache and
// harvester. Used by tests and embedding hosts.
func WithRecords(records []rbs.Record) Option {
	return func(c *Checker) {
		c.records = records
		c.loadOnce.Do(func() {})
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{
		fs:      afs.New(),
		logger:  log.New(os.Stderr, "methodray: ", 0),
		cfg:     &config.Config{},
		version: Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheStore == nil {
		var storeOpts []rbs.CacheStoreOption
		if c.cfg.CacheDir != "" {
			storeOpts = append(storeOpts, rbs.WithUserCacheDir(c.cfg.CacheDir))
		}
		c.cacheStore = rbs.NewCacheStore(storeOpts...)
	}
	if c.harvester == nil && len(c.cfg.Harvester) > 0 {
		c.harvester = &rbs.CommandHarvester{Cmd: c.cfg.Harvester}
	}
	return c
}

// CheckFile reads and analyzes one file.
func (c *Checker) CheckFile(ctx context.Context, path string) ([]diagnostics.Diagnostic, error) {
	source, err := c.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.CheckSource(ctx, path, source)
}

// CheckSource analyzes source bytes under the given file name. A parse
// failure aborts the analysis of the file and surfaces the grammar's
// messages as error diagnostics; everything else runs to completion.
func (c *Checker) CheckSource(ctx context.Context, file string, source []byte) ([]diagnostics.Diagnostic, error) {
	result, err := parser.Parse(ctx, source)
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseFailureDiagnostics(file, source, parseErr), nil
	}
	if err != nil {
		return nil, err
	}

	genv := env.New()
	rbs.LoadIntoRegistry(c.signatureRecords(ctx), genv.Registry)

	locals := scope.NewLocals()
	installer := analyzer.NewInstaller(genv, locals, source)
	installer.InstallProgram(result.Root)
	installer.Finish()

	return collectDiagnostics(genv, file, source), nil
}

func parseFailureDiagnostics(file string, source []byte, parseErr *parser.ParseError) []diagnostics.Diagnostic {
	diags := make([]diagnostics.Diagnostic, 0, len(parseErr.Errors))
	for _, se := range parseErr.Errors {
		span := diagnostics.Span{Start: se.StartByte, End: se.EndByte}
		diags = append(diags, diagnostics.FromSpan(
			source, file, span,
			diagnostics.KindParseFailure, diagnostics.SeverityError, se.Message,
		))
	}
	return diags
}

// collectDiagnostics converts the engine's recorded type errors into
// positioned diagnostics, ordered by source position.
func collectDiagnostics(genv *env.GlobalEnv, file string, source []byte) []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic
	for _, te := range genv.TypeErrors {
		span := diagnostics.Span{}
		if te.Span != nil {
			span = *te.Span
		}
		if te.Partial {
			diags = append(diags, diagnostics.FromSpan(
				source, file, span,
				diagnostics.KindUnionPartialMethod, diagnostics.SeverityWarning,
				partialUnionMessage(te),
			))
			continue
		}
		diags = append(diags, diagnostics.FromSpan(
			source, file, span,
			diagnostics.KindUndefinedMethod, diagnostics.SeverityError,
			fmt.Sprintf("undefined method `%s` for %s", te.Method, te.Receiver),
		))
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return diags
}

func partialUnionMessage(te env.TypeError) string {
	missing := make([]string, len(te.Missing))
	for i, t := range te.Missing {
		missing[i] = t.String()
	}
	return fmt.Sprintf("method `%s` is undefined for %s (receiver may be %s)",
		te.Method, strings.Join(missing, ", "), te.Receiver)
}
