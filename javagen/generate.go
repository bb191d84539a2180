// Package javagen translates a Python syntax tree into Java source.
//
// Generation is a single depth-first walk over the tree that writes a
// structured line buffer. Facts that are only known later in the walk are
// left as placeholders in that buffer:
//
//   - statements an idiom needs before the current line (printing an
//     input prompt) are queued as move-ups;
//   - a function's return type, known once its body has been visited;
//   - the hoisted declarations of each scope, including the shared
//     Scanner and Random helpers.
//
// A patch pass resolves the placeholders in that order once the walk is
// complete. Constructs outside the supported subset never abort a run:
// they produce a Diagnostic and a visible marker in the output.
package javagen

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/logger"
	"github.com/teranos/pyjava/pyast"
)

// collectionsImport is prepended when the output uses java.util types
const collectionsImport = "import java.util.*;"

// Generator holds immutable configuration; it is safe to share between
// goroutines, each Generate call builds its own state.
type Generator struct {
	opts   Options
	feat   features
	idioms idiomTable
	log    *zap.SugaredLogger
}

// Result is the output of one Generate call
type Result struct {
	Source      string
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic is error severity
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// New creates a Generator. A nil logger disables logging.
func New(opts Options, log *zap.SugaredLogger) *Generator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Indent <= 0 {
		opts.Indent = DefaultOptions().Indent
	}
	feat := resolveFeatures(opts)
	return &Generator{
		opts:   opts,
		feat:   feat,
		idioms: newIdiomTable(opts.Names, feat),
		log:    log,
	}
}

// Generate translates mod with the default options
func Generate(mod *pyast.Module) (string, error) {
	res, err := New(DefaultOptions(), nil).Generate(mod)
	if err != nil {
		return "", err
	}
	return res.Source, nil
}

// Generate translates one module. The returned error is reserved for
// generator defects (an unresolved placeholder, an unbalanced scope stack);
// unsupported input is reported through Result.Diagnostics.
func (g *Generator) Generate(mod *pyast.Module) (res *Result, err error) {
	if mod == nil {
		return nil, errors.NewMalformedTreeError("nil module")
	}
	start := time.Now()
	e := newEmitter(g.opts, g.feat, g.idioms, g.log)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rerr, ok := r.(error)
		if !ok || !errors.IsAssertionFailure(rerr) {
			panic(r)
		}
		g.log.Errorw("generator defect", logger.FieldError, rerr)
		res, err = nil, rerr
	}()

	e.module(mod)

	if g.log.Desugar().Core().Enabled(zapcore.DebugLevel) {
		g.log.Debugw("buffer before patching", logger.FieldLines, len(e.buf.Lines), "dump", e.buf.Dump())
	}

	p := &patcher{
		decls:   e.scopes.Declarations,
		returns: e.returns,
		keys:    e.retKeys,
		indent:  strings.Repeat(" ", g.opts.Indent),
	}
	src, err := p.resolve(&e.buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve generated output")
	}
	if e.usesCollections {
		src = collectionsImport + "\n\n" + src
	}

	g.log.Infow("generated java",
		logger.FieldLines, strings.Count(src, "\n"),
		logger.FieldDiagnostics, len(e.diags),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return &Result{Source: src, Diagnostics: e.diags}, nil
}
