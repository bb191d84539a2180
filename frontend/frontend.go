// Package frontend turns Python source files into syntax trees by running
// the Python interpreter's own ast module and decoding its JSON dump.
package frontend

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/pyjava/am"
	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/logger"
	"github.com/teranos/pyjava/pyast"
)

// dumpScript prints the tree of the file named by argv[1] in the `_type`
// form read by pyast.Decode. Non-finite floats, bytes and complex numbers
// are sent as strings with a value_type hint.
const dumpScript = `
import ast, json, math, sys

def conv(node):
    if isinstance(node, list):
        return [conv(x) for x in node]
    if not isinstance(node, ast.AST):
        return node
    out = {"_type": type(node).__name__}
    for name, value in ast.iter_fields(node):
        out[name] = conv(value)
    for attr in ("lineno", "col_offset"):
        if hasattr(node, attr):
            out[attr] = getattr(node, attr)
    if isinstance(node, ast.Constant):
        v = node.value
        if isinstance(v, float) and not math.isfinite(v):
            out["value"], out["value_type"] = repr(v), "float"
        elif isinstance(v, bytes):
            out["value"], out["value_type"] = v.decode("latin-1"), "bytes"
        elif isinstance(v, complex):
            out["value"], out["value_type"] = repr(v), "complex"
        elif v is Ellipsis:
            out["value"], out["value_type"] = None, "Ellipsis"
    return out

with open(sys.argv[1], encoding="utf-8") as f:
    tree = ast.parse(f.read(), sys.argv[1])
json.dump(conv(tree), sys.stdout)
`

// Parser runs the configured Python interpreter
type Parser struct {
	argv    []string
	timeout time.Duration
	log     *zap.SugaredLogger
}

// New validates the parser command. A nil logger disables logging.
func New(cfg am.ParserConfig, log *zap.SugaredLogger) (*Parser, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	argv, err := shellquote.Split(cfg.Command)
	if err != nil {
		return nil, errors.Wrapf(err, "parser.command %q is not a valid command line", cfg.Command)
	}
	if len(argv) == 0 {
		return nil, errors.WithHint(
			errors.New("parser.command is empty"),
			"set parser.command to a Python 3 interpreter, e.g. \"python3\"")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(am.DefaultParserTimeout) * time.Second
	}
	return &Parser{argv: argv, timeout: timeout, log: log}, nil
}

// Parse parses one Python file with a parser built from cfg
func Parse(ctx context.Context, path string, cfg am.ParserConfig) (*pyast.Module, error) {
	p, err := New(cfg, logger.LoggerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, path)
}

// Parse runs the interpreter on path and decodes the tree it prints
func (p *Parser) Parse(ctx context.Context, path string) (*pyast.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := append(append([]string{}, p.argv[1:]...), "-c", dumpScript, path)
	cmd := exec.CommandContext(ctx, p.argv[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of a killed interpreter may hold the output pipes open
	cmd.WaitDelay = time.Second

	start := time.Now()
	p.log.Debugw("running parser", logger.FieldCommand, p.argv[0], logger.FieldFile, path)

	if err := cmd.Run(); err != nil {
		return nil, p.failure(ctx, path, err, stderr.String())
	}

	p.log.Debugw("parser finished",
		logger.FieldFile, path,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
		"bytes", stdout.Len(),
	)

	mod, err := pyast.Decode(stdout.Bytes(), pyast.FormatJSON)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding parser output for %s", path)
	}
	return mod, nil
}

// failure classifies a failed parser run and attaches a hint the user can
// act on
func (p *Parser) failure(ctx context.Context, path string, runErr error, stderr string) error {
	err := errors.Wrapf(errors.ErrParserFailed, "%s: %v", path, runErr)

	var execErr *exec.Error
	switch {
	case errors.As(runErr, &execErr), os.IsNotExist(runErr):
		return errors.WithHintf(err, "parser.command %q was not found; install Python 3 or point parser.command at it", p.argv[0])
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.WithHintf(err, "parsing took longer than %s; raise parser.timeout_seconds", p.timeout)
	}

	if msg := lastLine(stderr); msg != "" {
		err = errors.WithDetail(err, strings.TrimSpace(stderr))
		if strings.HasPrefix(msg, "SyntaxError") || strings.HasPrefix(msg, "IndentationError") {
			return errors.WithHintf(err, "%s is not valid Python 3: %s", path, msg)
		}
		return errors.WithHint(err, msg)
	}
	return err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
