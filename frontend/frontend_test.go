package frontend

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/pyjava/am"
	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/pyast"
)

// fakeParser writes a shell script standing in for the interpreter
func fakeParser(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script parser stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

const treeJSON = `{"_type": "Module", "body": [
  {"_type": "Expr", "lineno": 1, "value": {"_type": "Call", "lineno": 1,
    "func": {"_type": "Name", "id": "print"},
    "args": [{"_type": "Constant", "value": "hi"}], "keywords": []}}
]}`

func TestParseDecodesOutput(t *testing.T) {
	cmd := fakeParser(t, "cat <<'EOF'\n"+treeJSON+"\nEOF")
	p, err := New(am.ParserConfig{Command: cmd, TimeoutSeconds: 5}, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	mod, err := p.Parse(context.Background(), "hello.py")
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)
	stmt, ok := mod.Body[0].(*pyast.ExprStmt)
	require.True(t, ok)
	assert.Equal(t, "Call", stmt.Value.Kind())
}

func TestParsePassesScriptAndPath(t *testing.T) {
	// echo the last argument back as a string constant
	cmd := fakeParser(t, `for a; do last="$a"; done
printf '{"_type":"Module","body":[{"_type":"Expr","value":{"_type":"Constant","value":"%s"}}]}' "$last"`)

	mod, err := Parse(context.Background(), "dir/input.py", am.ParserConfig{Command: cmd, TimeoutSeconds: 5})
	require.NoError(t, err)
	c := mod.Body[0].(*pyast.ExprStmt).Value.(*pyast.Constant)
	assert.Equal(t, "dir/input.py", c.Str)
}

func TestParseSyntaxError(t *testing.T) {
	cmd := fakeParser(t, `echo '  File "bad.py", line 1' >&2
echo 'SyntaxError: invalid syntax' >&2
exit 1`)
	p, err := New(am.ParserConfig{Command: cmd, TimeoutSeconds: 5}, nil)
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), "bad.py")
	require.Error(t, err)
	assert.True(t, errors.IsParserFailure(err))
	hints := errors.FlattenHints(err)
	assert.Contains(t, hints, "not valid Python 3")
	assert.Contains(t, hints, "SyntaxError: invalid syntax")
}

func TestParseMalformedOutput(t *testing.T) {
	cmd := fakeParser(t, "echo 'not json'")
	p, err := New(am.ParserConfig{Command: cmd, TimeoutSeconds: 5}, nil)
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), "x.py")
	require.Error(t, err)
	assert.True(t, errors.IsMalformedTree(err))
}

func TestParseMissingInterpreter(t *testing.T) {
	p, err := New(am.ParserConfig{Command: "/nonexistent/python3", TimeoutSeconds: 5}, nil)
	require.NoError(t, err)

	_, err = p.Parse(context.Background(), "x.py")
	require.Error(t, err)
	assert.True(t, errors.IsParserFailure(err))
	assert.Contains(t, errors.FlattenHints(err), "was not found")
}

func TestParseHonoursContext(t *testing.T) {
	cmd := fakeParser(t, "exec sleep 5")
	p, err := New(am.ParserConfig{Command: cmd, TimeoutSeconds: 5}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = p.Parse(ctx, "x.py")
	require.Error(t, err)
	assert.True(t, errors.IsParserFailure(err))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestNewSplitsCommand(t *testing.T) {
	p, err := New(am.ParserConfig{Command: `python3 -X "utf8"`, TimeoutSeconds: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-X", "utf8"}, p.argv)

	_, err = New(am.ParserConfig{Command: `python3 "unterminated`}, nil)
	assert.Error(t, err)

	_, err = New(am.ParserConfig{Command: "   "}, nil)
	assert.Error(t, err)
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "b", lastLine("a\nb\n"))
	assert.Equal(t, "only", lastLine("only"))
	assert.Equal(t, "", lastLine(""))
}
