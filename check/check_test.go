package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/pyjava/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCompareUpToDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "public class Main {\r\n}\r\n\r\n")
	writeFile(t, dir, "pkg/Util.java", "class Util {}  \n")

	res, err := Compare(map[string]string{
		"Main.java":     "public class Main {\n}\n",
		"pkg/Util.java": "class Util {}\n",
	}, dir)
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Equal(t, 2, res.Checked)
	assert.NoError(t, res.Err())
}

func TestCompareChangedLine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "class Main {\n    int x = 1;\n}\n")

	res, err := Compare(map[string]string{
		"Main.java": "class Main {\n    double x = 1;\n}\n",
	}, dir)
	require.NoError(t, err)
	require.False(t, res.UpToDate)
	assert.Equal(t, []Difference{{
		File: "Main.java",
		Line: 2,
		Want: "    double x = 1;",
		Got:  "    int x = 1;",
	}}, res.Differences)
}

func TestCompareLengthDifference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", "a\nb\n")

	res, err := Compare(map[string]string{"A.java": "a\nb\nc\n"}, dir)
	require.NoError(t, err)
	require.Len(t, res.Differences, 1)
	assert.Equal(t, 3, res.Differences[0].Line)
	assert.Equal(t, "c", res.Differences[0].Want)
	assert.Equal(t, "", res.Differences[0].Got)
}

func TestCompareMissingFile(t *testing.T) {
	res, err := Compare(map[string]string{
		"B.java": "class B {}\n",
		"A.java": "class A {}\n",
	}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, res.Differences, 2)
	assert.Equal(t, "A.java", res.Differences[0].File, "sorted by name")
	assert.True(t, res.Differences[0].Missing)

	err = res.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutOfDate))
	assert.Contains(t, errors.FlattenHints(err), "A.java, B.java")
}
