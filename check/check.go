// Package check compares freshly generated Java sources with the files
// already on disk, so CI can fail when a checked-in translation is stale.
package check

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/pyjava/errors"
)

// Difference describes one generated file that does not match disk
type Difference struct {
	File    string `json:"file"`              // relative to the compared directory
	Missing bool   `json:"missing,omitempty"` // not on disk at all
	Line    int    `json:"line,omitempty"`    // first differing line, 1-based; 0 when Missing
	Want    string `json:"want,omitempty"`    // generated text of that line
	Got     string `json:"got,omitempty"`     // on-disk text of that line
}

// Result holds the result of an up-to-date check
type Result struct {
	UpToDate    bool         `json:"up_to_date"`
	Checked     int          `json:"checked"`
	Differences []Difference `json:"differences,omitempty"`
}

// Compare checks each generated file (keyed by path relative to dir)
// against its counterpart under dir. Line endings and trailing whitespace
// are ignored.
func Compare(generated map[string]string, dir string) (*Result, error) {
	names := make([]string, 0, len(generated))
	for name := range generated {
		names = append(names, name)
	}
	sort.Strings(names)

	res := &Result{Checked: len(names)}
	for _, name := range names {
		existing, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			res.Differences = append(res.Differences, Difference{File: name, Missing: true})
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}

		want, err := normalizedLines([]byte(generated[name]))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan generated %s", name)
		}
		got, err := normalizedLines(existing)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", name)
		}
		if line, ok := firstDifference(want, got); ok {
			res.Differences = append(res.Differences, Difference{
				File: name,
				Line: line + 1,
				Want: lineAt(want, line),
				Got:  lineAt(got, line),
			})
		}
	}

	res.UpToDate = len(res.Differences) == 0
	return res, nil
}

// Err returns ErrOutOfDate naming the stale files, or nil
func (r *Result) Err() error {
	if r.UpToDate {
		return nil
	}
	files := make([]string, len(r.Differences))
	for i, d := range r.Differences {
		files[i] = d.File
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrOutOfDate, "%d of %d files differ", len(r.Differences), r.Checked),
		"regenerate with `pyjava generate`: "+strings.Join(files, ", "))
}

// normalizedLines splits content into lines without \r or trailing blanks,
// dropping trailing empty lines
func normalizedLines(content []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func firstDifference(a, b []string) (int, bool) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i, true
		}
	}
	if len(a) != len(b) {
		return n, true
	}
	return 0, false
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
