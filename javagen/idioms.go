package javagen

import (
	"strconv"
	"strings"
)

// idiomTable holds the fixed Python to Java rewrites consulted by the
// emitter. It is built once per Generator and never modified.
type idiomTable struct {
	// names translates builtins and module names (print, input, math ...)
	names map[string]string
	// methods renames methods whose Java counterpart only differs in name
	methods map[string]string
	// attrs translates module constants
	attrs map[string]string
}

// newIdiomTable builds the table for one Generator. A nil names map means
// DefaultNames; otherwise names is the complete translation table.
func newIdiomTable(names map[string]string, f features) idiomTable {
	if names == nil {
		names = DefaultNames()
	}
	merged := make(map[string]string, len(names))
	for k, v := range names {
		if v != "" {
			merged[k] = v
		}
	}

	methods := map[string]string{
		"append":     "add",
		"extend":     "addAll",
		"upper":      "toUpperCase",
		"lower":      "toLowerCase",
		"startswith": "startsWith",
		"endswith":   "endsWith",
		"find":       "indexOf",
		"index":      "indexOf",
		"keys":       "keySet",
		"items":      "entrySet",
		"strip":      "trim",
	}
	if f.java11 {
		methods["strip"] = "strip"
		methods["lstrip"] = "stripLeading"
		methods["rstrip"] = "stripTrailing"
	}

	return idiomTable{
		names:   merged,
		methods: methods,
		attrs: map[string]string{
			"math.pi":  "Math.PI",
			"math.e":   "Math.E",
			"math.tau": "(2 * Math.PI)",
			"math.inf": "Double.POSITIVE_INFINITY",
			"math.nan": "Double.NaN",
		},
	}
}

// name returns the translation of a builtin or module name
func (t idiomTable) name(id string) (string, bool) {
	v, ok := t.names[id]
	return v, ok
}

// method returns the Java name of a Python method
func (t idiomTable) method(name string) string {
	if m, ok := t.methods[name]; ok {
		return m
	}
	return name
}

// placeholder is one substitution in a converted format template
type placeholder struct {
	arg  int    // 0-based positional argument, -1 for a keyword
	name string // keyword name
	conv byte   // Java conversion character
}

// template is a format string ready for String.format
type template struct {
	format string
	refs   []placeholder
}

// floatConversion reports whether a conversion expects a floating value
func floatConversion(c byte) bool {
	switch c {
	case 'a', 'e', 'f', 'g', 'A', 'E', 'G':
		return true
	}
	return false
}

// braceTemplate converts a str.format template. Positional fields {0} shift
// to %1$s, bare {} become %s, keyword fields are numbered after the nargs
// positional arguments in order of first appearance. A field it cannot
// express returns ok == false.
func braceTemplate(tmpl string, nargs int) (template, bool) {
	var (
		out   strings.Builder
		refs  []placeholder
		named []string
		auto  int
	)
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '%':
			out.WriteString("%%")
			continue
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				i++
			}
			out.WriteByte('}')
			continue
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				i++
				out.WriteByte('{')
				continue
			}
		default:
			out.WriteByte(c)
			continue
		}

		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			return template{}, false
		}
		field := tmpl[i+1 : i+end]
		i += end

		name, spec, _ := strings.Cut(field, ":")
		if k := strings.IndexByte(name, '!'); k >= 0 {
			name = name[:k]
		}
		if strings.ContainsAny(name, ".[") {
			return template{}, false
		}
		conv, flags, ok := formatSpec(spec)
		if !ok {
			return template{}, false
		}

		ref := placeholder{arg: -1, conv: conv}
		index := 0
		switch {
		case name == "":
			ref.arg = auto
			auto++
		case isDigits(name):
			n, _ := strconv.Atoi(name)
			ref.arg = n
			index = n + 1
		default:
			ref.name = name
			pos := indexOf(named, name)
			if pos < 0 {
				named = append(named, name)
				pos = len(named) - 1
			}
			index = nargs + pos + 1
		}
		refs = append(refs, ref)

		out.WriteByte('%')
		if index > 0 {
			out.WriteString(strconv.Itoa(index))
			out.WriteByte('$')
		}
		out.WriteString(flags)
		out.WriteByte(conv)
	}
	return template{format: out.String(), refs: refs}, true
}

// formatSpec converts a format-spec mini-language string (the part after
// ':') to Java flags, width, precision and conversion.
func formatSpec(spec string) (conv byte, flags string, ok bool) {
	conv = 's'
	if spec == "" {
		return conv, "", true
	}
	var (
		b    strings.Builder
		i    int
		zero bool
	)
	// [[fill]align], only a space fill is expressible
	if len(spec) >= 2 && strings.IndexByte("<>^=", spec[1]) >= 0 {
		if spec[0] != ' ' {
			return 0, "", false
		}
		i = 1
	}
	if i < len(spec) && strings.IndexByte("<>^=", spec[i]) >= 0 {
		switch spec[i] {
		case '<':
			b.WriteByte('-')
		case '^', '=':
			return 0, "", false
		}
		i++
	}
	if i < len(spec) && strings.IndexByte("+- ", spec[i]) >= 0 {
		if spec[i] != '-' {
			b.WriteByte(spec[i])
		}
		i++
	}
	if i < len(spec) && spec[i] == '#' {
		b.WriteByte('#')
		i++
	}
	if i < len(spec) && spec[i] == '0' {
		zero = true
		i++
	}
	var width strings.Builder
	for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
		width.WriteByte(spec[i])
		i++
	}
	if zero && width.Len() > 0 {
		b.WriteByte('0')
	}
	if i < len(spec) && (spec[i] == ',' || spec[i] == '_') {
		if spec[i] == ',' {
			b.WriteByte(',')
		}
		i++
	}
	b.WriteString(width.String())
	precision := false
	if i < len(spec) && spec[i] == '.' {
		precision = true
		b.WriteByte('.')
		i++
		for i < len(spec) && spec[i] >= '0' && spec[i] <= '9' {
			b.WriteByte(spec[i])
			i++
		}
	}
	switch rest := spec[i:]; rest {
	case "":
		if precision {
			conv = 'f'
		}
	case "d", "n":
		conv = 'd'
	case "f", "F":
		conv = 'f'
	case "e", "E", "g", "G", "x", "X", "o", "s", "c":
		conv = rest[0]
	default:
		return 0, "", false
	}
	return conv, b.String(), true
}

// percentTemplate converts a printf-style template used with the %
// operator. %0.Nf normalises to %.Nf, %i and %u become %d, %r becomes %s.
// Mapping keys and star widths are not expressible and return ok == false.
func percentTemplate(tmpl string) (template, bool) {
	var (
		out  strings.Builder
		refs []placeholder
	)
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(tmpl) {
			return template{}, false
		}
		if tmpl[i] == '%' {
			out.WriteString("%%")
			continue
		}
		if tmpl[i] == '(' {
			return template{}, false
		}

		var flags strings.Builder
		for i < len(tmpl) && strings.IndexByte("-+ #0", tmpl[i]) >= 0 {
			flags.WriteByte(tmpl[i])
			i++
		}
		var width strings.Builder
		for i < len(tmpl) && tmpl[i] >= '0' && tmpl[i] <= '9' {
			width.WriteByte(tmpl[i])
			i++
		}
		if i < len(tmpl) && tmpl[i] == '*' {
			return template{}, false
		}
		var precision strings.Builder
		if i < len(tmpl) && tmpl[i] == '.' {
			precision.WriteByte('.')
			i++
			for i < len(tmpl) && tmpl[i] >= '0' && tmpl[i] <= '9' {
				precision.WriteByte(tmpl[i])
				i++
			}
		}
		for i < len(tmpl) && strings.IndexByte("hlL", tmpl[i]) >= 0 {
			i++
		}
		if i >= len(tmpl) {
			return template{}, false
		}

		var conv byte
		switch tmpl[i] {
		case 'd', 'i', 'u':
			conv = 'd'
		case 'r', 'a', 's':
			conv = 's'
		case 'F':
			conv = 'f'
		case 'f', 'e', 'E', 'g', 'G', 'x', 'X', 'o', 'c':
			conv = tmpl[i]
		default:
			return template{}, false
		}

		f := flags.String()
		if width.Len() == 0 {
			// a zero flag needs a width in Java
			f = strings.ReplaceAll(f, "0", "")
		}
		out.WriteByte('%')
		out.WriteString(f)
		out.WriteString(width.String())
		out.WriteString(precision.String())
		out.WriteByte(conv)
		refs = append(refs, placeholder{arg: len(refs), conv: conv})
	}
	return template{format: out.String(), refs: refs}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
