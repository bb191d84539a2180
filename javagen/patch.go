package javagen

import (
	"strings"

	"github.com/teranos/pyjava/errors"
)

// patcher resolves the placeholders in a Buffer, in fixed order:
// move-ups, then return types, then hoisted declarations.
type patcher struct {
	// decls returns the deduplicated declarations of a scope
	decls func(ScopeID) ([]Decl, bool)
	// returns holds resolved return types; a key registered in keys but
	// absent here resolves to void
	returns map[ScopeID]string
	keys    map[ScopeID]bool
	indent  string
}

func (p *patcher) resolve(buf *Buffer) (string, error) {
	lines := p.moveUps(buf.Lines)

	lines, err := p.typeRefs(lines)
	if err != nil {
		return "", err
	}

	lines, err = p.scopeDecls(lines)
	if err != nil {
		return "", err
	}

	return p.render(lines)
}

// moveUps hoists every moveUp segment onto its own line directly above its
// host line, at the host's indentation, keeping left-to-right order.
// Nested move-ups resolve inner-first; each level of recursion consumes one
// level of nesting so the pass always terminates.
func (p *patcher) moveUps(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, flattenMoves(l)...)
	}
	return out
}

func flattenMoves(l Line) []Line {
	var above []Line
	rest := make([]Segment, 0, len(l.Segments))
	for _, s := range l.Segments {
		mv, ok := s.(moveUp)
		if !ok {
			rest = append(rest, s)
			continue
		}
		above = append(above, flattenMoves(Line{Indent: l.Indent, Segments: mv.segments})...)
	}
	if len(above) == 0 {
		return []Line{l}
	}
	return append(above, Line{Indent: l.Indent, Segments: rest})
}

func (p *patcher) typeRefs(lines []Line) ([]Line, error) {
	for i, l := range lines {
		for j, s := range l.Segments {
			ref, ok := s.(typeRef)
			if !ok {
				continue
			}
			if !p.keys[ref.key] {
				return nil, errors.AssertionFailedf("return type placeholder for unknown function scope %d", ref.key)
			}
			resolved := javaVoid
			if t, ok := p.returns[ref.key]; ok && t != "" {
				resolved = t
			}
			lines[i].Segments[j] = text(resolved)
		}
	}
	return lines, nil
}

func (p *patcher) scopeDecls(lines []Line) ([]Line, error) {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		anchor, ok := declAnchor(l)
		if !ok {
			for _, s := range l.Segments {
				if _, bad := s.(scopeDecls); bad {
					return nil, errors.AssertionFailedf("declaration anchor shares a line with other output")
				}
			}
			out = append(out, l)
			continue
		}

		decls, found := p.decls(anchor.scope)
		if !found {
			return nil, errors.AssertionFailedf("declaration anchor for unknown scope %d", anchor.scope)
		}
		for _, d := range decls {
			out = append(out, Line{Indent: l.Indent, Segments: []Segment{text(renderDecl(d))}})
		}
	}
	return out, nil
}

func declAnchor(l Line) (scopeDecls, bool) {
	if len(l.Segments) != 1 {
		return scopeDecls{}, false
	}
	a, ok := l.Segments[0].(scopeDecls)
	return a, ok
}

func renderDecl(d Decl) string {
	var sb strings.Builder
	if d.Modifiers != "" {
		sb.WriteString(d.Modifiers)
		sb.WriteByte(' ')
	}
	sb.WriteString(d.Type)
	sb.WriteByte(' ')
	sb.WriteString(d.Name)
	if d.Init != "" {
		sb.WriteString(" = ")
		sb.WriteString(d.Init)
	}
	sb.WriteByte(';')
	return sb.String()
}

func (p *patcher) render(lines []Line) (string, error) {
	var sb strings.Builder
	for _, l := range lines {
		var content strings.Builder
		for _, s := range l.Segments {
			t, ok := s.(text)
			if !ok {
				return "", errors.AssertionFailedf("unresolved %T placeholder after patching", s)
			}
			content.WriteString(string(t))
		}
		if content.Len() > 0 {
			sb.WriteString(strings.Repeat(p.indent, l.Indent))
			sb.WriteString(content.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
