package javagen

import (
	"fmt"
	"strings"
)

// Segment is one piece of an output line. Besides literal text, a line may
// hold placeholders the patch engine resolves after traversal:
//
//	moveUp     a whole statement to place on its own line above the host line
//	typeRef    a function return type known only once its body is visited
//	scopeDecls the hoisted declarations of a scope (sole segment of its line)
type Segment interface {
	segment()
}

type text string

type moveUp struct {
	segments []Segment
}

type typeRef struct {
	key ScopeID
}

type scopeDecls struct {
	scope ScopeID
}

func (text) segment()       {}
func (moveUp) segment()     {}
func (typeRef) segment()    {}
func (scopeDecls) segment() {}

// Line is one output line before patching. Indent counts levels, not spaces.
type Line struct {
	Indent   int
	Segments []Segment
}

// Buffer is the structured output of the emitter
type Buffer struct {
	Lines []Line
}

func (b *Buffer) add(indent int, segs ...Segment) {
	b.Lines = append(b.Lines, Line{Indent: indent, Segments: segs})
}

// Dump renders the buffer with placeholders spelled out, for debugging
func (b *Buffer) Dump() string {
	var sb strings.Builder
	for _, l := range b.Lines {
		sb.WriteString(strings.Repeat("  ", l.Indent))
		dumpSegments(&sb, l.Segments)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func dumpSegments(sb *strings.Builder, segs []Segment) {
	for _, s := range segs {
		switch v := s.(type) {
		case text:
			sb.WriteString(string(v))
		case moveUp:
			sb.WriteString("<<move-up ")
			dumpSegments(sb, v.segments)
			sb.WriteString(">>")
		case typeRef:
			fmt.Fprintf(sb, "<<type %d>>", v.key)
		case scopeDecls:
			fmt.Fprintf(sb, "<<decls %d>>", v.scope)
		}
	}
}
