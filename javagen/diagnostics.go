package javagen

import (
	"fmt"

	"github.com/teranos/pyjava/logger"
)

// Severity of a generator diagnostic
type Severity string

const (
	SeverityError   Severity = "error"   // Output is missing or wrong for this construct
	SeverityWarning Severity = "warning" // Output degraded (Object, dropped argument, skipped statement)
	SeverityInfo    Severity = "info"    // Translation note
)

// DiagnosticKind categorizes diagnostics for programmatic handling
type DiagnosticKind string

const (
	KindUnsupportedStatement  DiagnosticKind = "unsupported-statement"
	KindUnsupportedExpression DiagnosticKind = "unsupported-expression"
	KindDestructuring         DiagnosticKind = "destructuring"
	KindTypeHint              DiagnosticKind = "type-hint"
	KindDroppedArgument       DiagnosticKind = "dropped-argument"
	KindInheritance           DiagnosticKind = "inheritance"
	KindLiteral               DiagnosticKind = "literal"
)

// Diagnostic reports a construct the generator could not translate faithfully
type Diagnostic struct {
	Severity Severity       `json:"severity" yaml:"severity"`
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Message  string         `json:"message" yaml:"message"`
	Line     int            `json:"line,omitempty" yaml:"line,omitempty"` // 0 when unknown
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// IsError reports whether the diagnostic is error severity
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// diagnose records a diagnostic and logs it
func (e *emitter) diagnose(sev Severity, kind DiagnosticKind, line int, format string, args ...interface{}) {
	d := Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	}
	e.diags = append(e.diags, d)
	fields := []interface{}{logger.FieldKind, string(kind), logger.FieldSeverity, string(sev), logger.FieldLine, line}
	switch sev {
	case SeverityError:
		e.log.Errorw(d.Message, fields...)
	case SeverityInfo:
		e.log.Infow(d.Message, fields...)
	default:
		e.log.Warnw(d.Message, fields...)
	}
}
