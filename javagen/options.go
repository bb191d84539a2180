package javagen

import (
	"github.com/Masterminds/semver/v3"
)

// Unknown-local policies
const (
	UnknownLocalAuto   = "auto"
	UnknownLocalVar    = "var"
	UnknownLocalObject = "Object"
)

// Options configure a Generator. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// JavaVersion gates language features: var (10), List.of (9),
	// String.repeat and strip (11)
	JavaVersion *semver.Version
	// Indent is the number of spaces per nesting level
	Indent int
	// UnknownLocal chooses how inline declarations of uninferable type are
	// spelled: auto (var from Java 10), var, or Object
	UnknownLocal string
	// Names translates Python builtin and module names
	Names map[string]string
}

// DefaultOptions targets Java 17 with four-space indentation
func DefaultOptions() Options {
	return Options{
		JavaVersion:  semver.MustParse("17"),
		Indent:       4,
		UnknownLocal: UnknownLocalAuto,
		Names:        DefaultNames(),
	}
}

// DefaultNames is the built-in Python to Java name translation table
func DefaultNames() map[string]string {
	return map[string]string{
		"print": "System.out.println",
		"input": "scanner.nextLine",
		"cmath": "Math",
		"math":  "Math",
		"float": "Double.valueOf",
		"int":   "Integer.valueOf",
		"str":   "String.valueOf",
	}
}

// feature gates
var (
	varConstraint     = mustConstraint(">= 10")
	factoryConstraint = mustConstraint(">= 9")
	java11Constraint  = mustConstraint(">= 11")
)

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

// features is the resolved set of target capabilities
type features struct {
	localVar    bool // `var` declarations
	factories   bool // List.of / Set.of / Map.of
	java11      bool // String.repeat, String.strip
	unknownDecl string
}

func resolveFeatures(opts Options) features {
	v := opts.JavaVersion
	if v == nil {
		v = semver.MustParse("17")
	}
	f := features{
		localVar:  varConstraint.Check(v),
		factories: factoryConstraint.Check(v),
		java11:    java11Constraint.Check(v),
	}
	switch opts.UnknownLocal {
	case UnknownLocalVar:
		f.unknownDecl = javaVar
	case UnknownLocalObject:
		f.unknownDecl = javaObject
	default:
		f.unknownDecl = javaObject
		if f.localVar {
			f.unknownDecl = javaVar
		}
	}
	return f
}
