package logger

// Output categories control WHAT is shown at each verbosity level,
// independent of log severity.
//
//	0 (default) - generated source, errors with hints, check status
//	1 (-v)      - + per-file progress, diagnostics summary
//	2 (-vv)     - + timing, effective configuration, frontend command
//	3 (-vvv)    - + scope entry/exit, hoisted declarations
//	4 (-vvvv)   - + line buffer dump before patching

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults OutputCategory = iota // Generated source, check report
	OutputErrors                        // Errors with hints
	OutputDiagnostics                   // Generator warnings

	// Level 1 (-v)
	OutputProgress // "generated Foo.java"
	OutputSummary  // Diagnostic counts per file

	// Level 2 (-vv)
	OutputTiming   // Generation duration
	OutputConfig   // Config values loaded
	OutputFrontend // Parser command line and exit status

	// Level 3 (-vvv)
	OutputScopes // Scope enter/exit and hoisting decisions

	// Level 4 (-vvvv)
	OutputBufferDump // Structured line buffer before patching
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputErrors:      VerbosityUser,
	OutputDiagnostics: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputSummary:  VerbosityInfo,

	OutputTiming:   VerbosityDebug,
	OutputConfig:   VerbosityDebug,
	OutputFrontend: VerbosityDebug,

	OutputScopes: VerbosityTrace,

	OutputBufferDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, require maximum verbosity
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:     "results",
	OutputErrors:      "errors",
	OutputDiagnostics: "diagnostics",
	OutputProgress:    "progress",
	OutputSummary:     "summary",
	OutputTiming:      "timing",
	OutputConfig:      "config",
	OutputFrontend:    "frontend",
	OutputScopes:      "scopes",
	OutputBufferDump:  "buffer-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "generated source and errors only"
	case VerbosityInfo:
		return "above + progress and diagnostic summaries"
	case VerbosityDebug:
		return "above + timing, config and parser details"
	case VerbosityTrace:
		return "above + scope and hoisting decisions"
	case VerbosityAll:
		return "above + line buffer dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
