package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := Logger
			defer func() { Logger = saved }()

			if err := Initialize(tt.jsonOutput, tt.verbosity); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Error("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
			if Verbosity != tt.verbosity {
				t.Errorf("Initialize() Verbosity = %d, want %d", Verbosity, tt.verbosity)
			}
		})
	}
}

func TestCleanupWithNilLogger(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	Logger = nil
	Cleanup()
	Infow("ignored")
	Warnw("ignored")
	Errorw("ignored")
	Debugw("ignored")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{4, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		verbosity int
		category  OutputCategory
		want      bool
	}{
		{0, OutputResults, true},
		{0, OutputDiagnostics, true},
		{0, OutputProgress, false},
		{1, OutputProgress, true},
		{1, OutputTiming, false},
		{2, OutputTiming, true},
		{2, OutputScopes, false},
		{3, OutputScopes, true},
		{3, OutputBufferDump, false},
		{4, OutputBufferDump, true},
		{3, OutputCategory(99), false},
		{4, OutputCategory(99), true},
	}

	for _, tt := range tests {
		if got := ShouldOutput(tt.verbosity, tt.category); got != tt.want {
			t.Errorf("ShouldOutput(%d, %s) = %v, want %v",
				tt.verbosity, CategoryName(tt.category), got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	if got := LevelName(7); got != "All (-vvvv+)" {
		t.Errorf("LevelName(7) = %q", got)
	}
	if got := LevelName(-1); got != "Unknown" {
		t.Errorf("LevelName(-1) = %q", got)
	}
	if got := VerbosityDescription(0); got != "generated source and errors only" {
		t.Errorf("VerbosityDescription(0) = %q", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	core, logs := observer.New(zap.DebugLevel)
	Logger = zap.New(core).Sugar()

	ctx := WithComponent(WithRunID(context.Background(), "run-123"), "generate")
	LoggerFromContext(ctx).Infow("generated", FieldFile, "main.py")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[FieldRunID] != "run-123" {
		t.Errorf("run_id = %v", fields[FieldRunID])
	}
	if fields[FieldComponent] != "generate" {
		t.Errorf("component = %v", fields[FieldComponent])
	}
	if fields[FieldFile] != "main.py" {
		t.Errorf("file = %v", fields[FieldFile])
	}
}

func TestLoggerFromContextWithoutFields(t *testing.T) {
	if LoggerFromContext(context.Background()) != Logger {
		t.Error("expected global logger when context carries no fields")
	}
}
