// Package am loads pyjava configuration.
//
// Values cascade from built-in defaults through /etc/pyjava/am.toml,
// ~/.pyjava/am.toml and the nearest project am.toml, with PYJAVA_* environment
// variables taking precedence over every file.
package am

import "github.com/teranos/pyjava/javagen"

// Config represents the pyjava configuration
type Config struct {
	Target TargetConfig      `mapstructure:"target" toml:"target" json:"target" yaml:"target"`
	Names  map[string]string `mapstructure:"names" toml:"names" json:"names" yaml:"names"`
	Parser ParserConfig      `mapstructure:"parser" toml:"parser" json:"parser" yaml:"parser"`
	Output OutputConfig      `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Log    LogConfig         `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// TargetConfig describes the Java code being produced
type TargetConfig struct {
	JavaVersion  string `mapstructure:"java_version" toml:"java_version" json:"java_version" yaml:"java_version"` // "17", "11", "1.8"
	Indent       int    `mapstructure:"indent" toml:"indent" json:"indent" yaml:"indent"`                         // spaces per level
	UnknownLocal string `mapstructure:"unknown_local" toml:"unknown_local" json:"unknown_local" yaml:"unknown_local"`
}

// Unknown-local declaration policies
const (
	UnknownLocalAuto   = javagen.UnknownLocalAuto   // var on Java 10+, Object before
	UnknownLocalVar    = javagen.UnknownLocalVar    // always var
	UnknownLocalObject = javagen.UnknownLocalObject // always Object
)

// ParserConfig configures the external Python parser used for .py input
type ParserConfig struct {
	Command        string `mapstructure:"command" toml:"command" json:"command" yaml:"command"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
}

// OutputConfig configures where generated files are written
type OutputConfig struct {
	Directory string `mapstructure:"directory" toml:"directory" json:"directory" yaml:"directory"` // empty = stdout
	Extension string `mapstructure:"extension" toml:"extension" json:"extension" yaml:"extension"`
}

// LogConfig configures console logging
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // everforest, gruvbox
}

// Default values
const (
	DefaultJavaVersion     = "17"
	DefaultIndent          = 4
	DefaultParserCommand   = "python3"
	DefaultParserTimeout   = 30
	DefaultOutputExtension = "java"
	DefaultLogTheme        = "everforest"

	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// DefaultNames is the built-in Python to Java name translation table.
// Entries under [names] in am.toml override or extend it.
func DefaultNames() map[string]string {
	return javagen.DefaultNames()
}
