package am

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("target.java_version", DefaultJavaVersion)
	v.SetDefault("target.indent", DefaultIndent)
	v.SetDefault("target.unknown_local", UnknownLocalAuto)

	v.SetDefault("names", DefaultNames())

	v.SetDefault("parser.command", DefaultParserCommand)
	v.SetDefault("parser.timeout_seconds", DefaultParserTimeout)

	v.SetDefault("output.directory", "")
	v.SetDefault("output.extension", DefaultOutputExtension)

	v.SetDefault("log.theme", DefaultLogTheme)
}
