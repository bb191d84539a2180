package am

import (
	"os"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/pyjava/am.toml
	SourceUser        ConfigSource = "user"        // ~/.pyjava/am.toml
	SourceProject     ConfigSource = "project"     // nearest am.toml
	SourceEnvironment ConfigSource = "environment" // PYJAVA_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // File path or environment variable name
}

// ConfigSources records the file that supplied each key during the last load
var ConfigSources = make(map[string]SourceInfo)

// SettingInfo describes one effective setting
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// Introspect lists every effective setting, sorted by key, with its source
func Introspect() []SettingInfo {
	v := GetViper()

	var settings []SettingInfo
	flattenSettings(v.AllSettings(), "", &settings)
	return settings
}

func flattenSettings(values map[string]interface{}, prefix string, out *[]SettingInfo) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]interface{}); ok {
			flattenSettings(nested, fullKey, out)
			continue
		}
		if nested, ok := value.(map[string]string); ok {
			flat := make(map[string]interface{}, len(nested))
			for k, s := range nested {
				flat[k] = s
			}
			flattenSettings(flat, fullKey, out)
			continue
		}

		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := ConfigSources[fullKey]; ok {
			info = si
		}

		envKey := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(fullKey, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		*out = append(*out, SettingInfo{
			Key:        fullKey,
			Value:      value,
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
}
