package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/pyjava/errors"
)

const (
	envPrefix      = "PYJAVA"
	configFileName = "am.toml"
	systemConfig   = "/etc/pyjava/am.toml"
)

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the pyjava configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	config.Names = mergeNames(config.Names)
	return &config, nil
}

// LoadFromFile loads configuration from a specific file on top of the defaults.
// Environment variables are not consulted.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = make(map[string]SourceInfo)
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// system -> user -> project; env vars win over all of them
	mergeConfigFiles(v, configPaths())

	viperInstance = v
	return v
}

// FindProjectConfig searches for am.toml by walking up from dir.
// Returns the path to the first file found, or "" if none exists.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// configPaths lists candidate config files from lowest to highest precedence
func configPaths() []sourcedPath {
	paths := []sourcedPath{{path: systemConfig, source: SourceSystem}}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, sourcedPath{
			path:   filepath.Join(home, ".pyjava", configFileName),
			source: SourceUser,
		})
	}

	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			paths = append(paths, sourcedPath{path: project, source: SourceProject})
		}
	}
	return paths
}

type sourcedPath struct {
	path   string
	source ConfigSource
}

// mergeConfigFiles merges the existing files among paths into v in order,
// recording which file supplied each key.
func mergeConfigFiles(v *viper.Viper, paths []sourcedPath) {
	for _, p := range paths {
		if _, err := os.Stat(p.path); err != nil {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(p.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}

		for _, key := range fileViper.AllKeys() {
			v.Set(key, fileViper.Get(key))
			ConfigSources[key] = SourceInfo{Source: p.source, Path: p.path}
		}
	}
}

// mergeNames lays configured name translations over the built-in table.
// An empty value removes a translation.
func mergeNames(configured map[string]string) map[string]string {
	names := DefaultNames()
	for k, v := range configured {
		if v == "" {
			delete(names, k)
			continue
		}
		names[k] = v
	}
	return names
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return initViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return initViper().GetString(key)
}

// GetInt returns a configuration value as int using dot notation
func GetInt(key string) int {
	return initViper().GetInt(key)
}
