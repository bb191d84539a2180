package am

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/pyjava/errors"
)

// backupCount is how many rotated copies (.back1 .. .backN) are kept
const backupCount = 3

// createBackup rotates am.toml.back1..back3 and copies the current file to .back1
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	oldest := backupName(configPath, backupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete old backup %s", oldest)
	}

	for i := backupCount - 1; i >= 1; i-- {
		from := backupName(configPath, i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, backupName(configPath, i+1)); err != nil {
				return errors.Wrapf(err, "failed to rotate %s", from)
			}
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(backupName(configPath, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

func backupName(configPath string, n int) string {
	return configPath + ".back" + strconv.Itoa(n)
}

// WriteConfig marshals cfg as TOML to configPath, keeping rotated backups
// of any file it replaces.
func WriteConfig(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", configPath)
	}
	return nil
}

// Defaults returns the built-in configuration without reading any file
func Defaults() *Config {
	return &Config{
		Target: TargetConfig{
			JavaVersion:  DefaultJavaVersion,
			Indent:       DefaultIndent,
			UnknownLocal: UnknownLocalAuto,
		},
		Names: DefaultNames(),
		Parser: ParserConfig{
			Command:        DefaultParserCommand,
			TimeoutSeconds: DefaultParserTimeout,
		},
		Output: OutputConfig{Extension: DefaultOutputExtension},
		Log:    LogConfig{Theme: DefaultLogTheme},
	}
}
