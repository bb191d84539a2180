package am

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/pyjava/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Target.Version(); err != nil {
		return err
	}

	if c.Target.Indent < 1 || c.Target.Indent > 16 {
		return errors.Newf("target.indent must be between 1 and 16, got %d", c.Target.Indent)
	}

	switch c.Target.UnknownLocal {
	case UnknownLocalAuto, UnknownLocalVar, UnknownLocalObject:
	default:
		return errors.Newf("target.unknown_local must be one of %q, %q, %q, got %q",
			UnknownLocalAuto, UnknownLocalVar, UnknownLocalObject, c.Target.UnknownLocal)
	}

	if c.Parser.Command == "" {
		return errors.WithHint(
			errors.New("parser.command cannot be empty"),
			"set parser.command to a Python 3 interpreter, e.g. \"python3\"")
	}
	if c.Parser.TimeoutSeconds <= 0 {
		return errors.Newf("parser.timeout_seconds must be > 0, got %d", c.Parser.TimeoutSeconds)
	}

	if c.Output.Extension == "" {
		return errors.New("output.extension cannot be empty")
	}

	for from, to := range c.Names {
		if from == "" {
			return errors.Newf("names: empty source name for translation %q", to)
		}
	}

	return nil
}

// Version parses target.java_version. Legacy "1.x" spellings map to
// feature release x, so "1.8" and "8" are the same target.
func (t TargetConfig) Version() (*semver.Version, error) {
	v, err := semver.NewVersion(t.JavaVersion)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "target.java_version %q is not a version", t.JavaVersion),
			"use a Java feature release such as \"17\" or \"1.8\"")
	}

	if v.Major() == 1 && v.Minor() > 0 {
		return semver.New(v.Minor(), 0, 0, "", ""), nil
	}
	if v.Major() < 5 {
		return nil, errors.Newf("target.java_version %q is older than Java 5", t.JavaVersion)
	}
	return v, nil
}
