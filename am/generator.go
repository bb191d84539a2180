package am

import (
	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/javagen"
)

// GeneratorOptions converts the [target] and [names] sections into
// generator options
func (c *Config) GeneratorOptions() (javagen.Options, error) {
	v, err := c.Target.Version()
	if err != nil {
		return javagen.Options{}, err
	}
	if c.Target.UnknownLocal == UnknownLocalVar && v.Major() < 10 {
		return javagen.Options{}, errors.WithHint(
			errors.Newf("target.unknown_local = %q needs Java 10 or later, target is %d", UnknownLocalVar, v.Major()),
			"use \"auto\" or \"Object\" for older targets")
	}

	opts := javagen.DefaultOptions()
	opts.JavaVersion = v
	if c.Target.Indent > 0 {
		opts.Indent = c.Target.Indent
	}
	if c.Target.UnknownLocal != "" {
		opts.UnknownLocal = c.Target.UnknownLocal
	}
	if c.Names != nil {
		opts.Names = c.Names
	}
	return opts, nil
}
