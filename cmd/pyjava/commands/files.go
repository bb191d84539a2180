package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/teranos/pyjava/am"
	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/frontend"
	"github.com/teranos/pyjava/javagen"
	"github.com/teranos/pyjava/logger"
	"github.com/teranos/pyjava/pyast"
)

// configPath is the --config flag shared by generate and check
var configPath string

// loadConfig reads --config when given, else the normal cascade
func loadConfig() (*am.Config, error) {
	var cfg *am.Config
	var err error
	if configPath != "" {
		cfg, err = am.LoadFromFile(configPath)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readTree loads one input file: .py through the Python frontend, .json
// and .yaml as an already dumped tree
func readTree(ctx context.Context, path string, cfg *am.Config) (*pyast.Module, error) {
	if strings.EqualFold(filepath.Ext(path), ".py") {
		return frontend.Parse(ctx, path, cfg.Parser)
	}
	return pyast.DecodeFile(path)
}

// outputName maps an input file to the name of its Java file
func outputName(input, extension string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if extension == "" {
		extension = am.DefaultOutputExtension
	}
	return base + "." + strings.TrimPrefix(extension, ".")
}

// translation is the outcome of generating one input
type translation struct {
	input  string
	output string // file name, relative to the output directory
	result *javagen.Result
}

// translate reads and generates every input. It stops at the first input
// that cannot be read or hits a generator defect.
func translate(ctx context.Context, cfg *am.Config, inputs []string) ([]translation, error) {
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, err
	}
	log := logger.LoggerFromContext(ctx)

	out := make([]translation, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		name := outputName(input, cfg.Output.Extension)
		if prev, dup := seen[name]; dup {
			return nil, errors.WithHintf(
				errors.Newf("%s and %s both translate to %s", prev, input, name),
				"rename one of the inputs")
		}
		seen[name] = input

		mod, err := readTree(ctx, input, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", input)
		}
		gen := javagen.New(opts, log.With(logger.FieldFile, input))
		res, err := gen.Generate(mod)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate %s", input)
		}
		out = append(out, translation{input: input, output: name, result: res})
	}
	return out, nil
}

// writeOutputs writes each translation into dir
func writeOutputs(dir string, ts []translation, log *zap.SugaredLogger) error {
	if err := os.MkdirAll(dir, am.DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	for _, t := range ts {
		path := filepath.Join(dir, t.output)
		if err := os.WriteFile(path, []byte(t.result.Source), am.DefaultFilePermissions); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		log.Infow("wrote java", logger.FieldFile, t.input, logger.FieldOutput, path)
		if logger.ShouldOutput(logger.Verbosity, logger.OutputProgress) {
			pterm.Success.WithWriter(os.Stderr).Printfln("Generated %s", path)
		}
	}
	return nil
}

// reportDiagnostics prints each diagnostic on stderr and returns the
// number of errors among them
func reportDiagnostics(ts []translation) int {
	errs := 0
	for _, t := range ts {
		for _, d := range t.result.Diagnostics {
			printer := pterm.Info
			switch d.Severity {
			case javagen.SeverityError:
				printer = pterm.Error
				errs++
			case javagen.SeverityWarning:
				printer = pterm.Warning
			}
			printer.WithWriter(os.Stderr).Printfln("%s: %s", t.input, d.String())
		}
		if logger.ShouldOutput(logger.Verbosity, logger.OutputSummary) && len(t.result.Diagnostics) > 0 {
			pterm.Info.WithWriter(os.Stderr).Printfln("%s: %d diagnostics", t.input, len(t.result.Diagnostics))
		}
	}
	return errs
}
