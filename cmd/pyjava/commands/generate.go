package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/pyjava/am"
	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/logger"
	"github.com/teranos/pyjava/watch"
)

var (
	generateOutput string
	generateWatch  bool
)

// GenerateCmd translates input files to Java
var GenerateCmd = &cobra.Command{
	Use:   "generate <file>...",
	Short: "Translate Python files to Java",
	Long: `Translate Python programs to Java source.

Each input is a .py file, parsed with parser.command from am.toml, or a
syntax tree dumped as .json or .yaml. Without an output directory the Java
source is printed to stdout.

Constructs outside the supported subset are reported as diagnostics and
marked in the output. The command fails only when an error diagnostic is
reported; warnings never change the exit status.

Examples:
  pyjava generate hello.py
  pyjava generate -o src/ game.py util.py
  pyjava generate -o src/ --watch game.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: output.directory, else stdout)")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever an input or am.toml changes")
	GenerateCmd.Flags().StringVar(&configPath, "config", "", "Read configuration from this file only")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := generateOutput
	if dir == "" {
		dir = cfg.Output.Directory
	}
	if generateWatch && dir == "" {
		return errors.WithHint(errors.New("--watch needs an output directory"), "pass -o <dir> or set output.directory")
	}

	if err := generateOnce(cmd, cfg, dir, args); err != nil && !generateWatch {
		return err
	} else if err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err.Error())
	}
	if !generateWatch {
		return nil
	}
	return watchInputs(cmd, dir, args)
}

func generateOnce(cmd *cobra.Command, cfg *am.Config, dir string, inputs []string) error {
	ctx := cmd.Context()
	ts, err := translate(ctx, cfg, inputs)
	if err != nil {
		return err
	}

	if dir == "" {
		for _, t := range ts {
			if len(ts) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "// %s\n", t.output)
			}
			fmt.Fprint(cmd.OutOrStdout(), t.result.Source)
		}
	} else if err := writeOutputs(dir, ts, logger.LoggerFromContext(ctx)); err != nil {
		return err
	}

	if n := reportDiagnostics(ts); n > 0 {
		return errors.Newf("%d error diagnostics", n)
	}
	return nil
}

// watchInputs regenerates until the command context is cancelled. A change
// to the project am.toml reloads the configuration first.
func watchInputs(cmd *cobra.Command, dir string, inputs []string) error {
	ctx := cmd.Context()
	log := logger.LoggerFromContext(ctx).Named("watch")

	files := append([]string{}, inputs...)
	cfgFile := configPath
	if cfgFile == "" {
		if wd, err := os.Getwd(); err == nil {
			cfgFile = am.FindProjectConfig(wd)
		}
	}
	if cfgFile != "" {
		files = append(files, cfgFile)
	}

	w, err := watch.New(files, func(changed []string) error {
		for _, f := range changed {
			if cfgFile != "" && sameFile(f, cfgFile) {
				am.Reset()
				log.Infow("configuration changed, reloading", logger.FieldFile, f)
				break
			}
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return generateOnce(cmd, cfg, dir, inputs)
	}, watch.WithLogger(log))
	if err != nil {
		return err
	}

	pterm.Info.WithWriter(os.Stderr).Printfln("Watching %d files, Ctrl-C to stop", len(files))
	return w.Run(ctx)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
