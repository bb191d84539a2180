package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/pyjava/check"
	"github.com/teranos/pyjava/display"
	"github.com/teranos/pyjava/errors"
)

var checkDir string

// CheckCmd verifies generated Java on disk is current
var CheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check that generated Java files are up to date",
	Long: `Translate the inputs in memory and compare the result with the Java
files already in the output directory. Exits non-zero when any file is
missing or differs; line endings and trailing whitespace are ignored.

Examples:
  pyjava check -d src/ game.py util.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().StringVarP(&checkDir, "dir", "d", "", "Directory holding the generated files (default: output.directory)")
	CheckCmd.Flags().Bool("json", false, "Print the comparison result as JSON")
	CheckCmd.Flags().StringVar(&configPath, "config", "", "Read configuration from this file only")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := checkDir
	if dir == "" {
		dir = cfg.Output.Directory
	}
	if dir == "" {
		return errors.WithHint(errors.New("no directory to check"), "pass -d <dir> or set output.directory")
	}

	ts, err := translate(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	generated := make(map[string]string, len(ts))
	for _, t := range ts {
		generated[t.output] = t.result.Source
	}

	res, err := check.Compare(generated, dir)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		printCheckReport(cmd, res)
	}
	return res.Err()
}

func printCheckReport(cmd *cobra.Command, res *check.Result) {
	out := cmd.OutOrStdout()
	if res.UpToDate {
		pterm.Success.WithWriter(out).Printfln("%d generated files are up to date", res.Checked)
		return
	}

	rows := [][]string{{"File", "Status", "Line", "Expected"}}
	for _, d := range res.Differences {
		if d.Missing {
			rows = append(rows, []string{d.File, "missing", "", ""})
			continue
		}
		rows = append(rows, []string{d.File, "differs", fmt.Sprint(d.Line), d.Want})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(rows).Render(); err != nil {
		pterm.Error.WithWriter(out).Println(err.Error())
	}
}
