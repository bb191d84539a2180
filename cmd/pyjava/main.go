package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/teranos/pyjava/am"
	"github.com/teranos/pyjava/cmd/pyjava/commands"
	"github.com/teranos/pyjava/errors"
	"github.com/teranos/pyjava/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pyjava",
	Short: "pyjava - translate Python programs to Java source",
	Long: `pyjava - translate a subset of Python to readable Java.

Input is a Python source file (parsed with the configured python3), or a
syntax tree already dumped as JSON or YAML.

Available commands:
  generate - Translate files to Java
  check    - Verify checked-in Java matches a fresh translation
  am       - Manage pyjava configuration ("I am")
  version  - Show version information

Examples:
  pyjava generate hello.py              # Print Java to stdout
  pyjava generate -o src/ *.py          # Write src/<name>.java
  pyjava generate -o src/ --watch a.py  # Regenerate on every save
  pyjava check -d src/ *.py             # Fail when src/ is stale
  pyjava am show                        # Show effective configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		if cfg, err := am.Load(); err == nil {
			logger.SetTheme(cfg.Log.Theme)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithRunID(ctx, uuid.NewString())
		cmd.SetContext(logger.WithComponent(ctx, cmd.Name()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON on stderr")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
