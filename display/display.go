// Package display renders command results for humans or as JSON.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/pyjava/errors"
)

// jsonEnv forces JSON output for every command when set to a true value
const jsonEnv = "PYJAVA_JSON"

// ShouldOutputJSON reports whether cmd should print JSON: an explicit
// --json flag wins, otherwise PYJAVA_JSON decides
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd != nil {
		if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
			on, _ := cmd.Flags().GetBool("json")
			return on
		}
	}
	switch os.Getenv(jsonEnv) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// OutputJSON writes v as indented JSON followed by a newline
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
