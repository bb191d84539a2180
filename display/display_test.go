package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonCommand(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().Bool("json", false, "")
	cmd.SetArgs(append([]string{}, args...))
	_ = cmd.Execute()
	return cmd
}

func TestShouldOutputJSON(t *testing.T) {
	t.Setenv(jsonEnv, "")
	assert.False(t, ShouldOutputJSON(jsonCommand()))
	assert.True(t, ShouldOutputJSON(jsonCommand("--json")))
	assert.False(t, ShouldOutputJSON(nil))

	t.Setenv(jsonEnv, "1")
	assert.True(t, ShouldOutputJSON(jsonCommand()))
	assert.True(t, ShouldOutputJSON(nil))
	assert.False(t, ShouldOutputJSON(jsonCommand("--json=false")), "explicit flag wins")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
