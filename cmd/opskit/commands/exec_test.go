//go:build !windows

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/opskit/pkg/fatal"
)

// runOpskit executes the root command with the given stdin and arguments,
// returning the combined output. XDG_CONFIG_HOME is pointed at an empty
// directory so the run uses default configuration.
func runOpskit(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	root := GetRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	defer func() {
		root.SetIn(nil)
		root.SetOut(nil)
		root.SetErr(nil)
	}()

	err := root.Execute()
	return out.String(), err
}

func TestExec_OnFailPromptAsksYesNo(t *testing.T) {
	out, err := runOpskit(t, "y\n", "exec", "--on-fail", "prompt", "--", "sh", "-c", "exit 3")

	// A failing command consults the y/n prompt; answering y continues.
	require.NoError(t, err)
	assert.Contains(t, out, "Do you want to continue? (y/n):")
}

func TestExec_OnFailPromptDeclineIsFatal(t *testing.T) {
	out, err := runOpskit(t, "n\n", "exec", "--on-fail", "prompt", "--", "sh", "-c", "exit 3")

	require.Error(t, err)
	assert.Equal(t, fatal.ExitGeneric, fatal.CodeOf(err))
	assert.Contains(t, out, "Do you want to continue? (y/n):")
}

func TestExec_OnFailPromptSucceedingCommandSkipsPrompt(t *testing.T) {
	out, err := runOpskit(t, "", "exec", "--on-fail", "prompt", "--", "true")

	require.NoError(t, err)
	assert.NotContains(t, out, "Do you want to continue?")
}
