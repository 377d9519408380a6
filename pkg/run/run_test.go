//go:build !windows

package run

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/opskit/pkg/fatal"
)

func TestRun_CapturesOutput(t *testing.T) {
	res, err := Command{Args: []string{"sh", "-c", "echo hello; echo oops >&2"}}.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitStatus)
	assert.Equal(t, "hello", res.Stdout)
	assert.Equal(t, "oops", res.Stderr)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	res, err := Command{Args: []string{"sh", "-c", "exit 3"}}.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitStatus)
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	res, err := Command{Args: []string{"pwd"}, Dir: dir}.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitStatus)
	assert.Contains(t, res.Stdout, dir)
}

func TestRun_MissingBinary(t *testing.T) {
	_, err := Command{Args: []string{"definitely-not-a-real-binary"}}.Run(context.Background())
	require.Error(t, err)
}

func TestRun_EmptyCommand(t *testing.T) {
	_, err := Command{}.Run(context.Background())
	require.Error(t, err)
}

func TestRunFailHard(t *testing.T) {
	res, err := RunFailHard(context.Background(), Command{Args: []string{"true"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitStatus)

	_, err = RunFailHard(context.Background(), Command{Args: []string{"sh", "-c", "exit 2"}})
	require.Error(t, err)
	assert.Equal(t, 2, fatal.CodeOf(err))
}

func TestRunFailPrompt(t *testing.T) {
	failing := Command{Args: []string{"sh", "-c", "exit 5"}}
	noConfirm := func() error { t.Fatal("confirm should not be consulted"); return nil }

	t.Run("succeeding command skips prompt", func(t *testing.T) {
		res, err := RunFailPrompt(context.Background(), Command{Args: []string{"true"}}, PromptOptions{}, noConfirm)
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitStatus)
	})

	t.Run("yes option quits", func(t *testing.T) {
		_, err := RunFailPrompt(context.Background(), failing, PromptOptions{Yes: true}, noConfirm)
		require.Error(t, err)
		assert.Equal(t, 5, fatal.CodeOf(err))
	})

	t.Run("force option continues", func(t *testing.T) {
		res, err := RunFailPrompt(context.Background(), failing, PromptOptions{Force: true}, noConfirm)
		require.NoError(t, err)
		assert.Equal(t, 5, res.ExitStatus)
	})

	t.Run("confirmation decides", func(t *testing.T) {
		res, err := RunFailPrompt(context.Background(), failing, PromptOptions{}, func() error { return nil })
		require.NoError(t, err)
		assert.Equal(t, 5, res.ExitStatus)

		declined := errors.New("operator declined")
		_, err = RunFailPrompt(context.Background(), failing, PromptOptions{}, func() error { return declined })
		assert.ErrorIs(t, err, declined)
	})
}

func TestCommand_String(t *testing.T) {
	uid := uint32(1000)
	gid := uint32(1000)
	c := Command{Args: []string{"ls", "-l"}, Dir: "/tmp", UID: &uid, GID: &gid}
	s := c.String()
	assert.Contains(t, s, "[ls -l]")
	assert.Contains(t, s, "within /tmp")
	assert.Contains(t, s, "as 1000:1000")
}
