//go:build windows

package run

import (
	"errors"
	"os/exec"
)

func applyCredentials(cmd *exec.Cmd, uid, gid *uint32) error {
	if uid != nil || gid != nil {
		return errors.New("run: uid/gid switching is not supported on windows")
	}
	return nil
}
