//go:build !windows

package run

import (
	"os/exec"
	"syscall"
)

// applyCredentials arranges for the child to run under the given uid/gid.
// The kernel applies the credential between fork and exec, so the switch is
// scoped to the child and irreversible within it.
func applyCredentials(cmd *exec.Cmd, uid, gid *uint32) error {
	if uid == nil && gid == nil {
		return nil
	}

	cred := &syscall.Credential{
		Uid: uint32(syscall.Getuid()),
		Gid: uint32(syscall.Getgid()),
	}
	if uid != nil {
		cred.Uid = *uid
	}
	if gid != nil {
		cred.Gid = *gid
	}

	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Credential = cred
	return nil
}
