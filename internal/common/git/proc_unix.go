//go:build unix

package git

import (
	"os/exec"
	"syscall"
)

// configureProcess puts git in its own process group so cancellation also
// kills the transport helpers it spawns (ssh, git-remote-https)
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
