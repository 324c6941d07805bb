//go:build !unix

package git

import "os/exec"

func configureProcess(cmd *exec.Cmd) {}
