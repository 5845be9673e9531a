//go:build windows
// +build windows

package transcode

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

func processGroupAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

func taskkillWithChildren(cmd *exec.Cmd) error {
	// Function adopted from: https://stackoverflow.com/a/44551450/6278
	kill := exec.Command("TASKKILL", "/T", "/PID", strconv.Itoa(cmd.Process.Pid))
	kill.Stderr = os.Stderr
	kill.Stdout = os.Stdout
	return kill.Run()
}

func (p *Process) signalTerm() {
	err := taskkillWithChildren(p.cmd)
	if err != nil {
		p.logger.Err(err).Msg("failed to kill process group")
	}
}

func (p *Process) kill() {
	err := p.cmd.Process.Kill()
	p.logger.Err(err).Msg("killing process")
}
