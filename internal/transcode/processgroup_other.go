//go:build !windows
// +build !windows

package transcode

import "syscall"

func processGroupAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

func (p *Process) signalTerm() {
	pgid, err := syscall.Getpgid(p.cmd.Process.Pid)
	if err == nil {
		err := syscall.Kill(-pgid, syscall.SIGTERM)
		p.logger.Err(err).Msg("terminating process group")
	} else {
		p.logger.Err(err).Msg("could not get process group id")
		err := p.cmd.Process.Signal(syscall.SIGTERM)
		p.logger.Err(err).Msg("terminating process")
	}
}

func (p *Process) kill() {
	pgid, err := syscall.Getpgid(p.cmd.Process.Pid)
	if err == nil {
		err := syscall.Kill(-pgid, syscall.SIGKILL)
		p.logger.Err(err).Msg("killing process group")
	} else {
		p.logger.Err(err).Msg("could not get process group id")
		err := p.cmd.Process.Kill()
		p.logger.Err(err).Msg("killing process")
	}
}
