//go:build linux

package sampler

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// StdinPoller reads single keypresses from stdin without blocking past a
// timeout. When stdin is a terminal, line buffering and echo are turned off
// so keys arrive without Enter; output processing and signals are left
// alone, so Ctrl+C still raises SIGINT. Close restores the terminal.
type StdinPoller struct {
	fd    int
	state *term.State
	eof   bool
}

// NewStdinPoller prepares stdin for polling.
func NewStdinPoller() (*StdinPoller, error) {
	fd := int(os.Stdin.Fd())
	p := &StdinPoller{fd: fd}
	if term.IsTerminal(fd) {
		state, err := term.GetState(fd)
		if err != nil {
			return nil, err
		}
		if err := cbreak(fd); err != nil {
			return nil, err
		}
		p.state = state
	}
	return p, nil
}

// cbreak disables canonical input and echo on fd.
func cbreak(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	t.Lflag &^= unix.ICANON | unix.ECHO
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}

// Poll waits up to timeout for one byte on stdin.
func (p *StdinPoller) Poll(timeout time.Duration) (byte, bool, error) {
	if p.eof {
		// Closed stdin polls as readable forever; just wait out the timeout.
		time.Sleep(timeout)
		return 0, false, nil
	}

	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 || fds[0].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
		return 0, false, nil
	}

	var buf [1]byte
	read, err := unix.Read(p.fd, buf[:])
	if err != nil {
		return 0, false, err
	}
	if read == 0 {
		p.eof = true
		return 0, false, nil
	}
	return buf[0], true, nil
}

// Close restores the terminal state.
func (p *StdinPoller) Close() error {
	if p.state == nil {
		return nil
	}
	return term.Restore(p.fd, p.state)
}
