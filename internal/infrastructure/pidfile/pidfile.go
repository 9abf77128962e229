package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	killGrace    = 10 * time.Second
	pollInterval = 50 * time.Millisecond
)

// PIDFile is the world lock held by the homestead daemon. The CLI reads it to
// decide whether the world may be edited directly.
type PIDFile struct {
	path  string
	grace time.Duration
}

// New creates a pid file manager for path
func New(path string) *PIDFile {
	return &PIDFile{path: path, grace: killGrace}
}

// WithGrace sets how long KillExisting waits after SIGTERM before sending SIGKILL
func (p *PIDFile) WithGrace(d time.Duration) *PIDFile {
	p.grace = d
	return p
}

// Acquire writes the current pid. It fails while another live daemon holds the
// file; stale or unreadable files are replaced.
func (p *PIDFile) Acquire() error {
	if pid, running := p.Holder(); running {
		return fmt.Errorf("daemon is already running (PID %d)", pid)
	}
	if err := p.remove(); err != nil {
		return err
	}

	data := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(p.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the pid file
func (p *PIDFile) Release() error {
	return p.remove()
}

// KillExisting stops the daemon holding the file: SIGTERM first, SIGKILL once
// the grace period runs out. The file is removed afterwards.
func (p *PIDFile) KillExisting() error {
	pid, running := p.Holder()
	if !running {
		return p.remove()
	}
	if pid == os.Getpid() {
		return fmt.Errorf("refusing to kill the current process (PID %d)", pid)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find daemon process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to signal daemon %d: %w", pid, err)
	}

	if !waitForExit(pid, p.grace) {
		if err := process.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("failed to kill daemon %d: %w", pid, err)
		}
		if !waitForExit(pid, p.grace) {
			return fmt.Errorf("daemon %d did not exit", pid)
		}
	}

	return p.remove()
}

// Holder returns the pid of the live process holding the file, if any
func (p *PIDFile) Holder() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || !isProcessRunning(pid) {
		return 0, false
	}
	return pid, true
}

// Path returns the pid file location
func (p *PIDFile) Path() string {
	return p.path
}

func (p *PIDFile) remove() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func waitForExit(pid int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !isProcessRunning(pid) {
			return true
		}
		time.Sleep(pollInterval)
	}
	return !isProcessRunning(pid)
}

// isProcessRunning sends signal 0 to pid. EPERM means the process exists
// but belongs to another user.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
