//go:build !windows

// Package process holds platform-specific helpers for reaping the Chrome
// processes started by the rendering engines.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid so Chrome's
// renderer and GPU children exit with the browser.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort: the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
