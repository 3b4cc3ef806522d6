//go:build windows

package app

import "os"

var shutdownSignals = []os.Signal{os.Interrupt}

// processExists reports whether pid is live. FindProcess always succeeds on
// Windows, so a nil signal is used as the probe.
func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(os.Signal(nil)) == nil
}

// terminate kills the daemon; Windows has no SIGTERM equivalent.
func terminate(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Kill()
}
