package util

import "os/exec"

// Spawn launches an external command detached from the caller. The child is
// reaped on a separate goroutine so a hanging process never blocks the
// event loop.
func Spawn(logger *Logger, name string, args ...string) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		logger.Errorf("spawn %s: %v", name, err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debugf("%s exited: %v", name, err)
		}
	}()
}
