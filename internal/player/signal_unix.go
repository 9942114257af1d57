//go:build !windows

package player

import "syscall"

// terminateSignal asks mpv to shut down cleanly.
var terminateSignal = syscall.SIGTERM
