//go:build windows

package player

import "os"

// Windows has no graceful termination signal for console-less
// processes; Kill is the best available.
var terminateSignal = os.Kill
