// Package cpu gives pool workers stable execution contexts for
// compute-heavy work: each worker is locked to its own OS thread and, where
// the platform allows it, pinned to a CPU core.
package cpu

import "runtime"

// Count returns the number of logical CPUs available.
func Count() int {
	return runtime.NumCPU()
}

// Pin locks the calling goroutine to an OS thread and pins that thread to
// the core identified by workerID (wrapping around when workerID exceeds
// the CPU count). It returns a release function that must be deferred; on
// error the thread is already unlocked and no release is needed.
func Pin(workerID int) (func(), error) {
	runtime.LockOSThread()
	if err := pinToCore(workerID); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return runtime.UnlockOSThread, nil
}
