//go:build darwin

package cpu

// pinToCore is a no-op on macOS: the scheduler offers no public thread
// affinity API. Workers still get their own locked OS thread.
func pinToCore(cpuID int) error {
	return nil
}
