// Package workload provides the simulated workloads used by the demo
// binary and the benchmarks: a fake download that waits on a timer, and a
// trial-division prime counter that saturates a core.
package workload

import (
	"context"
	"fmt"
	"time"
)

// FetchItem simulates downloading one item: it waits for delay (as a
// network or disk round trip would) and returns the item's name. It
// respects context cancellation while waiting.
func FetchItem(ctx context.Context, idx int, delay time.Duration) (string, error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return fmt.Sprintf("item-%d", idx), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// IsPrime reports whether n is prime, by trial division over odd
// candidates up to the square root.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CountPrimes returns the number of primes strictly below limit.
// It is CPU-bound and allocation-free, which makes it a good fixture for
// exercising ModeCPU pools.
func CountPrimes(limit int) int {
	count := 0
	for n := 0; n < limit; n++ {
		if IsPrime(n) {
			count++
		}
	}
	return count
}
