package workload

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsPrime(t *testing.T) {
	cases := []struct {
		n    int
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{9, false},
		{17, true},
		{25, false},
		{97, true},
		{7919, true},
		{7920, false},
	}

	for _, tc := range cases {
		if got := IsPrime(tc.n); got != tc.want {
			t.Errorf("IsPrime(%d): expected %v, got %v", tc.n, tc.want, got)
		}
	}
}

func TestCountPrimes(t *testing.T) {
	cases := []struct {
		limit int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{10, 4},   // 2, 3, 5, 7
		{100, 25},
		{1000, 168},
	}

	for _, tc := range cases {
		if got := CountPrimes(tc.limit); got != tc.want {
			t.Errorf("CountPrimes(%d): expected %d, got %d", tc.limit, tc.want, got)
		}
	}
}

func TestFetchItem(t *testing.T) {
	got, err := FetchItem(context.Background(), 7, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "item-7" {
		t.Errorf("expected %q, got %q", "item-7", got)
	}
}

func TestFetchItem_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FetchItem(ctx, 1, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
