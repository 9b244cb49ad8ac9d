// Package testkit holds small helpers shared by package tests
package testkit

import (
	"sync"
	"testing"
)

var serial sync.Mutex

// Swap points *target at v until the test ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock for the rest of the test. Use it with Swap
// on package level seams that parallel tests also read
func Serial(t testing.TB) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// MustPanic fails the test unless fn panics and returns the recovered value
func MustPanic(t testing.TB, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}
