//go:build !windows

package capi

import (
	"testing"
	"unsafe"

	"github.com/wippyai/cef-bridge/internal/cefsim"
)

func simObject(t *testing.T) *Base {
	t.Helper()
	p := cefsim.NewObject(0)
	if p == nil {
		t.Fatal("cefsim.NewObject returned nil")
	}
	return (*Base)(p)
}

// resetCounters zeroes the stand-in's counters and checks on cleanup that no
// wrapped object outlived the test.
func resetCounters(t *testing.T) {
	t.Helper()
	cefsim.Reset()
	live := LiveWrapped()
	t.Cleanup(func() {
		if got := LiveWrapped(); got != live {
			t.Errorf("live wrapped objects: got %d, want %d", got, live)
		}
	})
}

func ptr[T Foreign](p *T) unsafe.Pointer { return unsafe.Pointer(p) }
