//go:build !windows

package capi

import (
	stderrors "errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/wippyai/cef-bridge/errors"
	"github.com/wippyai/cef-bridge/internal/cefsim"
)

func TestRefRoundTrip(t *testing.T) {
	resetCounters(t)
	obj := simObject(t)

	r := WrapNew(obj)
	if !r.HasOneRef() {
		t.Fatal("fresh ref should hold the only reference")
	}
	clone := r.Clone()
	if r.HasOneRef() {
		t.Fatal("clone should add a reference")
	}
	if got := cefsim.RefCount(ptr(obj)); got != 2 {
		t.Fatalf("refs after clone: got %d, want 2", got)
	}
	if clone.Raw() != r.Raw() {
		t.Fatal("clone should point at the same object")
	}

	if r.Release() {
		t.Fatal("first release must not free")
	}
	if cefsim.Frees() != 0 {
		t.Fatal("object freed early")
	}
	if !clone.Release() {
		t.Fatal("last release must report free")
	}
	if cefsim.Frees() != 1 {
		t.Fatalf("frees: got %d, want 1", cefsim.Frees())
	}
}

func TestRefAddRefTwiceReleaseThrice(t *testing.T) {
	resetCounters(t)
	obj := simObject(t)
	r := WrapNew(obj)
	a := r.Clone()
	b := r.Clone()

	for i, h := range []*Ref[Base]{r, a} {
		if h.Release() {
			t.Fatalf("release %d freed the object", i+1)
		}
		if cefsim.Frees() != 0 {
			t.Fatalf("frees after release %d: got %d", i+1, cefsim.Frees())
		}
	}
	if !b.Release() {
		t.Fatal("third release should free")
	}
	if cefsim.Frees() != 1 {
		t.Fatalf("frees: got %d, want 1", cefsim.Frees())
	}
}

func TestRefReleaseOnce(t *testing.T) {
	resetCounters(t)
	obj := simObject(t)
	r := WrapNew(obj)
	keep := r.Clone()

	r.Release()
	r.Release()
	if got := cefsim.RefCount(ptr(obj)); got != 1 {
		t.Fatalf("second Release must be a no-op, refs = %d", got)
	}
	if r.Raw() != nil {
		t.Fatal("released handle should be empty")
	}

	var nilRef *Ref[Base]
	if nilRef.Release() {
		t.Fatal("nil handle release should report false")
	}
	keep.Release()
}

func TestRefIntoRaw(t *testing.T) {
	resetCounters(t)
	obj := simObject(t)
	r := WrapNew(obj)

	raw := r.IntoRaw()
	if raw != obj {
		t.Fatal("IntoRaw returned a different pointer")
	}
	if r.Release() {
		t.Fatal("Release after IntoRaw must not touch the object")
	}
	if got := cefsim.RefCount(ptr(obj)); got != 1 {
		t.Fatalf("refs after IntoRaw: got %d, want 1", got)
	}

	WrapNew(raw).Release()
	if cefsim.Frees() != 1 {
		t.Fatal("re-adopted pointer was not freed")
	}
}

func TestRefConstructors(t *testing.T) {
	t.Run("WrapNew nil panics", func(t *testing.T) {
		defer func() {
			v := recover()
			err, ok := v.(*errors.Error)
			if !ok {
				t.Fatalf("expected *errors.Error panic, got %v", v)
			}
			if err.Kind != errors.KindNilPointer {
				t.Fatalf("kind: got %s", err.Kind)
			}
		}()
		WrapNew[CallbackStruct](nil)
	})

	t.Run("WrapExisting nil", func(t *testing.T) {
		if WrapExisting[CallbackStruct](nil) != nil {
			t.Fatal("expected nil handle")
		}
		if WrapAndAddRef[CallbackStruct](nil) != nil {
			t.Fatal("expected nil handle")
		}
	})

	t.Run("WrapAndAddRef", func(t *testing.T) {
		resetCounters(t)
		obj := simObject(t)
		borrowed := WrapAndAddRef(obj)
		if got := cefsim.RefCount(ptr(obj)); got != 2 {
			t.Fatalf("refs: got %d, want 2", got)
		}
		borrowed.Release()
		if !cefsim.Release(ptr(obj)) {
			t.Fatal("original reference should be the last")
		}
	})
}

func TestRefReleasedUse(t *testing.T) {
	resetCounters(t)
	r := WrapNew(simObject(t))
	r.Release()

	defer func() {
		err, ok := recover().(*errors.Error)
		if !ok || err.Kind != errors.KindReleased {
			t.Fatalf("expected released error, got %v", err)
		}
	}()
	r.Clone()
}

func TestRefValidate(t *testing.T) {
	resetCounters(t)

	good := WrapNew(simObject(t))
	defer good.Release()
	if err := good.Validate(); err != nil {
		t.Fatalf("complete header: %v", err)
	}

	p := cefsim.NewObject(cefsim.OmitHasOneRef | cefsim.OmitHasAtLeastOneRef)
	broken := WrapNew((*Base)(p))
	defer broken.Release()

	err := broken.Validate()
	var missing *errors.MissingEntryPointsError
	if !stderrors.As(err, &missing) {
		t.Fatalf("expected MissingEntryPointsError, got %v", err)
	}
	if len(missing.Entries) != 2 {
		t.Fatalf("entries: %+v", missing.Entries)
	}
	if missing.Entries[0].Entry != "has_one_ref" {
		t.Fatalf("first missing entry: %s", missing.Entries[0].Entry)
	}
	if broken.HasOneRef() {
		t.Fatal("missing has_one_ref should read as false")
	}

	released := WrapNew(simObject(t))
	released.Release()
	if err := released.Validate(); !stderrors.Is(err, errors.Released(errors.PhaseLifecycle, "")) {
		t.Fatalf("expected released error, got %v", err)
	}
}

func TestRefConcurrentClones(t *testing.T) {
	resetCounters(t)
	r := WrapNew(simObject(t))

	const workers = 16
	const iterations = 500
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				c := r.Clone()
				if c.Release() {
					t.Error("a clone release freed the object")
					return
				}
			}
		}()
	}
	wg.Wait()

	if cefsim.Frees() != 0 {
		t.Fatalf("frees while held: %d", cefsim.Frees())
	}
	if !r.Release() {
		t.Fatal("final release should free")
	}
	if cefsim.Frees() != 1 {
		t.Fatalf("frees: got %d, want 1", cefsim.Frees())
	}
}

func TestRefConcurrentSharedHandle(t *testing.T) {
	resetCounters(t)
	obj := simObject(t)
	cefsim.AddRef(ptr(obj))
	r := WrapNew(obj)

	// Many goroutines race to release the same handle: only one may win.
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Release()
		}()
	}
	wg.Wait()

	if got := cefsim.RefCount(ptr(obj)); got != 1 {
		t.Fatalf("refs: got %d, want 1", got)
	}
	cefsim.Release(ptr(obj))
}

func TestRefReleaseFromNativeThreads(t *testing.T) {
	resetCounters(t)
	const threads = 8
	for round := 0; round < 50; round++ {
		obj := simObject(t)
		for i := 1; i < threads; i++ {
			cefsim.AddRef(ptr(obj))
		}
		if got := cefsim.ReleaseOnThreads(ptr(obj), threads); got != 1 {
			t.Fatalf("round %d: releases reporting free: got %d, want 1", round, got)
		}
	}
	if cefsim.Allocs() != cefsim.Frees() {
		t.Fatalf("allocs %d != frees %d", cefsim.Allocs(), cefsim.Frees())
	}
}

func TestRefLeakCleanup(t *testing.T) {
	resetCounters(t)
	SetLeakCleanup(true)

	func() {
		WrapNew(simObject(t))
	}()

	deadline := time.Now().Add(5 * time.Second)
	for cefsim.Frees() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("leaked handle was never released")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRefLeakCleanupDisabled(t *testing.T) {
	resetCounters(t)
	SetLeakCleanup(false)
	defer SetLeakCleanup(true)

	obj := simObject(t)
	func() {
		WrapNew(obj)
	}()
	for i := 0; i < 3; i++ {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if cefsim.Frees() != 0 {
		t.Fatal("untracked handle must not be released")
	}
	cefsim.Release(ptr(obj))
}

func TestRefCloneOfTemporary(t *testing.T) {
	resetCounters(t)
	SetLeakCleanup(true)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				runtime.GC()
			}
		}
	}()

	const n = 200
	clones := make([]*Ref[Base], 0, n)
	for i := 0; i < n; i++ {
		c := WrapNew(simObject(t)).Clone()
		if got := cefsim.RefCount(ptr(c.Raw())); got < 1 {
			t.Fatalf("clone %d: ref count %d", i, got)
		}
		clones = append(clones, c)
	}
	close(stop)
	wg.Wait()

	for _, c := range clones {
		c.Release()
	}
	deadline := time.Now().Add(5 * time.Second)
	for cefsim.Frees() != n {
		if time.Now().After(deadline) {
			t.Fatalf("frees: got %d, want %d", cefsim.Frees(), n)
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if cefsim.Allocs() != n {
		t.Fatalf("allocs: got %d, want %d", cefsim.Allocs(), n)
	}
}
