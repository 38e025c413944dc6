//go:build !windows

package main

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/wippyai/cef-bridge/capi"
	"github.com/wippyai/cef-bridge/internal/cefsim"
)

type runConfig struct {
	threads    int
	iterations int
}

type scenario struct {
	name        string
	description string
	run         func(cfg runConfig) (string, error)
}

type result struct {
	err      error
	name     string
	detail   string
	allocs   int64
	frees    int64
	live     int64
	duration time.Duration
}

var scenarios = []scenario{
	{"roundtrip", "add_ref twice, release three times, one free on the last", runRoundTrip},
	{"concurrent", "simultaneous release from native threads frees once", runConcurrent},
	{"wrapped", "runtime-driven add_ref/release on a wrapped Go value", runWrapped},
	{"oneshot", "completion callback invoked twice runs once", runOneShot},
	{"strings", "UTF-8 to UTF-16 and back", runStrings},
	{"userfree", "userfree strings are freed exactly once", runUserfree},
	{"threads", "wrapped object hammered from native threads", runThreads},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}

func execute(s scenario, cfg runConfig) result {
	cefsim.Reset()
	liveBefore := capi.LiveWrapped()
	start := time.Now()
	detail, err := s.run(cfg)
	return result{
		name:     s.name,
		detail:   detail,
		err:      err,
		allocs:   cefsim.Allocs(),
		frees:    cefsim.Frees(),
		live:     capi.LiveWrapped() - liveBefore,
		duration: time.Since(start),
	}
}

func runRoundTrip(runConfig) (string, error) {
	r := capi.WrapNew((*capi.Base)(cefsim.NewObject(0)))
	a := r.Clone()
	b := r.Clone()
	for i, h := range []*capi.Ref[capi.Base]{r, a} {
		if h.Release() || cefsim.Frees() != 0 {
			return "", fmt.Errorf("release %d freed the object", i+1)
		}
	}
	if !b.Release() {
		return "", fmt.Errorf("third release did not report free")
	}
	if cefsim.Frees() != 1 {
		return "", fmt.Errorf("frees: got %d, want 1", cefsim.Frees())
	}
	return "freed on release 3 of 3", nil
}

func runConcurrent(cfg runConfig) (string, error) {
	rounds := cfg.iterations / 100
	if rounds < 1 {
		rounds = 1
	}
	for round := 0; round < rounds; round++ {
		p := cefsim.NewObject(0)
		for i := 1; i < cfg.threads; i++ {
			cefsim.AddRef(p)
		}
		if n := cefsim.ReleaseOnThreads(p, cfg.threads); n != 1 {
			return "", fmt.Errorf("round %d: %d releases reported free", round, n)
		}
	}
	if cefsim.Allocs() != cefsim.Frees() {
		return "", fmt.Errorf("allocs %d, frees %d", cefsim.Allocs(), cefsim.Frees())
	}
	return fmt.Sprintf("%d rounds x %d threads", rounds, cfg.threads), nil
}

type countingTask struct {
	drops int
}

func (c *countingTask) Execute() {}
func (c *countingTask) Drop()    { c.drops++ }

func runWrapped(runConfig) (string, error) {
	task := &countingTask{}
	raw := unsafe.Pointer(capi.NewTask(task).IntoRaw())
	cefsim.AddRef(raw)
	cefsim.AddRef(raw)
	for i := 0; i < 2; i++ {
		if cefsim.Release(raw) {
			return "", fmt.Errorf("release %d freed the wrapped object", i+1)
		}
	}
	if !cefsim.Release(raw) {
		return "", fmt.Errorf("last release did not free")
	}
	if task.drops != 1 {
		return "", fmt.Errorf("host value dropped %d times", task.drops)
	}
	return "host value dropped once", nil
}

func runOneShot(runConfig) (string, error) {
	calls := 0
	cb := capi.NewCompletionCallback(func() { calls++ })
	cefsim.Complete(unsafe.Pointer(cb.Raw()))
	cefsim.Complete(unsafe.Pointer(cb.Raw()))
	cb.Release()
	if calls != 1 {
		return "", fmt.Errorf("closure ran %d times", calls)
	}

	done := make(chan struct{}, 1)
	raw := unsafe.Pointer(capi.NewCompletionCallback(func() { done <- struct{}{} }).IntoRaw())
	if !cefsim.CompleteOnThread(raw) {
		return "", fmt.Errorf("could not start native thread")
	}
	select {
	case <-done:
	default:
		return "", fmt.Errorf("closure did not run on native thread")
	}
	return "ran once, also from a native thread", nil
}

var sampleStrings = []string{"", "plain", "Grüße", "日本語", "emoji 🌍🚀", "a\x00b"}

func runStrings(runConfig) (string, error) {
	units := 0
	for _, in := range sampleStrings {
		s := capi.NewString(in)
		out := s.String()
		units += s.Len()
		s.Free()
		if out != in {
			return "", fmt.Errorf("round trip: %q became %q", in, out)
		}
	}

	var visited []string
	v := capi.NewStringVisitor(capi.StringVisitorFunc(func(s string) { visited = append(visited, s) }))
	defer v.Release()
	for _, in := range sampleStrings {
		cefsim.Visit(unsafe.Pointer(v.Raw()), cefsim.UTF16(in))
	}
	for i, in := range sampleStrings {
		if visited[i] != in {
			return "", fmt.Errorf("visitor: %q became %q", in, visited[i])
		}
	}
	return fmt.Sprintf("%d strings, %d code units", len(sampleStrings), units), nil
}

func runUserfree(cfg runConfig) (string, error) {
	n := cfg.iterations
	for i := 0; i < n; i++ {
		u := capi.Userfree(cefsim.NewUserfree(cefsim.UTF16("userfree")))
		s, err := capi.ConsumeUserfree(u)
		if err != nil {
			return "", err
		}
		s.Free()
	}
	if got := cefsim.BuffersFreed(); got != int64(n) {
		return "", fmt.Errorf("buffers freed: got %d, want %d", got, n)
	}
	return fmt.Sprintf("%d consumed", n), nil
}

func runThreads(cfg runConfig) (string, error) {
	task := &countingTask{}
	r := capi.NewTask(task)
	if n := cefsim.Stress(unsafe.Pointer(r.Raw()), cfg.threads, cfg.iterations); n != 0 {
		r.Release()
		return "", fmt.Errorf("%d releases reported free while a reference was held", n)
	}
	if !r.HasOneRef() {
		r.Release()
		return "", fmt.Errorf("count drifted")
	}

	raw := unsafe.Pointer(r.IntoRaw())
	for i := 1; i < cfg.threads; i++ {
		cefsim.AddRef(raw)
	}
	if n := cefsim.ReleaseOnThreads(raw, cfg.threads); n != 1 {
		return "", fmt.Errorf("%d final releases reported free", n)
	}
	if task.drops != 1 {
		return "", fmt.Errorf("host value dropped %d times", task.drops)
	}
	return fmt.Sprintf("%d threads x %d add_ref/release", cfg.threads, cfg.iterations), nil
}
