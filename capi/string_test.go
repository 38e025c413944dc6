//go:build !windows

package capi

import (
	stderrors "errors"
	"runtime"
	"testing"
	"time"

	"github.com/wippyai/cef-bridge/errors"
	"github.com/wippyai/cef-bridge/internal/cefsim"
)

func TestStringRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		units int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"latin", "Grüße", 5},
		{"cjk", "日本語", 3},
		{"astral", "a🌍b", 4},
		{"embedded nul", "a\x00b", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewString(tt.in)
			defer s.Free()

			if s.Len() != tt.units {
				t.Fatalf("Len: got %d, want %d", s.Len(), tt.units)
			}
			if got := s.String(); got != tt.in {
				t.Fatalf("round trip: got %q, want %q", got, tt.in)
			}
			if tt.in != "" && !s.Owned() {
				t.Fatal("copied string should carry a destructor")
			}
		})
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	s := NewString("a\xffb")
	defer s.Free()
	if got := s.String(); got != "a�b" {
		t.Fatalf("got %q", got)
	}
}

func TestStringSetAndFree(t *testing.T) {
	s := NewString("first")
	s.Set("second value")
	if s.String() != "second value" {
		t.Fatalf("Set: got %q", s.String())
	}

	s.Free()
	if s.Owned() || s.Len() != 0 || s.String() != "" {
		t.Fatal("Free should leave an empty string")
	}
	s.Free()
	if s.Raw() != nil {
		t.Fatal("Raw after Free should be nil")
	}

	func() {
		defer func() {
			err, _ := recover().(error)
			if !stderrors.Is(err, errors.Released(errors.PhaseMarshal, "")) {
				t.Errorf("Set after Free: got %v", err)
			}
		}()
		s.Set("third")
	}()

	var nilString *String
	nilString.Free()
	if nilString.String() != "" || nilString.Len() != 0 {
		t.Fatal("nil String should read as empty")
	}
}

func TestConsumeUserfree(t *testing.T) {
	cefsim.Reset()
	u := Userfree(cefsim.NewUserfree(cefsim.UTF16("userfree ✓")))

	s, err := ConsumeUserfree(u)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Free()

	if s.String() != "userfree ✓" {
		t.Fatalf("got %q", s.String())
	}
	if cefsim.BuffersFreed() != 1 {
		t.Fatalf("userfree buffer freed %d times, want 1", cefsim.BuffersFreed())
	}

	empty, err := ConsumeUserfree(Userfree(cefsim.NewUserfree(nil)))
	if err != nil || empty.String() != "" {
		t.Fatalf("empty userfree: %q %v", empty.String(), err)
	}
	empty.Free()

	_, err = ConsumeUserfree(nil)
	if !stderrors.Is(err, errors.NilPointer(errors.PhaseMarshal, "")) {
		t.Fatalf("nil userfree: %v", err)
	}
}

func TestStringList(t *testing.T) {
	l := NewStringList("a", "", "ç")
	defer l.Free()
	l.Append("last")

	if l.Len() != 4 {
		t.Fatalf("Len: got %d", l.Len())
	}
	want := []string{"a", "", "ç", "last"}
	got := l.Values()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if v, err := l.Value(2); err != nil || v != "ç" {
		t.Fatalf("Value(2): %q %v", v, err)
	}

	_, err := l.Value(4)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindOutOfBounds {
		t.Fatalf("Value(4): %v", err)
	}

	l.Free()
	l.Free()
	if l.Len() != 0 || len(l.Values()) != 0 {
		t.Fatal("freed list should be empty")
	}
}

func TestMultimap(t *testing.T) {
	var m Multimap
	m.Add("Accept", "text/html")
	m.Add("Cookie", "a=1")
	m.Add("Accept", "application/json")

	if v, ok := m.Get("Accept"); !ok || v != "text/html" {
		t.Fatalf("Get: %q %v", v, ok)
	}
	if _, ok := m.Get("Missing"); ok {
		t.Fatal("Get on missing key")
	}
	if vals := m.Values("Accept"); len(vals) != 2 || vals[1] != "application/json" {
		t.Fatalf("Values: %q", vals)
	}
	if keys := m.Keys(); len(keys) != 2 || keys[0] != "Accept" || keys[1] != "Cookie" {
		t.Fatalf("Keys: %q", keys)
	}

	fm := NewStringMultimap(m)
	defer fm.Free()
	fm.Append("Cookie", "b=2")

	if fm.Len() != 4 {
		t.Fatalf("Len: got %d", fm.Len())
	}
	if fm.FindCount("Cookie") != 2 || fm.FindCount("none") != 0 {
		t.Fatalf("FindCount: %d", fm.FindCount("Cookie"))
	}

	back := fm.Multimap()
	want := Multimap{
		{"Accept", "text/html"},
		{"Cookie", "a=1"},
		{"Accept", "application/json"},
		{"Cookie", "b=2"},
	}
	if len(back) != len(want) {
		t.Fatalf("entries: got %d, want %d", len(back), len(want))
	}
	for i := range want {
		if back[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, back[i], want[i])
		}
	}
}

func TestStringLeakCleanup(t *testing.T) {
	SetLeakCleanup(true)
	before := leakedStrings.Load()

	func() {
		NewString("dropped without Free")
	}()

	deadline := time.Now().Add(5 * time.Second)
	for leakedStrings.Load() == before {
		if time.Now().After(deadline) {
			t.Fatal("leaked string was never freed")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStringFreeStopsCleanup(t *testing.T) {
	SetLeakCleanup(true)
	before := leakedStrings.Load()

	func() {
		NewString("freed").Free()
	}()
	for i := 0; i < 3; i++ {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if leakedStrings.Load() != before {
		t.Fatal("freed string must not be cleaned up again")
	}
}
