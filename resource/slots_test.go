package resource

import (
	"sync"
	"testing"
)

func TestSlots_Basic(t *testing.T) {
	var s slots

	h := s.put(TypeTask, "hello")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	it, ok := s.lookup(h)
	if !ok {
		t.Fatal("lookup failed")
	}
	if it.value != "hello" || it.typeID != TypeTask {
		t.Fatalf("Unexpected slot %+v", it)
	}

	it, ok = s.take(h)
	if !ok || it.value != "hello" {
		t.Fatalf("take = %+v, %v", it, ok)
	}
	if _, ok = s.lookup(h); ok {
		t.Fatal("lookup after take should fail")
	}
	if _, ok = s.take(h); ok {
		t.Fatal("second take should fail")
	}
}

func TestSlots_HandleReuse(t *testing.T) {
	var s slots

	h1 := s.put(TypeTask, "a")
	h2 := s.put(TypeTask, "b")
	s.take(h1)
	s.take(h2)

	if h := s.put(TypeApp, "c"); h != h2 {
		t.Fatalf("Expected most recently freed handle %d, got %d", h2, h)
	}
	if h := s.put(TypeApp, "d"); h != h1 {
		t.Fatalf("Expected handle %d, got %d", h1, h)
	}
	if h := s.put(TypeApp, "e"); h != 3 {
		t.Fatalf("Expected fresh handle 3, got %d", h)
	}
}

func TestSlots_InvalidHandle(t *testing.T) {
	var s slots

	for _, h := range []Handle{0, 1, 99} {
		if _, ok := s.lookup(h); ok {
			t.Errorf("lookup(%d) should fail", h)
		}
		if _, ok := s.take(h); ok {
			t.Errorf("take(%d) should fail", h)
		}
	}
}

func TestSlots_Concurrent(t *testing.T) {
	var s slots
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				h := s.put(TypeTask, n*1000+j)
				it, ok := s.lookup(h)
				if !ok || it.value != n*1000+j {
					t.Errorf("lookup(%d) = %+v, %v", h, it, ok)
					return
				}
				if _, ok := s.take(h); !ok {
					t.Errorf("take(%d) failed", h)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if n := s.len(); n != 0 {
		t.Fatalf("Expected len 0, got %d", n)
	}
}

func TestSlots_Len(t *testing.T) {
	var s slots

	h := s.put(TypeTask, 1)
	s.put(TypeTask, 2)
	if s.len() != 2 {
		t.Fatalf("Expected len 2, got %d", s.len())
	}
	s.take(h)
	if s.len() != 1 {
		t.Fatalf("Expected len 1, got %d", s.len())
	}
}
