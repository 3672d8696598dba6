package cache_test

import (
	"testing"
	"time"

	"github.com/hrs-ecuestre/hrsadmin/internal/app/system/cache"
	"go.uber.org/zap"
)

func newService() *cache.Service {
	return cache.New(time.Minute, time.Minute, zap.NewNop())
}

func TestSetGet(t *testing.T) {
	s := newService()

	if _, ok := s.Get(cache.KeyClases); ok {
		t.Fatal("expected miss on empty cache")
	}

	s.Set(cache.KeyClases, []int{1, 2, 3})
	v, ok := s.Get(cache.KeyClases)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	got, ok := v.([]int)
	if !ok || len(got) != 3 {
		t.Fatalf("cached value: got %v", v)
	}
}

func TestInvalidateDropsEntry(t *testing.T) {
	s := newService()
	s.Set(cache.KeyAlumnos, "x")

	s.Invalidate(cache.KeyAlumnos)

	if _, ok := s.Get(cache.KeyAlumnos); ok {
		t.Fatal("entry survived Invalidate")
	}
}

func TestSubscribeNotifiedOnInvalidate(t *testing.T) {
	s := newService()

	var calls []cache.Key
	s.Subscribe(cache.KeyClases, func(k cache.Key) { calls = append(calls, k) })
	s.Subscribe(cache.KeyClases, func(k cache.Key) { calls = append(calls, k) })
	s.Subscribe(cache.KeyCaballos, func(k cache.Key) { calls = append(calls, k) })

	s.Invalidate(cache.KeyClases)

	if len(calls) != 2 {
		t.Fatalf("subscriber calls: got %d, want 2", len(calls))
	}
	for _, k := range calls {
		if k != cache.KeyClases {
			t.Errorf("notified with key %q, want %q", k, cache.KeyClases)
		}
	}
}

func TestFlushIsSilent(t *testing.T) {
	s := newService()
	s.Set(cache.KeyCaballos, "x")

	notified := false
	s.Subscribe(cache.KeyCaballos, func(cache.Key) { notified = true })

	s.Flush()

	if _, ok := s.Get(cache.KeyCaballos); ok {
		t.Fatal("entry survived Flush")
	}
	if notified {
		t.Fatal("Flush must not notify subscribers")
	}
}
