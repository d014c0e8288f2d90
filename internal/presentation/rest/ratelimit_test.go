package rest

import (
	"testing"
	"time"
)

func TestClientRateLimiter_Allow(t *testing.T) {
	rl := NewClientRateLimiter(10, time.Minute)

	// A client may burst up to the full budget.
	for i := 0; i < 10; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}

	// The 11th request inside the window is rejected.
	if rl.Allow("10.0.0.1") {
		t.Fatal("11th request should have been denied")
	}
}

func TestClientRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewClientRateLimiter(2, time.Minute)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.1")
	if rl.Allow("10.0.0.1") {
		t.Fatal("first client should be exhausted")
	}

	if !rl.Allow("10.0.0.2") {
		t.Fatal("second client should have its own budget")
	}
}

func TestClientRateLimiter_Refill(t *testing.T) {
	now := time.Now()
	rl := NewClientRateLimiter(10, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		rl.Allow("10.0.0.1")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("should be denied after draining tokens")
	}

	// Six seconds refills one token at 10/min.
	now = now.Add(6 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("should be allowed after refill period")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("only one token should have refilled")
	}
}

func TestClientRateLimiter_CapacityCapped(t *testing.T) {
	now := time.Now()
	rl := NewClientRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")

	// A long idle period must not accumulate more than the capacity.
	now = now.Add(time.Hour)
	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow("10.0.0.1") {
			allowed++
		}
	}
	if allowed != 5 {
		t.Fatalf("expected 5 allowed requests (capped at capacity), got %d", allowed)
	}
}

func TestClientRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Now()
	rl := NewClientRateLimiter(10, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")

	now = now.Add(idleEviction + time.Minute)
	rl.Allow("10.0.0.3")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.buckets["10.0.0.1"]; ok {
		t.Fatal("idle bucket should have been evicted")
	}
	if _, ok := rl.buckets["10.0.0.3"]; !ok {
		t.Fatal("active bucket should remain")
	}
}
