package sitegen

import (
	"testing"
	"time"
)

func TestFormLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewFormLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first submission to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second submission to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third submission to be blocked")
	}
}

func TestFormLimiterNonPositiveWindow(t *testing.T) {
	limiter := NewFormLimiter(1, -time.Second)
	defer limiter.Stop()

	if limiter.window != time.Minute {
		t.Fatalf("window = %v, want %v", limiter.window, time.Minute)
	}
	if !limiter.Allow("203.0.113.40") {
		t.Fatalf("expected first submission to be allowed")
	}
}

func TestFormLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewFormLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first submission to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second submission to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected submission after window to be allowed")
	}
}

func TestFormLimiterIsPerIP(t *testing.T) {
	limiter := NewFormLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestFormLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewFormLimiter(1, time.Hour)
	limiter.Stop()
	limiter.Stop()
}
