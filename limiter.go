package sitegen

import (
	"sync"
	"time"
)

// FormLimiter rate-limits form submissions per client IP with a sliding window.
type FormLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewFormLimiter creates a FormLimiter that allows max submissions per window.
// A non-positive window means one minute. Call Stop to end its cleanup
// goroutine.
func NewFormLimiter(max int, window time.Duration) *FormLimiter {
	if window <= 0 {
		window = time.Minute
	}
	l := &FormLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *FormLimiter) cleanup() {
	defer close(l.done)
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			cutoff := now.Add(-l.window)
			l.mu.Lock()
			for ip, hits := range l.hits {
				if kept := prune(hits, cutoff); len(kept) == 0 {
					delete(l.hits, ip)
				} else {
					l.hits[ip] = kept
				}
			}
			l.mu.Unlock()
		}
	}
}

// Allow records a submission from ip and reports whether it is within the limit.
// Rejected submissions are not recorded.
func (l *FormLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[ip], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}

// Stop ends the cleanup goroutine and waits for it to exit.
func (l *FormLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
