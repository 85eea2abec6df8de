package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(60, 2)
	defer l.Stop()

	if r := l.Allow("1.2.3.4"); !r.Allowed {
		t.Fatal("first request denied")
	}
	if r := l.Allow("1.2.3.4"); !r.Allowed {
		t.Fatal("burst request denied")
	}
	r := l.Allow("1.2.3.4")
	if r.Allowed {
		t.Fatal("request beyond burst allowed")
	}
	if r.RetryAfter < time.Second {
		t.Errorf("RetryAfter = %v, want at least 1s", r.RetryAfter)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := NewLimiter(60, 1)
	defer l.Stop()

	if r := l.Allow("a"); !r.Allowed {
		t.Fatal("first key denied")
	}
	if r := l.Allow("a"); r.Allowed {
		t.Fatal("second request on same key allowed")
	}
	if r := l.Allow("b"); !r.Allowed {
		t.Fatal("fresh key denied")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0, 0)
	defer l.Stop()

	for range 100 {
		if r := l.Allow("x"); !r.Allowed {
			t.Fatal("disabled limiter denied a request")
		}
	}
}
