// Package ratelimit throttles message processing per user with a token
// bucket per key.
package ratelimit

import (
	"sync"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/metrics"
)

// bucket is one user's token bucket.
type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// Config configures a keyed limiter.
type Config struct {
	// Name identifies the limiter in metrics.
	Name string

	// Burst is the bucket capacity.
	Burst float64

	// RefillRate is tokens added per second.
	RefillRate float64

	// CleanupPeriod bounds how often idle buckets are dropped.
	CleanupPeriod time.Duration

	Metrics *metrics.Metrics
}

// KeyedLimiter rate-limits per key. Idle keys are swept periodically so
// the map does not grow with every user ever seen.
type KeyedLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     Config
	now     func() time.Time
	stop    chan struct{}
}

// New creates a keyed limiter and starts its cleanup loop.
func New(cfg Config) *KeyedLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}
	kl := &KeyedLimiter{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go kl.cleanupLoop()
	return kl
}

// Allow consumes one token for the key. Empty keys are always allowed;
// they carry no identity to throttle on.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := kl.now()
	b, ok := kl.buckets[key]
	if !ok {
		b = &bucket{tokens: kl.cfg.Burst, lastRefill: now}
		kl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * kl.cfg.RefillRate
	if b.tokens > kl.cfg.Burst {
		b.tokens = kl.cfg.Burst
	}
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens < 1 {
		kl.cfg.Metrics.RecordRateLimiterDrop(kl.cfg.Name)
		return false
	}
	b.tokens--
	return true
}

// Stop halts the cleanup loop.
func (kl *KeyedLimiter) Stop() {
	close(kl.stop)
}

// Len reports how many keys currently hold a bucket.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.buckets)
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.cfg.CleanupPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-kl.stop:
			return
		case <-ticker.C:
			kl.sweep()
		}
	}
}

// sweep drops buckets idle long enough to have fully refilled.
func (kl *KeyedLimiter) sweep() {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	cutoff := kl.now().Add(-2 * kl.cfg.CleanupPeriod)
	for key, b := range kl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(kl.buckets, key)
		}
	}
}
