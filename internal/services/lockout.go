package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lockout tracks failed logins per username. Expiry is evaluated lazily by
// comparing now against the stored lock deadline; nothing runs in the
// background.
type Lockout interface {
	// Check returns how long username stays locked; zero means unlocked.
	Check(ctx context.Context, username string, now time.Time) (time.Duration, error)
	// Fail records a failed attempt and returns the lock duration if this
	// attempt locked the account.
	Fail(ctx context.Context, username string, now time.Time) (time.Duration, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}

type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}

var DefaultLockoutPolicy = LockoutPolicy{MaxAttempts: 5, Duration: 15 * time.Minute}

// failTTL bounds how long an idle failure counter is remembered.
const failTTL = 24 * time.Hour

type lockState struct {
	fails       int
	lastFail    time.Time
	lockedUntil time.Time
}

// stale reports whether st no longer affects username at now.
func (st *lockState) stale(now time.Time) bool {
	if !st.lockedUntil.IsZero() {
		return !now.Before(st.lockedUntil)
	}
	return now.Sub(st.lastFail) >= failTTL
}

// MemoryLockout keeps lockout state in process memory; it is lost on restart.
type MemoryLockout struct {
	policy LockoutPolicy
	mu     sync.Mutex
	state  map[string]*lockState
	// sweepAt is the map size that triggers the next pass over stale entries.
	sweepAt int
}

const minSweep = 1024

func NewMemoryLockout(p LockoutPolicy) *MemoryLockout {
	return &MemoryLockout{policy: p, state: map[string]*lockState{}, sweepAt: minSweep}
}

// current returns the state for username, dropping it once stale. Callers hold mu.
func (l *MemoryLockout) current(username string, now time.Time) *lockState {
	st, ok := l.state[username]
	if !ok {
		return nil
	}
	if st.stale(now) {
		delete(l.state, username)
		return nil
	}
	return st
}

// sweep drops stale entries once the map has doubled since the last pass.
// Callers hold mu.
func (l *MemoryLockout) sweep(now time.Time) {
	if len(l.state) < l.sweepAt {
		return
	}
	for u, st := range l.state {
		if st.stale(now) {
			delete(l.state, u)
		}
	}
	l.sweepAt = max(minSweep, 2*len(l.state))
}

func (l *MemoryLockout) Check(_ context.Context, username string, now time.Time) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.current(username, now)
	if st == nil || st.lockedUntil.IsZero() {
		return 0, nil
	}
	return st.lockedUntil.Sub(now), nil
}

func (l *MemoryLockout) Fail(_ context.Context, username string, now time.Time) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := l.current(username, now)
	if st == nil {
		l.sweep(now)
		st = &lockState{}
		l.state[username] = st
	}
	if !st.lockedUntil.IsZero() {
		return st.lockedUntil.Sub(now), nil
	}
	st.fails++
	st.lastFail = now
	if st.fails >= l.policy.MaxAttempts {
		st.fails = 0
		st.lockedUntil = now.Add(l.policy.Duration)
		return l.policy.Duration, nil
	}
	return 0, nil
}

func (l *MemoryLockout) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.state, username)
	return nil
}

// RedisLockout shares lockout state between processes through Redis.
type RedisLockout struct {
	rdb    *redis.Client
	policy LockoutPolicy
	prefix string
}

func NewRedisLockout(rdb *redis.Client, p LockoutPolicy) *RedisLockout {
	return &RedisLockout{rdb: rdb, policy: p, prefix: "login"}
}

func (l *RedisLockout) failKey(u string) string { return l.prefix + ":fails:" + u }
func (l *RedisLockout) lockKey(u string) string { return l.prefix + ":locked:" + u }

func (l *RedisLockout) Check(ctx context.Context, username string, now time.Time) (time.Duration, error) {
	ms, err := l.rdb.Get(ctx, l.lockKey(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	until := time.UnixMilli(ms)
	if !now.Before(until) {
		return 0, nil
	}
	return until.Sub(now), nil
}

func (l *RedisLockout) Fail(ctx context.Context, username string, now time.Time) (time.Duration, error) {
	if rem, err := l.Check(ctx, username, now); err != nil || rem > 0 {
		return rem, err
	}
	n, err := l.rdb.Incr(ctx, l.failKey(username)).Result()
	if err != nil {
		return 0, err
	}
	if err := l.rdb.Expire(ctx, l.failKey(username), failTTL).Err(); err != nil {
		return 0, err
	}
	if n < int64(l.policy.MaxAttempts) {
		return 0, nil
	}
	until := now.Add(l.policy.Duration)
	_, err = l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, l.lockKey(username), until.UnixMilli(), l.policy.Duration)
		p.Del(ctx, l.failKey(username))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return l.policy.Duration, nil
}

func (l *RedisLockout) Reset(ctx context.Context, username string) error {
	return l.rdb.Del(ctx, l.failKey(username), l.lockKey(username)).Err()
}
