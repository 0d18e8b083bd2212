package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// otpStore holds pending password-reset codes. Redis-backed when available
// so codes survive restarts and expire server-side; otherwise an in-process
// map with the same TTL semantics.
type otpStore struct {
	cache *redis.Client
	ttl   time.Duration

	mu    sync.Mutex
	local map[string]localOTP
}

type localOTP struct {
	code    string
	expires time.Time
}

func newOTPStore(cache *redis.Client, ttl time.Duration) *otpStore {
	return &otpStore{cache: cache, ttl: ttl, local: make(map[string]localOTP)}
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpKey(email string) string {
	return "otp:" + email
}

// Issue stores a fresh code for the email, replacing any pending one.
func (s *otpStore) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.SetEx(ctx, otpKey(email), code, s.ttl).Err(); err != nil {
			return "", err
		}
		return code, nil
	}
	s.mu.Lock()
	s.local[email] = localOTP{code: code, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return code, nil
}

// Consume checks the code and removes it on a match. A code verifies once.
func (s *otpStore) Consume(ctx context.Context, email, code string) bool {
	if code == "" {
		return false
	}
	if s.cache != nil {
		stored, err := s.cache.Get(ctx, otpKey(email)).Result()
		if err != nil || stored != code {
			return false
		}
		s.cache.Del(ctx, otpKey(email))
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.local[email]
	if !ok || time.Now().After(pending.expires) || pending.code != code {
		return false
	}
	delete(s.local, email)
	return true
}
