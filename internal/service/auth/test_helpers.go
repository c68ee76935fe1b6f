package auth

import "time"

// NewTestJWTService creates a JWTService with an injectable time function.
// Intended for tests that need deterministic issuance and expiry checks.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}

	return &hmacJWTService{
		signingKey:    []byte(secret),
		issuer:        "taskhub-test",
		audience:      "taskhub-test-clients",
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0, // No leeway; expiry tests need exact boundaries
	}
}
