package auth

import (
	"time"

	"github.com/tailorent/tailorent-api/internal/config"
)

// NewJWTServiceWithTimeFunc creates a JWT service with an injected clock.
// Intended for tests that exercise expiry and clock-skew behavior.
func NewJWTServiceWithTimeFunc(cfg config.AuthConfig, timeFunc func() time.Time) (JWTService, error) {
	svc, err := NewJWTService(cfg)
	if err != nil {
		return nil, err
	}

	impl := svc.(*hmacJWTService)
	impl.timeFunc = timeFunc
	return impl, nil
}
