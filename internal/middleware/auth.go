package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"note-service/pkg/jwtutil"
	"note-service/pkg/logger"
	"note-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionKey = "session"

// Session is the token-derived identity attached to a request. It is
// built once by the authenticator and passed down read-only; nothing in
// a request may act on a tenant other than Session.TenantID.
type Session struct {
	UserID    uint
	TenantID  uint
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authenticator turns inbound requests into sessions using the token
// codec. It never returns an error from Authenticate: any failure is
// "no session" so the HTTP layer answers with one generic 401.
type Authenticator struct {
	tokens *jwtutil.JWT
}

func NewAuthenticator(tokens *jwtutil.JWT) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Authenticate extracts and verifies the bearer token from the request.
// Returns nil when the header is missing, malformed, or the token fails
// verification. The cause is recorded in metrics and logs only.
func (a *Authenticator) Authenticate(c echo.Context) *Session {
	log := logger.FromContext(c)

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		prometheus.RecordAuthError("missing_token")
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		log.Warn("Invalid Authorization header format")
		prometheus.RecordAuthError("invalid_auth_format")
		return nil
	}

	claims, err := a.tokens.Verify(parts[1])
	if err != nil {
		log.Warn("Token verification failed", zap.Error(err))
		prometheus.RecordAuthError(authErrorType(err))
		return nil
	}

	session := &Session{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}

// Middleware rejects unauthenticated requests with a generic 401 and
// stores the session in the context for handlers.
func (a *Authenticator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := a.Authenticate(c)
		if session == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		c.Set(sessionKey, session)
		c.Set("user_id", session.UserID)
		c.Set("tenant_id", session.TenantID)
		c.Set("role", session.Role)

		// Enrich the request logger with identity fields
		log := logger.FromContext(c).With(
			zap.Uint("user_id", session.UserID),
			zap.Uint("tenant_id", session.TenantID),
			zap.String("role", session.Role),
		)
		c.Set("logger", log)

		return next(c)
	}
}

// SessionFromContext returns the session stored by Middleware.
func SessionFromContext(c echo.Context) (*Session, bool) {
	session, ok := c.Get(sessionKey).(*Session)
	return session, ok
}

func authErrorType(err error) string {
	switch {
	case errors.Is(err, jwtutil.ErrTokenMalformed):
		return "token_malformed"
	case errors.Is(err, jwtutil.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, jwtutil.ErrSignatureInvalid):
		return "signature_invalid"
	default:
		return "invalid_token"
	}
}
