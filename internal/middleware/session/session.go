package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/Skotchmaster/stylehub/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "styleHub_session"
	ContextKey = "session_id"
	issuer     = "stylehub"
)

var ErrInvalidSession = errors.New("invalid session token")

type Config struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

type Claims struct {
	jwt.RegisteredClaims
}

// Issue signs a session token for sid.
func Issue(secret []byte, sid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   sid,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse returns the session id carried by a valid token.
func Parse(token string, secret []byte) (string, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", ErrInvalidSession
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// Middleware resolves the caller's session from the cookie and starts a new
// one when the cookie is missing, expired or forged.
func Middleware(cfg Config) echo.MiddlewareFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * 24 * time.Hour
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx)

			var sid string
			if ck, err := c.Cookie(CookieName); err == nil {
				sid, err = Parse(ck.Value, cfg.Secret)
				if err != nil {
					l.Info("session_rejected", "reason", "invalid token", "error", err)
				}
			}

			if sid == "" {
				sid = uuid.NewString()
				token, err := Issue(cfg.Secret, sid, cfg.TTL)
				if err != nil {
					l.Error("session_issue_error", "status", http.StatusInternalServerError, "error", err)
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to start session")
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(cfg.TTL),
				})
				l.Debug("session_started", "session_id", sid)
			}

			c.Set(ContextKey, sid)
			req := c.Request().WithContext(logging.IntoContext(ctx, l.With("session_id", sid)))
			c.SetRequest(req)
			return next(c)
		}
	}
}

// ID returns the session id set by Middleware, or "" outside it.
func ID(c echo.Context) string {
	sid, _ := c.Get(ContextKey).(string)
	return sid
}
