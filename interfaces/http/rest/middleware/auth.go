// Package middleware provides the HTTP middleware for the REST API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"insightgraph/infrastructure/config"
	"insightgraph/pkg/auth"
	"insightgraph/pkg/common"
)

// Per-key request budgets, refilled continuously
const (
	ipRequestsPerMinute   = 100
	userRequestsPerMinute = 200
)

// Authenticate validates bearer tokens and applies per-IP and per-user
// rate limits. In development without a configured secret it accepts a
// header identity so the service stays usable against a local panel.
func Authenticate(cfg *config.Config, logger *zap.Logger) func(next http.Handler) http.Handler {
	var validator *auth.JWTValidator
	if cfg.JWTSecret != "" {
		v, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
		})
		if err != nil {
			logger.Error("jwt validator setup failed", zap.Error(err))
			return rejectAll
		}
		validator = v
	} else if !cfg.IsDevelopment() {
		logger.Error("authentication is not configured outside development")
		return rejectAll
	}

	ipLimiter := auth.NewIPRateLimiter(ipRequestsPerMinute)
	userLimiter := auth.NewUserRateLimiter(userRequestsPerMinute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), getClientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests,
					common.StandardErrorCodes.TooManyRequests, "rate limit exceeded")
				return
			}

			var user *auth.UserContext
			if validator == nil {
				// Development identity: the X-User-ID header, or a
				// shared default.
				userID := r.Header.Get("X-User-ID")
				if userID == "" {
					userID = "dev-user"
				}
				user = &auth.UserContext{UserID: userID}
			} else {
				token := extractToken(r)
				if token == "" {
					respondUnauthorized(w, "missing authentication token")
					return
				}

				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.Warn("token rejected",
						zap.String("path", r.URL.Path),
						zap.Error(err),
					)
					switch {
					case errors.Is(err, auth.ErrExpiredToken):
						respondUnauthorized(w, "token has expired")
					case errors.Is(err, auth.ErrInvalidSignature):
						respondUnauthorized(w, "invalid token signature")
					default:
						respondUnauthorized(w, "invalid token")
					}
					return
				}
				user = &auth.UserContext{
					UserID: claims.UserID,
					Email:  claims.Email,
					Roles:  claims.Roles,
				}
			}

			allowed, _ = userLimiter.Allow(r.Context(), user.UserID)
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests,
					common.StandardErrorCodes.TooManyRequests, "user rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(r.Context(), user)))
		})
	}
}

// rejectAll is installed when authentication cannot be set up; no
// request gets through a misconfigured boundary.
func rejectAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondUnauthorized(w, "authentication is not configured")
	})
}

// extractToken pulls the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

// getClientIP extracts the client IP address, preferring proxy headers
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(w http.ResponseWriter, message string) {
	common.RespondError(w, http.StatusUnauthorized,
		common.StandardErrorCodes.Unauthorized, message)
}
