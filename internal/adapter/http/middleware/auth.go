package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims is the token payload issued at login. The userEmail claim doubles as
// the requester identity throughout the service.
type Claims struct {
	UserEmail string `json:"userEmail"`
	jwt.RegisteredClaims
}

// JWTAuth rejects requests without a valid bearer token and attaches the
// requester's email to the context. Handlers behind this middleware never see
// an unauthenticated request.
func JWTAuth(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization token is not provided", http.StatusUnauthorized)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("rejected invalid token", zap.String("path", r.URL.Path), zap.Error(err))
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			if claims.UserEmail == "" {
				http.Error(w, "token carries no identity", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), RequesterEmailCtxKey, claims.UserEmail)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequesterEmail extracts the identity attached by JWTAuth.
func RequesterEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(RequesterEmailCtxKey).(string)
	return email, ok && email != ""
}
