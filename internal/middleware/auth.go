// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// ClaimsKey is the context key for the verified admin token claims.
	ClaimsKey contextKey = "claims"
)

// AdminClaims is the payload of an admin access token.
type AdminClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	// Type is "refresh" on refresh tokens, which never grant access.
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

var (
	errNoToken      = errors.New("missing bearer token")
	errRefreshToken = errors.New("refresh token used for access")
)

// RequireAdmin verifies an HS256 bearer token signed with secret and
// stores its claims in the request context. Requests without a valid,
// unexpired access token get 401. An empty secret rejects every request.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, errNoToken)
				return
			}

			claims, err := parseAdminToken(secret, raw)
			if err != nil {
				slog.Debug("admin token rejected", "error", err, "path", r.URL.Path)
				writeAuthError(w, http.StatusUnauthorized, err)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromCtx extracts the verified admin claims from the request
// context. Returns nil outside RequireAdmin.
func ClaimsFromCtx(ctx context.Context) *AdminClaims {
	claims, _ := ctx.Value(ClaimsKey).(*AdminClaims)
	return claims
}

// parseAdminToken validates the signature, algorithm and expiry of raw.
func parseAdminToken(secret []byte, raw string) (*AdminClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("admin tokens are disabled: no signing secret")
	}

	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if claims.Type == "refresh" {
		return nil, errRefreshToken
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("token has no subject id")
	}
	return claims, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeAuthError(w http.ResponseWriter, status int, err error) {
	msg := "unauthorized"
	if errors.Is(err, errNoToken) {
		msg = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
