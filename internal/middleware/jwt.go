package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/utils"
)

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID uuid.UUID, username, email string, cfg *config.JWTConfig) (string, error) {
	claims := JWTClaims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// bearerClaims extracts and validates the Bearer token from the
// Authorization header. Returns nil when the header is absent or invalid.
func bearerClaims(r *http.Request, cfg *config.JWTConfig) *JWTClaims {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil
	}

	claims, err := ValidateToken(tokenParts[1], cfg)
	if err != nil {
		return nil
	}
	return claims
}

func withUserContext(r *http.Request, claims *JWTClaims) *http.Request {
	ctx := context.WithValue(r.Context(), utils.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, utils.ContextKeyUsername, claims.Username)
	ctx = context.WithValue(ctx, utils.ContextKeyEmail, claims.Email)
	return r.WithContext(ctx)
}

// AuthMiddleware validates JWT tokens in the Authorization header
func AuthMiddleware(next http.HandlerFunc, cfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authorization header required")
			return
		}

		claims := bearerClaims(r, cfg)
		if claims == nil {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			return
		}

		next.ServeHTTP(w, withUserContext(r, claims))
	}
}

// OptionalAuthMiddleware populates the user context when a valid token is
// present but lets anonymous requests through. Used by the public listing
// and detail endpoints, which derive isLiked only for signed-in requesters.
func OptionalAuthMiddleware(next http.HandlerFunc, cfg *config.JWTConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims := bearerClaims(r, cfg); claims != nil {
			r = withUserContext(r, claims)
		}
		next.ServeHTTP(w, r)
	}
}
