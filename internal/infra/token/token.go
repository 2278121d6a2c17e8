package token

import (
	"errors"
	"fmt"
	"time"

	"blog-api/config"
	"blog-api/internal/domain/access"
	"blog-api/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

const TTL = 24 * time.Hour

var ErrInvalid = errors.New("invalid or expired token")

// Issue signs an HS256 token carrying the user's id, email and role.
func Issue(user users.User) (string, error) {
	key := []byte(config.JWT_SECRET)
	if len(key) == 0 {
		return "", errors.New("JWT secret not configured")
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(TTL).Unix(),
	})
	return t.SignedString(key)
}

// Parse verifies raw and returns the identity it carries.
func Parse(raw string) (access.Identity, error) {
	key := []byte(config.JWT_SECRET)
	if len(key) == 0 {
		return access.Anonymous, errors.New("JWT secret not configured")
	}

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return access.Anonymous, ErrInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return access.Anonymous, ErrInvalid
	}

	id := access.Identity{Authenticated: true}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	if userID, ok := claims["user_id"].(float64); ok {
		id.UserID = uint(userID)
	}
	return id, nil
}
