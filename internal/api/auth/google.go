package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"blog-api/config"
	"blog-api/database"
	"blog-api/internal/domain/users"
	"blog-api/internal/infra/token"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	stateCookie  = "oauth_state"
	googleIssuer = "https://accounts.google.com"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

var (
	providerMu sync.Mutex
	provider   *oidc.Provider
)

// googleProvider discovers Google's OIDC configuration on first use. A failed
// discovery is retried on the next login.
func googleProvider(ctx context.Context) (*oidc.Provider, error) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if provider != nil {
		return provider, nil
	}
	p, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}
	provider = p
	return p, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	secure := strings.HasPrefix(config.GOOGLE_REDIRECT_URL, "https://")
	c.SetCookie(stateCookie, state, 300, "/", "", secure, true)

	c.Redirect(http.StatusFound, googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	ctx := c.Request.Context()
	tok, err := googleOAuthConfig().Exchange(ctx, code)
	if err != nil {
		slog.Warn("google code exchange failed", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := findOrCreateGoogleUser(database.DB.WithContext(ctx), claims)
	if err != nil {
		slog.Error("google user upsert failed", "email", claims.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	tokenString, err := token.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func verifyGoogleIDToken(ctx context.Context, rawIDToken string) (*googleIDClaims, error) {
	p, err := googleProvider(ctx)
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	idToken, err := p.Verifier(&oidc.Config{ClientID: config.GOOGLE_CLIENT_ID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	if !claims.EmailVerified {
		return nil, errors.New("google account email is not verified")
	}
	return &claims, nil
}

// findOrCreateGoogleUser matches on google_sub, then on email, and creates
// the account otherwise. Emails listed in ADMIN_EMAILS are promoted to admin.
func findOrCreateGoogleUser(db *gorm.DB, gc *googleIDClaims) (users.User, error) {
	email := strings.ToLower(gc.Email)
	role := users.RoleUser
	if config.IsAdminEmail(email) {
		role = users.RoleAdmin
	}

	var user users.User
	err := db.Where("google_sub = ?", gc.Sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = db.Where("email = ?", email).First(&user).Error
	}

	switch {
	case err == nil:
		updates := map[string]interface{}{}
		if user.GoogleSub == nil {
			updates["google_sub"] = gc.Sub
		}
		if role == users.RoleAdmin && user.Role != users.RoleAdmin {
			updates["role"] = users.RoleAdmin
		}
		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				return users.User{}, err
			}
			if user.GoogleSub == nil {
				sub := gc.Sub
				user.GoogleSub = &sub
			}
			if _, ok := updates["role"]; ok {
				user.Role = users.RoleAdmin
			}
		}
		return user, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := gc.Sub
		user = users.User{
			Email:        email,
			AuthProvider: users.ProviderGoogle,
			GoogleSub:    &sub,
			Role:         role,
		}
		if err := db.Create(&user).Error; err != nil {
			return users.User{}, err
		}
		slog.Info("google user created", "email", email, "role", role)
		return user, nil

	default:
		return users.User{}, err
	}
}
