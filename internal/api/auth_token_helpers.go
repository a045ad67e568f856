package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/trackora/trackora/internal/models"
)

const (
	authCookieName = "trackora_auth"
	contextUserKey = "current_user"
)

var errInvalidAuthToken = errors.New("invalid auth token")

func (handler *Handler) buildAuthToken(userID uint, ttl time.Duration, now time.Time) (string, error) {
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseAuthToken(tokenString string) (uint, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidAuthToken
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, errInvalidAuthToken
	}
	return claims.UserID, nil
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User, rememberMe bool) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}

	now := time.Now().In(handler.location)
	token, err := handler.buildAuthToken(user.ID, ttl, now)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Expires:  now.Add(ttl),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})
}

// authenticateRequest resolves the current user from the session cookie.
// Any failure reads as "not authenticated"; the caller decides how to
// degrade.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenString := c.Cookies(authCookieName)
	if tokenString == "" {
		return nil, errInvalidAuthToken
	}

	userID, err := handler.parseAuthToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := handler.authService.FindByID(userID)
	if err != nil {
		return nil, errInvalidAuthToken
	}
	return &user, nil
}
