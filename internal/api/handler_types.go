package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/trackora/trackora/internal/db"
	"github.com/trackora/trackora/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	loginLimiter *attemptLimiter

	repositories     *db.Repositories
	authService      *services.AuthService
	protocolService  *services.ProtocolService
	progressService  *services.ProgressService
	analyticsService *services.AnalyticsService
	dashboardService *services.DashboardService
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}
