package api

import (
	"github.com/trackora/trackora/internal/db"
	"github.com/trackora/trackora/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.protocolService = services.NewProtocolService(handler.repositories.Protocols)
	handler.progressService = services.NewProgressService(handler.repositories.Progress, handler.repositories.Protocols)
	handler.analyticsService = services.NewAnalyticsService(handler.repositories.Progress, handler.repositories.Protocols)
	handler.dashboardService = services.NewDashboardService(handler.repositories.Progress)
	return handler
}
