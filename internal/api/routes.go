package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	protocols := api.Group("/protocols", handler.AuthRequired)
	protocols.Get("", handler.ListProtocols)
	protocols.Post("", handler.CreateProtocol)
	protocols.Delete("/:id", handler.DeleteProtocol)

	progress := api.Group("/progress", handler.AuthRequired)
	progress.Get("/today", handler.GetTodayProgress)
	progress.Post("/toggle/:protocolID", handler.ToggleCompletion)
	progress.Post("/reset", handler.ResetDay)
	progress.Get("/:date", handler.GetDayProgress)

	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)

	analytics := api.Group("/analytics", handler.AuthRequired)
	analytics.Get("/overview", handler.GetAnalyticsOverview)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
}
