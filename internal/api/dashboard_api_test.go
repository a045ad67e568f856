package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/trackora/trackora/internal/models"
	"github.com/trackora/trackora/internal/services"
)

type dashboardResponse struct {
	User      models.User             `json:"user"`
	Protocols []models.Protocol       `json:"protocols"`
	Today     models.DailyProgress    `json:"today"`
	Week      services.WeeklySnapshot `json:"week"`
	Analysis  string                  `json:"analysis"`
}

func TestDashboardHydratesEverything(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/progress/toggle/1", nil, authCookie), http.StatusOK, nil)

	var dashboard dashboardResponse
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/dashboard", nil, authCookie), http.StatusOK, &dashboard)

	if dashboard.User.XP != 15 {
		t.Fatalf("expected 15 XP on dashboard, got %d", dashboard.User.XP)
	}
	if len(dashboard.Protocols) != 4 {
		t.Fatalf("expected 4 protocols, got %d", len(dashboard.Protocols))
	}
	if len(dashboard.Today.Completed) != 1 {
		t.Fatalf("expected today's completion on dashboard, got %v", dashboard.Today.Completed)
	}
	if len(dashboard.Week.Days) != 7 {
		t.Fatalf("expected 7 week slots, got %d", len(dashboard.Week.Days))
	}

	sawToday := false
	for _, day := range dashboard.Week.Days {
		if day.IsToday {
			sawToday = true
			if day.CompletedCount != 1 {
				t.Fatalf("expected today's week slot to count 1 completion, got %d", day.CompletedCount)
			}
		}
	}
	if !sawToday {
		t.Fatal("expected one week slot flagged as today")
	}

	if !strings.Contains(dashboard.Analysis, "Good start!") {
		t.Fatalf("unexpected analysis text %q", dashboard.Analysis)
	}
}

func TestAnalyticsOverviewAfterActivity(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/progress/toggle/1", nil, authCookie), http.StatusOK, nil)
	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/progress/toggle/3", nil, authCookie), http.StatusOK, nil)

	var overview services.Overview
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/analytics/overview", nil, authCookie), http.StatusOK, &overview)

	if overview.TotalProtocols != 2 {
		t.Fatalf("expected 2 lifetime completions, got %d", overview.TotalProtocols)
	}
	if overview.CurrentStreak != 1 {
		t.Fatalf("expected streak 1, got %d", overview.CurrentStreak)
	}
	if overview.AvgCompletion != 100 {
		t.Fatalf("expected 100%% over the single recorded day, got %d%%", overview.AvgCompletion)
	}
	if overview.Recommendation != "Great start! Try to complete 3 protocols daily for best results." {
		t.Fatalf("unexpected recommendation %q", overview.Recommendation)
	}
	if overview.Monthly.Protocols != 2 {
		t.Fatalf("expected 2 completions in the monthly rollup, got %d", overview.Monthly.Protocols)
	}
	// The seeded catalog spans coding, learning and review.
	if len(overview.Categories) != 3 {
		t.Fatalf("expected 3 category breakdowns, got %d", len(overview.Categories))
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	var payload map[string]string
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/healthz", nil, ""), http.StatusOK, &payload)
	if payload["status"] != "ok" {
		t.Fatalf("unexpected health payload %v", payload)
	}
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	var payload map[string]string
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/unknown", nil, ""), http.StatusNotFound, &payload)
	if payload["error"] != "not found" {
		t.Fatalf("unexpected not-found payload %v", payload)
	}
}
