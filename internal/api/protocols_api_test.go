package api

import (
	"net/http"
	"testing"

	"github.com/trackora/trackora/internal/models"
)

func TestCreateProtocolDerivesXP(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	request := jsonRequest(t, http.MethodPost, "/api/protocols", map[string]any{
		"title":    "Write Design Doc",
		"category": "planning",
		"time":     40,
	}, authCookie)

	var created models.Protocol
	doJSON(t, app, request, http.StatusCreated, &created)
	if created.XP != 8 {
		t.Fatalf("expected derived XP 8 for 40 minutes, got %d", created.XP)
	}
	if created.Priority != models.PriorityMedium {
		t.Fatalf("expected default medium priority, got %q", created.Priority)
	}
	if created.IsDefault {
		t.Fatal("expected user-created protocol to not be flagged as default")
	}
}

func TestCreateProtocolValidation(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing title", payload: map[string]any{"category": "coding", "time": 20}},
		{name: "bad category", payload: map[string]any{"title": "X", "category": "gaming", "time": 20}},
		{name: "zero time", payload: map[string]any{"title": "X", "category": "coding", "time": 0}},
		{name: "bad priority", payload: map[string]any{"title": "X", "category": "coding", "time": 20, "priority": "urgent"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			request := jsonRequest(t, http.MethodPost, "/api/protocols", testCase.payload, authCookie)
			doJSON(t, app, request, http.StatusBadRequest, nil)
		})
	}
}

func TestListProtocolsCategoryFilter(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	var coding []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols?category=coding", nil, authCookie), http.StatusOK, &coding)
	if len(coding) != 1 || coding[0].Title != "Focused Coding Session" {
		t.Fatalf("unexpected coding protocols %#v", coding)
	}

	var review []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols?category=review", nil, authCookie), http.StatusOK, &review)
	if len(review) != 2 {
		t.Fatalf("expected 2 review protocols, got %d", len(review))
	}
}

func TestListProtocolsSearch(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	var found []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols?q=REFLECTION", nil, authCookie), http.StatusOK, &found)
	if len(found) != 1 || found[0].Title != "Evening Reflection" {
		t.Fatalf("unexpected search result %#v", found)
	}

	// Search takes precedence over the category filter.
	var both []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols?q=reflection&category=coding", nil, authCookie), http.StatusOK, &both)
	if len(both) != 1 || both[0].Title != "Evening Reflection" {
		t.Fatalf("expected search to win over category, got %#v", both)
	}
}

func TestDeleteProtocol(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	doJSON(t, app, jsonRequest(t, http.MethodDelete, "/api/protocols/1", nil, authCookie), http.StatusNoContent, nil)

	var protocols []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols", nil, authCookie), http.StatusOK, &protocols)
	if len(protocols) != 3 {
		t.Fatalf("expected 3 protocols after deletion, got %d", len(protocols))
	}

	// Deleting again is a no-op.
	doJSON(t, app, jsonRequest(t, http.MethodDelete, "/api/protocols/1", nil, authCookie), http.StatusNoContent, nil)
}

func TestDeletedProtocolCannotBeToggled(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/progress/toggle/1", nil, authCookie), http.StatusOK, nil)
	doJSON(t, app, jsonRequest(t, http.MethodDelete, "/api/protocols/1", nil, authCookie), http.StatusNoContent, nil)

	// Toggling the deleted protocol is rejected and the stale completion
	// stays recorded in the ledger.
	doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/progress/toggle/1", nil, authCookie), http.StatusNotFound, nil)

	var today models.DailyProgress
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/progress/today", nil, authCookie), http.StatusOK, &today)
	if len(today.Completed) != 1 || today.Completed[0] != 1 {
		t.Fatalf("expected stale completion to remain, got %v", today.Completed)
	}
}

func TestProtocolsAreScopedPerUser(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	firstCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")
	secondCookie := registerTestUser(t, app, "Other", "other@example.com", "secret2")

	request := jsonRequest(t, http.MethodPost, "/api/protocols", map[string]any{
		"title":    "Pair Programming",
		"category": "coding",
		"time":     60,
	}, firstCookie)
	doJSON(t, app, request, http.StatusCreated, nil)

	var secondCatalog []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols", nil, secondCookie), http.StatusOK, &secondCatalog)
	if len(secondCatalog) != 4 {
		t.Fatalf("expected second account to only see its own 4 seeded protocols, got %d", len(secondCatalog))
	}
}
