package api

import (
	"net/http"
	"testing"

	"github.com/trackora/trackora/internal/models"
)

func TestRegisterSeedsCatalogAndTodayRecord(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	var protocols []models.Protocol
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/protocols", nil, authCookie), http.StatusOK, &protocols)
	if len(protocols) != 4 {
		t.Fatalf("expected 4 seeded protocols, got %d", len(protocols))
	}
	if protocols[0].Title != "Morning Code Review" {
		t.Fatalf("unexpected first seeded protocol %q", protocols[0].Title)
	}
	for _, protocol := range protocols {
		if !protocol.IsDefault {
			t.Fatalf("expected protocol %q to be flagged as default", protocol.Title)
		}
	}

	var today models.DailyProgress
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/progress/today", nil, authCookie), http.StatusOK, &today)
	if today.ID == 0 {
		t.Fatal("expected today's record to be persisted on registration")
	}
	if len(today.Completed) != 0 || today.TotalTime != 0 || today.XPEarned != 0 {
		t.Fatalf("expected empty seeded record, got %#v", today)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Other",
		"email":    "Dev@Example.com",
		"password": "secret2",
	}, "")
	var payload map[string]string
	doJSON(t, app, request, http.StatusConflict, &payload)
	if payload["error"] != "email already registered" {
		t.Fatalf("unexpected error message %q", payload["error"])
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{
			name:    "missing name",
			payload: map[string]any{"email": "dev@example.com", "password": "secret1"},
			want:    "name is required",
		},
		{
			name:    "bad email",
			payload: map[string]any{"name": "Dev", "email": "nope", "password": "secret1"},
			want:    "invalid email address",
		},
		{
			name:    "short password",
			payload: map[string]any{"name": "Dev", "email": "dev@example.com", "password": "123"},
			want:    "password must be at least 6 characters",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			request := jsonRequest(t, http.MethodPost, "/api/auth/register", testCase.payload, "")
			var payload map[string]string
			doJSON(t, app, request, http.StatusBadRequest, &payload)
			if payload["error"] != testCase.want {
				t.Fatalf("expected error %q, got %q", testCase.want, payload["error"])
			}
		})
	}
}

func TestLoginAndMe(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "DEV@example.com",
		"password": "secret1",
	}, "")
	var loggedIn models.User
	response := doJSON(t, app, request, http.StatusOK, &loggedIn)
	if loggedIn.Email != "dev@example.com" {
		t.Fatalf("expected normalized email in response, got %q", loggedIn.Email)
	}

	authCookie := extractAuthCookie(t, response)
	var me models.User
	doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/auth/me", nil, authCookie), http.StatusOK, &me)
	if me.ID != loggedIn.ID || me.Name != "Dev" {
		t.Fatalf("unexpected me response %#v", me)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "dev@example.com",
		"password": "wrong-password",
	}, "")
	var payload map[string]string
	doJSON(t, app, request, http.StatusUnauthorized, &payload)
	if payload["error"] != "invalid credentials" {
		t.Fatalf("unexpected error message %q", payload["error"])
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	authCookie := registerTestUser(t, app, "Dev", "dev@example.com", "secret1")

	response := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/logout", nil, authCookie), http.StatusOK, nil)

	cleared := false
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected logout to clear the auth cookie")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	paths := []string{
		"/api/auth/me",
		"/api/protocols",
		"/api/progress/today",
		"/api/dashboard",
		"/api/analytics/overview",
		"/api/export/json",
	}
	for _, path := range paths {
		doJSON(t, app, jsonRequest(t, http.MethodGet, path, nil, ""), http.StatusUnauthorized, nil)
	}
}

func TestAuthCookieSecureFlag(t *testing.T) {
	t.Parallel()

	app, _ := newTestAppWithCookieSecure(t, true)

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Dev",
		"email":    "dev@example.com",
		"password": "secret1",
	}, "")
	response := doJSON(t, app, request, http.StatusCreated, nil)

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName {
			if !cookie.Secure {
				t.Fatal("expected secure auth cookie")
			}
			if !cookie.HttpOnly {
				t.Fatal("expected http-only auth cookie")
			}
			return
		}
	}
	t.Fatal("auth cookie is missing in register response")
}
