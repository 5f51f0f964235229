package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"main/middleware"
	"main/model"
	"main/services"

	"github.com/gin-gonic/gin"
)

type fakeUserStore struct {
	users          map[string]*model.User
	lastLoginCalls []string
}

func (f *fakeUserStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindUser(_ context.Context, userID string) (*model.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID string) error {
	f.lastLoginCalls = append(f.lastLoginCalls, userID)
	return nil
}

type fakeActivityRecorder struct {
	entries []*model.ActivityLog
}

func (f *fakeActivityRecorder) Record(_ context.Context, entry *model.ActivityLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

func newAuthFixture(t *testing.T) (*gin.Engine, *fakeUserStore, *fakeActivityRecorder, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := services.HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	store := &fakeUserStore{users: map[string]*model.User{
		"admin-id": {
			UserID:   "admin-id",
			Name:     "Admin User",
			Email:    "admin@dexpro.com",
			Password: hash,
			Role:     model.RoleAdmin,
			IsActive: true,
		},
		"inactive-id": {
			UserID:   "inactive-id",
			Email:    "gone@dexpro.com",
			Password: hash,
			Role:     model.RoleEmployee,
			IsActive: false,
		},
	}}
	activity := &fakeActivityRecorder{}
	tokens := services.NewTokenService("test-secret", time.Hour)

	h := &AuthHandler{Tokens: tokens, Users: store, Activity: activity}

	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	protected := router.Group("/api/auth")
	protected.Use(middleware.AuthMiddleware(tokens, store))
	protected.GET("/verify", h.Verify)
	protected.POST("/logout", h.Logout)

	return router, store, activity, tokens
}

func postJSON(router *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	router, store, activity, _ := newAuthFixture(t)

	w := postJSON(router, "/api/auth/login",
		gin.H{"email": "admin@dexpro.com", "password": "admin123"}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var response struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID    string `json:"id"`
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Data.Token == "" {
		t.Error("Expected a token in the response")
	}
	if response.Data.User.Role != "Admin" {
		t.Errorf("Role = %q, want Admin", response.Data.User.Role)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Password material leaked into the login response")
	}

	if len(store.lastLoginCalls) != 1 || store.lastLoginCalls[0] != "admin-id" {
		t.Errorf("Expected last_login update for admin-id, got %v", store.lastLoginCalls)
	}
	if len(activity.entries) != 1 || activity.entries[0].Action != model.ActionLogin {
		t.Errorf("Expected a login activity entry, got %v", activity.entries)
	}
}

func TestLoginFailures(t *testing.T) {
	router, _, _, _ := newAuthFixture(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"Unknown Email", gin.H{"email": "nobody@dexpro.com", "password": "admin123"}},
		{"Wrong Password", gin.H{"email": "admin@dexpro.com", "password": "wrong-pass"}},
		{"Inactive Account", gin.H{"email": "gone@dexpro.com", "password": "admin123"}},
		{"Missing Password", gin.H{"email": "admin@dexpro.com"}},
		{"Bad Email Format", gin.H{"email": "not-an-email", "password": "admin123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/auth/login", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400 (body: %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestVerify(t *testing.T) {
	router, _, _, tokens := newAuthFixture(t)

	token, err := tokens.Issue("admin-id")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "admin@dexpro.com") {
		t.Error("Expected the caller's identity in the verify response")
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	router, _, _, _ := newAuthFixture(t)

	forged := services.NewTokenService("attacker-secret", time.Hour)
	token, _ := forged.Issue("admin-id")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", w.Code)
	}
}

func TestLogoutRecordsActivity(t *testing.T) {
	router, _, activity, tokens := newAuthFixture(t)

	token, _ := tokens.Issue("admin-id")
	w := postJSON(router, "/api/auth/logout", nil,
		map[string]string{"Authorization": "Bearer " + token})

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if len(activity.entries) != 1 || activity.entries[0].Action != model.ActionLogout {
		t.Errorf("Expected a logout activity entry, got %v", activity.entries)
	}
}
