package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"main/model"

	"github.com/gin-gonic/gin"
)

func rolesTestRouter(user *model.User, allowed ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			if user != nil {
				c.Set("user", user.Sanitized())
				c.Set("user_id", user.UserID)
			}
		},
		RequireRoles(allowed...),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name           string
		user           *model.User
		allowed        []model.Role
		expectedStatus int
	}{
		{
			name:           "Allowed Role",
			user:           &model.User{UserID: "u1", Role: model.RoleAdmin},
			allowed:        []model.Role{model.RoleAdmin, model.RoleTeamLead},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Stored Variant Matches",
			user:           &model.User{UserID: "u1", Role: model.Role("team lead")},
			allowed:        []model.Role{model.RoleTeamLead},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Forbidden Role",
			user:           &model.User{UserID: "u1", Role: model.RoleEmployee},
			allowed:        []model.Role{model.RoleAdmin, model.RoleTeamLead},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "No User In Context",
			user:           nil,
			allowed:        []model.Role{model.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := rolesTestRouter(tt.user, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}
