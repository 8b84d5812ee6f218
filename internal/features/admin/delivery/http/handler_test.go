package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-platform-backend/internal/common/middleware"
	authmodels "loyalty-platform-backend/internal/features/auth/models"
	authmemory "loyalty-platform-backend/internal/features/auth/repository/memory"
	authservice "loyalty-platform-backend/internal/features/auth/service"
	referralmemory "loyalty-platform-backend/internal/features/referral/repository/memory"
	referralservice "loyalty-platform-backend/internal/features/referral/service"
	usermodels "loyalty-platform-backend/internal/features/user/models"
	usermemory "loyalty-platform-backend/internal/features/user/repository/memory"
	userservice "loyalty-platform-backend/internal/features/user/service"
)

const (
	userToken  = "token-user"
	adminToken = "token-admin"
	superToken = "token-superadmin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := usermemory.NewMemoryRepository()
	users := userservice.NewUserService(userRepo, zerolog.Nop())
	referrals := referralservice.NewReferralService(referralmemory.NewMemoryRepository(), userRepo, zerolog.Nop())

	sessions := authmemory.NewMemoryRepository()
	auth := authservice.NewAuthService(sessions, users, zerolog.Nop())

	ctx := context.Background()
	_, err := users.CreateUser(ctx, &usermodels.CreateUserInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	// Sessions are seeded directly; role gates read the session, not the user row.
	for token, role := range map[string]string{
		userToken:  usermodels.RoleUser,
		adminToken: usermodels.RoleAdmin,
		superToken: usermodels.RoleSuperadmin,
	} {
		require.NoError(t, sessions.Save(ctx, &authmodels.Session{
			Token:     token,
			UserID:    1,
			Username:  "alice",
			Role:      role,
			CreatedAt: time.Now().UTC(),
		}))
	}

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.Auth(auth))
	NewAdminHandler(users, referrals).RegisterRoutes(api)

	return router
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutes_RoleGate(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"UsersNoToken", http.MethodGet, "/api/admin/users", "", http.StatusUnauthorized},
		{"UsersBadToken", http.MethodGet, "/api/admin/users", "bogus", http.StatusUnauthorized},
		{"UsersAsUser", http.MethodGet, "/api/admin/users", userToken, http.StatusForbidden},
		{"UsersAsAdmin", http.MethodGet, "/api/admin/users", adminToken, http.StatusOK},
		{"UsersAsSuperadmin", http.MethodGet, "/api/admin/users", superToken, http.StatusOK},
		{"ReferralsAsUser", http.MethodGet, "/api/admin/referrals", userToken, http.StatusForbidden},
		{"ReferralsAsAdmin", http.MethodGet, "/api/admin/referrals", adminToken, http.StatusOK},
		{"BulkSendAsAdmin", http.MethodPost, "/api/admin/bulk-send", adminToken, http.StatusForbidden},
		{"BulkSendAsSuperadmin", http.MethodPost, "/api/admin/bulk-send", superToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(router, tc.method, tc.path, tc.token)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAdminListUsers_OmitsPasswordHash(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/admin/users", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)

	user := users[0]
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")
	assert.Contains(t, user, "referral_code")
}

func TestAdminBulkSend_Response(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/admin/bulk-send", superToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Processing bulk transactions", body["status"])
}
