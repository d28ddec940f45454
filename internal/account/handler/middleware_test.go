package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therishabh/chai-backend/internal/account/service"
	"github.com/therishabh/chai-backend/pkg/constant"
)

func TestRequireAuth(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		f := newFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "unauthorized request", decodeEnvelope(t, resp).Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: "not-a-jwt"})

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid access token", decodeEnvelope(t, resp).Message)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		user := f.storedUser(t, "p1")

		expiredIssuer := service.NewTokenService("access-secret", "refresh-secret", -1, 1440)
		accessToken, err := expiredIssuer.IssueAccess(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		f := newFixture(t)
		user := f.storedUser(t, "p1")

		refreshToken, err := f.tokens.IssueRefresh(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: refreshToken})

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("account vanished", func(t *testing.T) {
		f := newFixture(t)
		user := f.storedUser(t, "p1")

		accessToken, err := f.tokens.IssueAccess(user)
		require.NoError(t, err)

		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid access token", decodeEnvelope(t, resp).Message)
	})

	t.Run("valid cookie attaches sanitized user", func(t *testing.T) {
		f := newFixture(t)
		user := f.storedUser(t, "p1")
		user.RefreshToken = "stored-refresh"

		accessToken, err := f.tokens.IssueAccess(user)
		require.NoError(t, err)

		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)
		req.AddCookie(&http.Cookie{Name: constant.AccessTokenCookie, Value: accessToken})

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "alice", env.Data["username"])
		_, hasRefresh := env.Data["refreshToken"]
		assert.False(t, hasRefresh)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		f := newFixture(t)
		user := f.storedUser(t, "p1")

		accessToken, err := f.tokens.IssueAccess(user)
		require.NoError(t, err)

		f.repo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/info", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)

		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
