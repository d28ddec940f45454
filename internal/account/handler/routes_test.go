package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisteredRoutes(t *testing.T) {
	f := newFixture(t)

	expected := map[string]string{
		"/api/v1/users/register":          http.MethodPost,
		"/api/v1/users/login":             http.MethodPost,
		"/api/v1/users/refresh-token":     http.MethodPost,
		"/api/v1/users/logout":            http.MethodPost,
		"/api/v1/users/change-password":   http.MethodPost,
		"/api/v1/users/info":              http.MethodGet,
		"/api/v1/users/update-account":    http.MethodPatch,
		"/api/v1/users/update-avatar":     http.MethodPatch,
		"/api/v1/users/update-coverImage": http.MethodPatch,
	}

	registered := map[string]string{}
	for _, route := range f.app.GetRoutes() {
		if route.Method == http.MethodHead || route.Method == "USE" {
			continue
		}
		registered[route.Path] = route.Method
	}

	for path, method := range expected {
		assert.Equal(t, method, registered[path], "route %s", path)
	}
}
