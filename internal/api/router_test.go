package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodMuxDispatches(t *testing.T) {
	var called string
	handler := methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = "get"
		}),
		http.MethodPost: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = "post"
		}),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "post", called)
}

func TestMethodMuxRejectsUnknownMethod(t *testing.T) {
	handler := methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		http.MethodPost: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
	require.Equal(t, "GET, POST", res.Header().Get("Allow"))
}
