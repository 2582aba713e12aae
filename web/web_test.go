package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

func TestRegisterRoutes_ServesPageAndScript(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, widget.DefaultConfig())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `id="chat"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/script.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/chatbot")
}

func TestRegisterRoutes_ServesWidgetConfig(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, widget.MinimalConfig())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "javascript")

	body := rec.Body.String()
	require.Contains(t, body, "window.TYPHOON_CONFIG = ")
	require.Contains(t, body, `"showAvatar":false`)
	require.Contains(t, body, `"allowClear":false`)
	require.Contains(t, body, `"placeholder":"Thinking…"`)
}
