// Package web embeds the browser rendition of the chat widget.
package web

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

//go:embed static
var staticFS embed.FS

// pageConfig is what the browser script reads from window.TYPHOON_CONFIG.
type pageConfig struct {
	ShowAvatar  bool   `json:"showAvatar"`
	AllowClear  bool   `json:"allowClear"`
	Greeting    string `json:"greeting"`
	Placeholder string `json:"placeholder"`
	Fallback    string `json:"fallback"`
	ErrorPrefix string `json:"errorPrefix"`
}

func newPageConfig(cfg widget.Config) pageConfig {
	return pageConfig{
		ShowAvatar:  cfg.ShowAvatar,
		AllowClear:  cfg.AllowClear,
		Greeting:    cfg.Greeting,
		Placeholder: cfg.PlaceholderText,
		Fallback:    cfg.FallbackText,
		ErrorPrefix: cfg.ErrorPrefix,
	}
}

// RegisterRoutes serves the page at /, its assets under /static/ and the
// widget variant at /config.js.
func RegisterRoutes(r chi.Router, cfg widget.Config) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	assets := http.FileServer(http.FS(sub))

	configJS, err := json.Marshal(newPageConfig(cfg))
	if err != nil {
		panic(err)
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFileFS(w, req, sub, "index.html")
	})
	r.Get("/config.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write([]byte("window.TYPHOON_CONFIG = " + string(configJS) + ";\n")); err != nil {
			log.Warn().Err(err).Str("component", "web").Msg("write config failed")
		}
	})
	r.Handle("/static/*", http.StripPrefix("/static/", assets))
}
