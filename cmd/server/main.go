package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Vovarama1992/typhoon-chat/internal/ai"
	"github.com/Vovarama1992/typhoon-chat/internal/chatbot"
	"github.com/Vovarama1992/typhoon-chat/internal/config"
	"github.com/Vovarama1992/typhoon-chat/web"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- exchange log ---
	repo, closeRepo := openRepo(ctx, cfg.DatabaseURL)
	defer closeRepo()

	kb, err := chatbot.LoadKnowledgeBase(cfg.KnowledgeBasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("knowledge base")
	}
	if cfg.HFToken == "" {
		log.Warn().Msg("HF_TOKEN is not set, /chatbot will answer with a configuration hint")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- chatbot module wiring ---
	aiClient := ai.NewOpenAIClient(cfg.AI())
	chatbotService := chatbot.NewService(repo, aiClient, chatbot.ServiceConfig{
		Model:         aiClient.Model(),
		KnowledgeBase: kb,
		TokenSet:      cfg.HFToken != "",
	})
	chatbot.RegisterRoutes(r, chatbot.NewHandler(chatbotService))
	web.RegisterRoutes(r, cfg.Widget())

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", srv.Addr).Str("model", aiClient.Model()).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("stopped")
}

func openRepo(ctx context.Context, dsn string) (chatbot.Repo, func()) {
	if dsn == "" {
		log.Info().Msg("DATABASE_URL not set, exchange log disabled")
		return chatbot.NoopRepo{}, func() {}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db open error")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatal().Err(err).Msg("db ping error")
	}
	if err := chatbot.EnsureSchema(pingCtx, db); err != nil {
		log.Fatal().Err(err).Msg("db schema error")
	}

	return chatbot.NewRepo(db), func() { _ = db.Close() }
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
