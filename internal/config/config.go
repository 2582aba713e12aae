package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Vovarama1992/typhoon-chat/internal/ai"
	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

// Server holds everything cmd/server reads from the environment.
type Server struct {
	Port string `env:"PORT" envDefault:"5001"`

	HFToken   string `env:"HF_TOKEN"`
	HFBaseURL string `env:"HF_BASE_URL"`
	HFModel   string `env:"HF_MODEL"`

	KnowledgeBasePath string `env:"KB_PATH" envDefault:"fighter_jet_kb.txt"`
	DatabaseURL       string `env:"DATABASE_URL"`

	// browser page variant
	ShowAvatar bool `env:"WIDGET_SHOW_AVATAR" envDefault:"true"`
	AllowClear bool `env:"WIDGET_ALLOW_CLEAR" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadServer reads an optional .env file, then the process environment.
func LoadServer(files ...string) (Server, error) {
	// a missing .env is fine
	_ = godotenv.Load(files...)

	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, errors.Wrap(err, "parse environment")
	}

	cfg.HFToken = strings.TrimSpace(cfg.HFToken)
	cfg.HFModel = strings.TrimSpace(cfg.HFModel)
	if cfg.HFModel == "" {
		cfg.HFModel = ai.DefaultModel
	}
	if cfg.HFBaseURL == "" {
		cfg.HFBaseURL = ai.DefaultBaseURL
	}
	return cfg, nil
}

func (s Server) AI() ai.Config {
	return ai.Config{APIKey: s.HFToken, BaseURL: s.HFBaseURL, Model: s.HFModel}
}

func (s Server) Widget() widget.Config {
	cfg := widget.DefaultConfig()
	cfg.ShowAvatar = s.ShowAvatar
	cfg.AllowClear = s.AllowClear
	return cfg
}

// SetupLogging configures the global zerolog logger. format is "json" or
// "console"; w defaults to stderr.
func SetupLogging(level, format string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if w == nil {
		w = os.Stderr
	}
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
