package main

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/typhoon-chat/internal/config"
	"github.com/Vovarama1992/typhoon-chat/internal/endpoint"
	"github.com/Vovarama1992/typhoon-chat/internal/tui"
	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

type options struct {
	endpoint   string
	path       string
	avatar     bool
	allowClear bool
	minimal    bool
	timeout    time.Duration
	logLevel   string
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:          "chat",
		Short:        "Chat with Typhoon from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.endpoint, "endpoint", "http://localhost:5001", "base URL of the chat server")
	f.StringVar(&opts.path, "path", endpoint.DefaultPath, "path of the chat endpoint")
	f.BoolVar(&opts.avatar, "avatar", true, "show the bot avatar next to answers")
	f.BoolVar(&opts.allowClear, "allow-clear", true, "allow ctrl+l to clear the conversation")
	f.BoolVar(&opts.minimal, "minimal", false, "minimal widget: no avatar, no clear")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "per-request timeout, 0 for none")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file (the terminal belongs to the UI)")

	return cmd
}

func widgetConfig(opts options) widget.Config {
	if opts.minimal {
		return widget.MinimalConfig()
	}
	cfg := widget.DefaultConfig()
	cfg.ShowAvatar = opts.avatar
	cfg.AllowClear = opts.allowClear
	return cfg
}

func run(ctx context.Context, opts options) error {
	var logOut io.Writer = io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		logOut = f
	}
	if err := config.SetupLogging(opts.logLevel, "console", logOut); err != nil {
		return err
	}
	if opts.logFile == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	client := endpoint.New(opts.endpoint,
		endpoint.WithPath(opts.path),
		endpoint.WithTimeout(opts.timeout),
	)
	ctrl := widget.New(widgetConfig(opts), client)

	log.Info().Str("url", client.URL()).Msg("starting chat")

	p := tea.NewProgram(tui.New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run ui")
	}
	return nil
}
