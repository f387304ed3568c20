package commands

import (
	"errors"
	"fmt"

	"AuthKit/internal/cli/api"
	"AuthKit/internal/cli/bootstrap"
	"AuthKit/internal/cli/notify"
	"AuthKit/internal/cli/repo"
	"AuthKit/internal/config"

	"go.uber.org/zap"
)

// session — всё, что нужно команде для одного запроса к серверу.
type session struct {
	client *api.Client
	tokens repo.TokenStore
	note   *notify.Notifier
	nav    notify.Navigator
	logger *zap.SugaredLogger
	close  func() error
}

func newLogger(cfg *config.Config) *zap.SugaredLogger {
	if !cfg.Verbose {
		return zap.NewNop().Sugar()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func newSession(cfg *config.Config) (*session, error) {
	tokens, closeStore, err := bootstrap.OpenTokenStore(cfg)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	return &session{
		client: api.NewClient(cfg.ServerURL, tokens, api.WithLogger(logger)),
		tokens: tokens,
		note:   notify.NewNotifier(Out),
		nav:    &notify.TerminalNavigator{Out: Out},
		logger: logger,
		close: func() error {
			_ = logger.Sync()
			return closeStore()
		},
	}, nil
}

// fail shows err as an error banner; the dispatcher then exits with 1.
func (s *session) fail(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindMalformed {
		s.logger.Debugw("malformed error response", "status", apiErr.Status, "raw", apiErr.Raw)
	}
	s.note.Show(err.Error(), false)
	return errReported
}

// warnAnonymous prints a hint when an authenticated call has no stored token.
func (s *session) warnAnonymous() {
	tok, err := s.tokens.Load()
	if err == nil && tok == "" {
		fmt.Fprintln(Out, "no stored access token; sending request anonymously (run login first)")
	}
}

// messageOf returns the human-readable part of a success response.
func messageOf(env *api.Envelope) string {
	if env.Message != "" {
		return env.Message
	}
	return "OK"
}
