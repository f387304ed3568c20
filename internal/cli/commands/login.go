package commands

import (
	"context"
	"fmt"

	"AuthKit/internal/cli/api"
	"AuthKit/internal/config"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the access token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

// Run: POST /auth/login → сохранить токен → баннер → переход.
func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close()

	env, err := s.client.Post(ctx, "/auth/login", LoginRequest{Email: args[0], Password: args[1]}, false)
	if err != nil {
		return s.fail(err)
	}
	if err := api.SaveToken(s.tokens, env); err != nil {
		return s.fail(fmt.Errorf("saving token: %w", err))
	}
	s.note.Show("Logged in successfully", true)
	s.nav.Goto(cfg.AfterLoginURL)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored access token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, _ []string) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.tokens.Clear(); err != nil {
		return s.fail(fmt.Errorf("clearing token: %w", err))
	}
	s.note.Show("Logged out", true)
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
