package commands

import (
	"context"
	"fmt"

	"AuthKit/internal/config"
)

// statusCmd запрашивает /me с сохранённым токеном.
type statusCmd struct {
	name string
}

func (c statusCmd) Name() string      { return c.name }
func (statusCmd) Description() string { return "Show the signed-in account" }
func (c statusCmd) Usage() string     { return c.name }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, _ []string) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close()

	s.warnAnonymous()
	env, err := s.client.Get(ctx, "/me", true)
	if err != nil {
		return s.fail(err)
	}
	email, _ := env.Body["email"].(string)
	verified, _ := env.Body["is_verified"].(bool)
	msg := fmt.Sprintf("Signed in as %s", email)
	if !verified {
		msg += " (email not verified)"
	}
	s.note.Show(msg, true)
	return nil
}

func init() {
	RegisterCmd(statusCmd{name: "status"})
	RegisterCmd(statusCmd{name: "me"})
}
