package commands

import (
	"context"

	"AuthKit/internal/config"
)

// postCmd отправляет позиционные аргументы как поля JSON-объекта
// и показывает message из ответа.
type postCmd struct {
	name   string
	desc   string
	path   string
	fields []string
	auth   bool
}

func (c postCmd) Name() string        { return c.name }
func (c postCmd) Description() string { return c.desc }

func (c postCmd) Usage() string {
	u := c.name
	for _, f := range c.fields {
		u += " <" + f + ">"
	}
	return u
}

func (c postCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < len(c.fields) {
		return ErrUsage
	}
	body := make(map[string]string, len(c.fields))
	for i, f := range c.fields {
		body[f] = args[i]
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.close()

	if c.auth {
		s.warnAnonymous()
	}
	env, err := s.client.Post(ctx, c.path, body, c.auth)
	if err != nil {
		return s.fail(err)
	}
	s.note.Show(messageOf(env), true)
	return nil
}

func init() {
	RegisterCmd(postCmd{
		name:   "register",
		desc:   "Create an account and email a verification code",
		path:   "/auth/register",
		fields: []string{"email", "password"},
	})
	RegisterCmd(postCmd{
		name:   "verify",
		desc:   "Confirm the email with the 6-digit code",
		path:   "/auth/verify",
		fields: []string{"email", "code"},
	})
	RegisterCmd(postCmd{
		name:   "resend",
		desc:   "Send a new verification code",
		path:   "/auth/resend-verify",
		fields: []string{"email"},
	})
	RegisterCmd(postCmd{
		name:   "forgot",
		desc:   "Email a password reset code",
		path:   "/auth/forgot",
		fields: []string{"email"},
	})
	RegisterCmd(postCmd{
		name:   "reset",
		desc:   "Set a new password with a reset code",
		path:   "/auth/reset",
		fields: []string{"email", "code", "new_password"},
	})
	RegisterCmd(postCmd{
		name: "passwd-request",
		desc: "Email a code to confirm a password change",
		path: "/auth/change-password/request",
		auth: true,
	})
	RegisterCmd(postCmd{
		name:   "passwd-confirm",
		desc:   "Change the password with the emailed code",
		path:   "/auth/change-password/confirm",
		fields: []string{"code", "current_password", "new_password"},
		auth:   true,
	})
	RegisterCmd(postCmd{
		name: "refresh",
		desc: "Ping the token refresh endpoint",
		path: "/auth/refresh",
		auth: true,
	})
}
