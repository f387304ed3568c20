package service

import (
	"context"
	"errors"
	"fmt"

	"AuthKit/internal/model"
	"AuthKit/internal/repo"
	"AuthKit/internal/security"
)

type mailTemplate struct {
	subject string
	action  string
}

var templates = map[model.CodePurpose]mailTemplate{
	model.PurposeVerify:         {"Verify your email", "verify your email"},
	model.PurposeReset:          {"Reset your password", "reset your password"},
	model.PurposeChangePassword: {"Confirm password change", "confirm your password change"},
}

func (s *AuthService) codeHTML(action, code string) string {
	return fmt.Sprintf(`<div style="font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif">
  <h2>AuthKit</h2>
  <p>Use this code to %s:</p>
  <p style="font-size:24px;font-weight:700;letter-spacing:4px">%s</p>
  <p>This code expires in %d minutes.</p>
</div>`, action, code, int(s.opts.CodeTTL.Minutes()))
}

// issueCode stores a fresh code for the purpose and mails it.
// Mail delivery failures are logged only.
func (s *AuthService) issueCode(ctx context.Context, user *model.User, purpose model.CodePurpose) error {
	code, err := security.MakeCode()
	if err != nil {
		return err
	}
	vc := &model.VerificationCode{
		UserID:    user.ID,
		Purpose:   purpose,
		CodeHash:  security.HashCode(code),
		ExpiresAt: s.now().Add(s.opts.CodeTTL),
	}
	if err := s.codes.CreateCode(ctx, vc); err != nil {
		return fmt.Errorf("create code: %w", err)
	}
	if s.opts.DebugCodes {
		s.logger.Debugw("email code", "email", user.Email, "purpose", purpose, "code", code)
	}
	tpl := templates[purpose]
	if err := s.mailer.Send(ctx, user.Email, tpl.subject, s.codeHTML(tpl.action, code)); err != nil {
		s.logger.Errorw("send email failed", "email", user.Email, "purpose", purpose, "error", err)
	}
	return nil
}

// validateCode checks the newest unconsumed code and consumes it on match.
// A mismatch counts as an attempt; a code used concurrently counts as gone.
func (s *AuthService) validateCode(ctx context.Context, user *model.User, purpose model.CodePurpose, code string) error {
	vc, err := s.codes.LatestActiveCode(ctx, user.ID, purpose)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNoActiveCode
	}
	if err != nil {
		return fmt.Errorf("get code: %w", err)
	}
	if vc.ExpiresAt.Before(s.now()) {
		return ErrCodeExpired
	}
	if vc.Attempts >= s.opts.MaxAttempts {
		return ErrTooManyAttempts
	}
	if vc.CodeHash != security.HashCode(code) {
		// счётчик увеличивается одним UPDATE, параллельные попытки не теряются
		counted, err := s.codes.AddAttempt(ctx, vc.ID, s.opts.MaxAttempts)
		if err != nil {
			return fmt.Errorf("count attempt: %w", err)
		}
		if !counted {
			return ErrTooManyAttempts
		}
		return ErrInvalidCode
	}
	consumed, err := s.codes.ConsumeCode(ctx, vc.ID)
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if !consumed {
		return ErrNoActiveCode
	}
	return nil
}
