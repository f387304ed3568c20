package service

import (
	"errors"
	"net/http"
)

// Error — ошибка бизнес-логики с HTTP-статусом для ответа клиенту.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func newError(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

var (
	ErrInvalidEmail       = newError(http.StatusUnprocessableEntity, "Invalid email address.")
	ErrPasswordTooShort   = newError(http.StatusBadRequest, "Password must be at least 8 characters.")
	ErrEmailRegistered    = newError(http.StatusBadRequest, "Email already registered.")
	ErrUserNotFound       = newError(http.StatusNotFound, "User not found.")
	ErrInvalidCredentials = newError(http.StatusBadRequest, "Invalid credentials.")
	ErrNotVerified        = newError(http.StatusForbidden, "Email not verified.")
	ErrNoActiveCode       = newError(http.StatusBadRequest, "No active code. Request a new one.")
	ErrCodeExpired        = newError(http.StatusBadRequest, "Code expired.")
	ErrTooManyAttempts    = newError(http.StatusTooManyRequests, "Too many attempts.")
	ErrInvalidCode        = newError(http.StatusBadRequest, "Invalid code.")
	ErrCurrentPassword    = newError(http.StatusBadRequest, "Current password incorrect.")

	ErrNotAuthenticated = newError(http.StatusUnauthorized, "Not authenticated")
	ErrInvalidToken     = newError(http.StatusUnauthorized, "Invalid token")
	ErrUnknownSubject   = newError(http.StatusUnauthorized, "User not found")
)

// StatusOf maps err to an HTTP status; unknown errors are 500.
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}
