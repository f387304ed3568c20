package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of a request.
type ErrorKind int

const (
	// KindTransport — сетевая ошибка: соединение, DNS, обрыв чтения тела.
	KindTransport ErrorKind = iota + 1
	// KindServer — сервер ответил не-2xx с разбираемым JSON.
	KindServer
	// KindMalformed — сервер ответил не-2xx, тело не является JSON.
	KindMalformed
	// KindStore — не удалось прочитать сохранённый токен; запрос не отправлялся.
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindMalformed:
		return "malformed"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Post for every failed request.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status, 0 for transport failures
	Message string // detail / message / stringified body
	Raw     string // response body as received (malformed responses)
	Err     error  // underlying transport or token store error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("request failed: %v", e.Err)
	case KindStore:
		return fmt.Sprintf("load access token: %v", e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func kindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func IsTransport(err error) bool { return kindOf(err) == KindTransport }
func IsServer(err error) bool    { return kindOf(err) == KindServer }
func IsMalformed(err error) bool { return kindOf(err) == KindMalformed }
func IsStore(err error) bool     { return kindOf(err) == KindStore }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
