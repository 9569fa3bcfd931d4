package client

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrEndpointNotFound   = errors.New("endpoint not found")
	ErrEndpointBlocked    = errors.New("endpoint temporarily blocked")
	ErrUnavailable        = errors.New("server unavailable")
	ErrRequestFailed      = errors.New("request failed")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// User-facing messages.
const (
	MsgInvalidCredentials = "Senha inválida."
	MsgSessionExpired     = "Sessão expirada. Faça login novamente."
	MsgEndpointNotFound   = "Endpoint não encontrado (404). Verifique a URL da API configurada."
	MsgEndpointBlocked    = "Endpoint bloqueado temporariamente após falhas repetidas. Verifique a configuração da API."
	MsgUnavailable        = "Não foi possível se conectar ao servidor."
	MsgRequestFailed      = "Não foi possível completar a requisição."
	MsgUnexpected         = "Resposta inesperada do servidor."
)

// APIError describes a failed call. It matches its Kind with errors.Is, and
// the transport error, when there is one, as well.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Payload any

	Kind  error
	Cause error
}

// Error keeps Message first; the transport error, if any, follows it.
func (e *APIError) Error() string {
	s := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	if e.Status > 0 {
		s = fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Unexpected builds the error a service returns when a 2xx payload holds no
// usable entity.
func Unexpected(method, path string, status int, payload any) *APIError {
	return &APIError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: MsgUnexpected,
		Payload: payload,
		Kind:    ErrUnexpectedResponse,
	}
}

// Message returns the text to show for err: the APIError message when err
// carries one, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
