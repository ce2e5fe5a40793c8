package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Taxonomia de erros do pipeline de relatórios
var (
	ErrAuthenticationMissing    = errors.New("not authenticated")
	ErrConfigurationIncomplete  = errors.New("configuration incomplete")
	ErrUpstreamPermissionDenied = errors.New("upstream permission denied")
	ErrUpstreamNotFound         = errors.New("upstream resource not found")
	ErrUpstreamQuotaExceeded    = errors.New("upstream quota exceeded")
	ErrUpstreamUnknown          = errors.New("upstream error")
)

// UpstreamError carrega o status e a mensagem devolvidos pelo provedor
type UpstreamError struct {
	Source  Source
	Status  int
	Message string
	Err     error
}

// NewUpstreamError classifica a falha pelo status HTTP do provedor
func NewUpstreamError(source Source, status int, message string) *UpstreamError {
	return &UpstreamError{
		Source:  source,
		Status:  status,
		Message: message,
		Err:     classifyStatus(status),
	}
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Source, e.Err.Error(), e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Source, e.Err.Error(), e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func classifyStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrAuthenticationMissing
	case http.StatusForbidden:
		return ErrUpstreamPermissionDenied
	case http.StatusNotFound:
		return ErrUpstreamNotFound
	case http.StatusTooManyRequests:
		return ErrUpstreamQuotaExceeded
	default:
		return ErrUpstreamUnknown
	}
}
