package reporting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
)

// Erros específicos do contexto de relatórios
var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrTargetRequired   = errors.New("report target is required")
	ErrInvalidTarget    = errors.New("invalid report target")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error         // Erro base
	Code    string        // Código de erro para API
	Source  domain.Source // Provedor envolvido
	Details string        // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, source domain.Source, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Source:  source,
		Details: details,
	}
}

// wrapError classifica err pela taxonomia de domínio. Um ReportError já
// classificado é devolvido como está.
func wrapError(err error, source domain.Source) error {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr
	}

	details := ""
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		details = upstream.Message
	}

	return NewReportError(err, CodeFor(err), source, details)
}

// CodeFor mapeia um erro de domínio para o código da API
func CodeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthenticationMissing):
		return apiErrors.ErrNotAuthenticated
	case errors.Is(err, domain.ErrConfigurationIncomplete), errors.Is(err, ErrTargetRequired):
		return apiErrors.ErrConfigurationIncomplete
	case errors.Is(err, ErrInvalidTarget):
		return apiErrors.ErrInvalidFormat
	case errors.Is(err, ErrInvalidDateRange):
		return apiErrors.ErrInvalidRequest
	case errors.Is(err, domain.ErrUpstreamPermissionDenied):
		return apiErrors.ErrUpstreamPermissionDenied
	case errors.Is(err, domain.ErrUpstreamNotFound):
		return apiErrors.ErrUpstreamNotFound
	case errors.Is(err, domain.ErrUpstreamQuotaExceeded):
		return apiErrors.ErrUpstreamQuotaExceeded
	default:
		return apiErrors.ErrExternalService
	}
}
