package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos ao dashboard
const (
	// Autenticação
	ErrNotAuthenticated = "AUTH_001" // Sem sessão ou sem credencial para o serviço
	ErrInvalidToken     = "AUTH_002" // Token de sessão inválido

	// Validação e configuração
	ErrInvalidRequest          = "VAL_001" // Requisição inválida
	ErrMissingRequiredData     = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat           = "VAL_003" // Formato de dados inválido
	ErrConfigurationIncomplete = "VAL_004" // Client ID, secret, redirect ou propriedade ausentes

	// Provedores externos
	ErrUpstreamPermissionDenied = "UPS_001" // 403 do provedor
	ErrUpstreamNotFound         = "UPS_002" // Propriedade, cliente ou site inexistente
	ErrUpstreamQuotaExceeded    = "UPS_003" // Cota da API esgotada

	// Roteamento
	ErrRouteNotFound    = "RTE_001" // Rota inexistente
	ErrMethodNotAllowed = "RTE_002" // Método não suportado na rota

	// Servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro desconhecido em serviço externo
)

var httpStatusMap = map[string]int{
	ErrNotAuthenticated:         http.StatusUnauthorized,
	ErrInvalidToken:             http.StatusUnauthorized,
	ErrInvalidRequest:           http.StatusBadRequest,
	ErrMissingRequiredData:      http.StatusBadRequest,
	ErrInvalidFormat:            http.StatusBadRequest,
	ErrConfigurationIncomplete:  http.StatusBadRequest,
	ErrUpstreamPermissionDenied: http.StatusForbidden,
	ErrUpstreamNotFound:         http.StatusNotFound,
	ErrUpstreamQuotaExceeded:    http.StatusTooManyRequests,
	ErrRouteNotFound:            http.StatusNotFound,
	ErrMethodNotAllowed:         http.StatusMethodNotAllowed,
	ErrInternalServer:           http.StatusInternalServerError,
	ErrDatabaseOperation:        http.StatusInternalServerError,
	ErrExternalService:          http.StatusInternalServerError,
}

// APIError é o corpo de erro consumido pelo dashboard
type APIError struct {
	Error   string `json:"error"`             // Mensagem curta exibida ao usuário
	Details any    `json:"details,omitempty"` // Detalhes técnicos (opcional)
	Code    string `json:"code"`              // Código de erro para o cliente
}

// StatusFor devolve o status HTTP associado a um código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Error:   message,
		Details: details,
		Code:    code,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}
