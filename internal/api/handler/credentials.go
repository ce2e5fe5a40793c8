package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/middleware"
)

func SaveCredential(service credentialing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		source, ok := serviceParam(w, r, logger)
		if !ok {
			return
		}

		var req domain.SaveCredentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("credentials: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid request body", err.Error())
			return
		}

		status, err := service.Connect(r.Context(), middleware.SubjectFromContext(r.Context()), source, req)
		if err != nil {
			writeCredentialError(w, logger, source, err)
			return
		}

		logger.WithField("service", string(source)).Info("credentials: credential saved")
		writeJSON(w, logger, http.StatusOK, status)
	})
}

func GetCredentialStatus(service credentialing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		source, ok := serviceParam(w, r, logger)
		if !ok {
			return
		}

		status, err := service.Status(r.Context(), middleware.SubjectFromContext(r.Context()), source)
		if err != nil {
			writeCredentialError(w, logger, source, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, status)
	})
}

func DeleteCredential(service credentialing.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		source, ok := serviceParam(w, r, logger)
		if !ok {
			return
		}

		if err := service.Disconnect(r.Context(), middleware.SubjectFromContext(r.Context()), source); err != nil {
			writeCredentialError(w, logger, source, err)
			return
		}

		logger.WithField("service", string(source)).Info("credentials: credential removed")
		w.WriteHeader(http.StatusNoContent)
	})
}

func serviceParam(w http.ResponseWriter, r *http.Request, logger log.Logger) (domain.Source, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("service")

	source, err := domain.ParseSource(raw)
	if err != nil {
		logger.WithField("service", raw).Warn("credentials: unknown service")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Unknown service", err.Error())
		return "", false
	}

	return source, true
}

func writeCredentialError(w http.ResponseWriter, logger log.Logger, source domain.Source, err error) {
	entry := logger.WithFields(log.Fields{"service": string(source), "error": err.Error()})

	switch {
	case errors.Is(err, domain.ErrAuthenticationMissing):
		entry.Warn("credentials: request without subject")
		apiErrors.WriteError(w, apiErrors.ErrNotAuthenticated, "Not authenticated", err.Error())
	case errors.Is(err, domain.ErrInvalidCredential):
		entry.Warn("credentials: invalid credential")
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Invalid credential", err.Error())
	default:
		entry.Error("credentials: operation failed")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Failed to access credential store", nil)
	}
}
