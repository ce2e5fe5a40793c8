package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/middleware"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

// Parâmetro de query que sobrescreve o alvo configurado de cada provedor
const (
	adsTargetParam = "customerId"
	ga4TargetParam = "propertyId"
	gscTargetParam = "siteUrl"
)

var notFoundMessages = map[domain.Source]string{
	domain.SourceAds: "Customer not found",
	domain.SourceGA4: "Property not found",
	domain.SourceGSC: "Site not found",
}

func GetAdsReport(service reporting.AdsReporter) http.Handler {
	return reportHandler(domain.SourceAds, adsTargetParam, func(ctx context.Context, req reporting.ReportRequest) (any, error) {
		return service.AdsReport(ctx, req)
	})
}

func GetGA4Report(service reporting.GA4Reporter) http.Handler {
	return reportHandler(domain.SourceGA4, ga4TargetParam, func(ctx context.Context, req reporting.ReportRequest) (any, error) {
		return service.GA4Report(ctx, req)
	})
}

func GetGSCReport(service reporting.GSCReporter) http.Handler {
	return reportHandler(domain.SourceGSC, gscTargetParam, func(ctx context.Context, req reporting.ReportRequest) (any, error) {
		return service.GSCReport(ctx, req)
	})
}

func reportHandler(source domain.Source, targetParam string, build func(context.Context, reporting.ReportRequest) (any, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context()).WithField("source", string(source))

		req, err := parseReportRequest(r, targetParam)
		if err != nil {
			logger.WithFields(log.Fields{
				"query": r.URL.RawQuery,
				"error": err.Error(),
			}).Warn("reports: invalid date parameter")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Invalid date", err.Error())
			return
		}

		logger.WithFields(log.Fields{
			"user_subject": req.Subject,
			"target":       req.Target,
		}).Info("reports: building report")

		startTime := time.Now()

		report, err := build(r.Context(), req)
		if err != nil {
			code, message, details := describeReportError(err, source)

			entry := logger.WithFields(log.Fields{"code": code, "error": err.Error()})
			if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
				entry.Error("reports: failed to build report")
			} else {
				entry.Warn("reports: report request rejected")
			}

			apiErrors.WriteError(w, code, message, details)
			return
		}

		logger.WithField("duration_ms", time.Since(startTime).Milliseconds()).Info("reports: report built")

		writeJSON(w, logger, http.StatusOK, report)
	})
}

// parseReportRequest lê startDate/endDate (YYYY-MM-DD, opcionais) e o alvo
func parseReportRequest(r *http.Request, targetParam string) (reporting.ReportRequest, error) {
	query := r.URL.Query()

	req := reporting.ReportRequest{
		Subject: middleware.SubjectFromContext(r.Context()),
		Target:  query.Get(targetParam),
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{name: "startDate", dst: &req.StartDate},
		{name: "endDate", dst: &req.EndDate},
	} {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}

		date, err := utils.ParseDate(raw)
		if err != nil {
			return req, fmt.Errorf("%s must be YYYY-MM-DD: %w", p.name, err)
		}
		*p.dst = date
	}

	return req, nil
}

// describeReportError traduz o erro do caso de uso para código, mensagem e
// detalhes da resposta
func describeReportError(err error, source domain.Source) (string, string, any) {
	code := reporting.CodeFor(err)
	details := err.Error()

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		code = reportErr.Code
		if reportErr.Details != "" {
			details = reportErr.Details
		}
	}

	switch code {
	case apiErrors.ErrNotAuthenticated:
		return code, "Not authenticated", details
	case apiErrors.ErrConfigurationIncomplete:
		return code, "Configuration incomplete", details
	case apiErrors.ErrInvalidFormat, apiErrors.ErrInvalidRequest:
		return code, "Invalid request", details
	case apiErrors.ErrUpstreamPermissionDenied:
		return code, "Access denied", details
	case apiErrors.ErrUpstreamNotFound:
		return code, notFoundMessages[source], details
	case apiErrors.ErrUpstreamQuotaExceeded:
		return code, "API Quota Exceeded", details
	default:
		return apiErrors.ErrExternalService, fmt.Sprintf("Failed to fetch %s data", source), details
	}
}
