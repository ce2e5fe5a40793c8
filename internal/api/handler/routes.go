package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
)

func Healthcheck(dependencies map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(dependencies),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Reports(ads reporting.AdsReporter, ga4 reporting.GA4Reporter, gsc reporting.GSCReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ads/data",
			Method:  http.MethodGet,
			Handler: GetAdsReport(ads),
		},
		{
			Path:    "/v1/ga4/data",
			Method:  http.MethodGet,
			Handler: GetGA4Report(ga4),
		},
		{
			Path:    "/v1/gsc/data",
			Method:  http.MethodGet,
			Handler: GetGSCReport(gsc),
		},
	}
}

func Credentials(service credentialing.Manager) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/credentials/:service",
			Method:  http.MethodPut,
			Handler: SaveCredential(service),
		},
		{
			Path:    "/v1/credentials/:service",
			Method:  http.MethodGet,
			Handler: GetCredentialStatus(service),
		},
		{
			Path:    "/v1/credentials/:service",
			Method:  http.MethodDelete,
			Handler: DeleteCredential(service),
		},
	}
}
