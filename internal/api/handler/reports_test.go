package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func authenticated(req *http.Request, subject string) *http.Request {
	claims := &domain.Claims{}
	claims.Subject = subject
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestGetGSCReport_Success(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockGSCReporter(ctrl)

	service.EXPECT().
		GSCReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req reporting.ReportRequest) (*domain.GSCReport, error) {
			assert.Equal(t, "user-1", req.Subject)
			assert.Equal(t, "sc-domain:example.com", req.Target)
			require.NotNil(t, req.StartDate)
			assert.Equal(t, "2024-01-01", req.StartDate.Format("2006-01-02"))
			assert.Nil(t, req.EndDate)

			return &domain.GSCReport{SiteURL: req.Target, Overview: domain.GSCOverview{TotalClicks: 42}}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/v1/gsc/data?startDate=2024-01-01&siteUrl=sc-domain:example.com", nil)
	rec := httptest.NewRecorder()

	GetGSCReport(service).ServeHTTP(rec, authenticated(req, "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body domain.GSCReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 42.0, body.Overview.TotalClicks)
}

func TestGetGA4Report_InvalidDate(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockGA4Reporter(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/v1/ga4/data?endDate=31-01-2024", nil)
	rec := httptest.NewRecorder()

	GetGA4Report(service).ServeHTTP(rec, authenticated(req, "user-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidFormat)
}

func TestGetAdsReport_Errors(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantCode    string
	}{
		{
			name:        "sem credencial",
			err:         reporting.NewReportError(domain.ErrAuthenticationMissing, apiErrors.ErrNotAuthenticated, domain.SourceAds, ""),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authenticated",
			wantCode:    apiErrors.ErrNotAuthenticated,
		},
		{
			name:        "configuração incompleta",
			err:         reporting.NewReportError(domain.ErrConfigurationIncomplete, apiErrors.ErrConfigurationIncomplete, domain.SourceAds, "ADS_DEVELOPER_TOKEN"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Configuration incomplete",
			wantCode:    apiErrors.ErrConfigurationIncomplete,
		},
		{
			name:        "permissão negada",
			err:         reporting.NewReportError(domain.ErrUpstreamPermissionDenied, apiErrors.ErrUpstreamPermissionDenied, domain.SourceAds, "caller does not have permission"),
			wantStatus:  http.StatusForbidden,
			wantMessage: "Access denied",
			wantCode:    apiErrors.ErrUpstreamPermissionDenied,
		},
		{
			name:        "cliente inexistente",
			err:         reporting.NewReportError(domain.ErrUpstreamNotFound, apiErrors.ErrUpstreamNotFound, domain.SourceAds, ""),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Customer not found",
			wantCode:    apiErrors.ErrUpstreamNotFound,
		},
		{
			name:        "cota",
			err:         domain.NewUpstreamError(domain.SourceAds, http.StatusTooManyRequests, "quota"),
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "API Quota Exceeded",
			wantCode:    apiErrors.ErrUpstreamQuotaExceeded,
		},
		{
			name:        "desconhecido",
			err:         domain.NewUpstreamError(domain.SourceAds, http.StatusBadGateway, "bad gateway"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to fetch ads data",
			wantCode:    apiErrors.ErrExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockAdsReporter(ctrl)
			service.EXPECT().AdsReport(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/v1/ads/data", nil)
			rec := httptest.NewRecorder()

			GetAdsReport(service).ServeHTTP(rec, authenticated(req, "user-1"))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body apiErrors.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestDescribeReportError_NotFoundPerSource(t *testing.T) {
	err := reporting.NewReportError(domain.ErrUpstreamNotFound, apiErrors.ErrUpstreamNotFound, domain.SourceGA4, "")

	_, message, _ := describeReportError(err, domain.SourceGA4)
	assert.Equal(t, "Property not found", message)

	_, message, _ = describeReportError(err, domain.SourceGSC)
	assert.Equal(t, "Site not found", message)
}
