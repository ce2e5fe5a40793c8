package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// ReportSource executa uma consulta no provedor e devolve as linhas na ordem
// de dimensões e métricas declarada na consulta
type ReportSource interface {
	Fetch(ctx context.Context, query domain.ReportQuery) ([]domain.ReportRow, error)
}

// TokenProvider entrega um access token válido do usuário para o serviço.
// Renovar o token quando expirado é responsabilidade de quem implementa.
type TokenProvider interface {
	AccessToken(ctx context.Context, subject string, service domain.Source) (string, error)
}

// ReportRequest são os parâmetros de uma requisição de relatório.
// Datas nulas usam a janela padrão do provedor; Target vazio usa o configurado.
type ReportRequest struct {
	Subject   string
	Target    string
	StartDate *time.Time
	EndDate   *time.Time
}

// AdsReporter monta o relatório do Google Ads
type AdsReporter interface {
	AdsReport(ctx context.Context, req ReportRequest) (*domain.AdsReport, error)
}

// GA4Reporter monta o relatório do Google Analytics 4
type GA4Reporter interface {
	GA4Report(ctx context.Context, req ReportRequest) (*domain.GA4Report, error)
}

// GSCReporter monta o relatório do Search Console
type GSCReporter interface {
	GSCReport(ctx context.Context, req ReportRequest) (*domain.GSCReport, error)
}
