package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
)

// runner concentra o que os três relatórios compartilham: janela de datas,
// token do usuário e execução das consultas
type runner struct {
	profile Profile
	tokens  TokenProvider
	collector
	now func() time.Time
}

func newRunner(profile Profile, source ReportSource, tokens TokenProvider, m *metrics.Metrics) runner {
	return runner{
		profile:   profile,
		tokens:    tokens,
		collector: collector{source: source, metrics: m},
		now:       time.Now,
	}
}

// window resolve a janela atual. Sem datas usa os últimos WindowDays dias até
// hoje; só com início vai até hoje; só com fim volta WindowDays dias.
func (r *runner) window(req ReportRequest) (domain.DateRange, error) {
	today := r.now()

	var (
		dr  domain.DateRange
		err error
	)

	switch {
	case req.StartDate == nil && req.EndDate == nil:
		return domain.TrailingDays(today, r.profile.WindowDays), nil
	case req.StartDate != nil && req.EndDate != nil:
		dr, err = domain.NewDateRange(*req.StartDate, *req.EndDate)
	case req.StartDate != nil:
		dr, err = domain.NewDateRange(*req.StartDate, today)
	default:
		dr = domain.TrailingDays(*req.EndDate, r.profile.WindowDays)
	}

	if err != nil {
		return domain.DateRange{}, NewReportError(ErrInvalidDateRange, CodeFor(ErrInvalidDateRange), r.profile.Source, err.Error())
	}

	return dr, nil
}

func (r *runner) accessToken(ctx context.Context, subject string) (string, error) {
	if subject == "" {
		return "", NewReportError(domain.ErrAuthenticationMissing, CodeFor(domain.ErrAuthenticationMissing), r.profile.Source, "")
	}

	token, err := r.tokens.AccessToken(ctx, subject, r.profile.Source)
	if err != nil {
		log.ForContext(ctx).
			WithFields(log.Fields{"source": string(r.profile.Source), "user_subject": subject}).
			WithError(err).
			Warn("reports: could not obtain access token")
		return "", wrapError(err, r.profile.Source)
	}

	return token, nil
}

func (r *runner) run(ctx context.Context, token, target string, plans []QueryPlan) (*Results, error) {
	results, err := r.collect(ctx, r.profile.Source, token, target, plans)
	if err != nil {
		return nil, wrapError(err, r.profile.Source)
	}
	return results, nil
}
