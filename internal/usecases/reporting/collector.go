package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/pipeline"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
)

// QueryPlan é uma consulta do relatório junto com o schema que decodifica
// suas linhas. Somente a consulta Primary é obrigatória.
type QueryPlan struct {
	Name     string
	Schema   pipeline.Schema
	Range    domain.DateRange
	Resource string
	Filters  []string
	Limit    int
	Primary  bool
}

// Results guarda os registros decodificados de cada consulta
type Results struct {
	records map[string][]pipeline.Record
	failed  map[string]error
}

// Records devolve os registros da consulta; consulta que falhou devolve nil
func (r *Results) Records(name string) []pipeline.Record {
	return r.records[name]
}

// Failed informa se a consulta secundária falhou e a seção deve usar o padrão
func (r *Results) Failed(name string) bool {
	_, ok := r.failed[name]
	return ok
}

// Empty é verdadeiro quando a consulta falhou ou não trouxe linhas
func (r *Results) Empty(name string) bool {
	return len(r.records[name]) == 0
}

type outcome struct {
	records []pipeline.Record
	err     error
}

// collector executa as consultas de uma requisição em paralelo e aplica a
// política de falhas: erro na primária encerra a requisição, erro em
// secundária é registrado e a seção fica vazia
type collector struct {
	source  ReportSource
	metrics *metrics.Metrics
}

func (c *collector) collect(ctx context.Context, src domain.Source, token, target string, plans []QueryPlan) (*Results, error) {
	logger := log.ForContext(ctx).WithField("source", string(src))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]outcome, len(plans))

	// Usar WaitGroup para esperar todas as consultas
	wg := sync.WaitGroup{}
	wg.Add(len(plans))

	for i, plan := range plans {
		go func(i int, plan QueryPlan) {
			defer wg.Done()

			query := domain.ReportQuery{
				Name:        plan.Name,
				Source:      src,
				AccessToken: token,
				Target:      target,
				DateRange:   plan.Range,
				Resource:    plan.Resource,
				Dimensions:  plan.Schema.Dimensions,
				Metrics:     plan.Schema.MetricNames(),
				Filters:     plan.Filters,
				Limit:       plan.Limit,
			}

			started := time.Now()
			rows, err := c.source.Fetch(ctx, query)
			c.metrics.RecordUpstreamQuery(string(src), plan.Name, len(rows), err, time.Since(started))

			if err != nil {
				outcomes[i] = outcome{err: err}
				// Sem a primária não há resposta; as demais podem parar
				if plan.Primary {
					cancel()
				}
				return
			}

			outcomes[i] = outcome{records: plan.Schema.Decode(rows)}
		}(i, plan)
	}

	wg.Wait()

	results := &Results{
		records: make(map[string][]pipeline.Record, len(plans)),
		failed:  make(map[string]error),
	}

	for i, plan := range plans {
		if plan.Primary && outcomes[i].err != nil {
			logger.WithField("query", plan.Name).WithError(outcomes[i].err).Error("reports: primary query failed")
			return nil, outcomes[i].err
		}
	}

	for i, plan := range plans {
		out := outcomes[i]
		if out.err == nil {
			results.records[plan.Name] = out.records
			continue
		}

		logger.WithField("query", plan.Name).WithError(out.err).Warn("reports: secondary query failed, using default section")
		c.metrics.RecordDefaultedSection(string(src), plan.Name)
		results.failed[plan.Name] = out.err
	}

	return results, nil
}
