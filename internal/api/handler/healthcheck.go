package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
)

// Pinger é uma dependência verificada pelo healthcheck
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status       string            `json:"status"`
	Time         string            `json:"time"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// HealthcheckHandler responde 200 quando todas as dependências respondem e
// 503 caso alguma falhe
func HealthcheckHandler(dependencies map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:       "ok",
			Time:         time.Now().UTC().Format(time.RFC3339),
			Dependencies: make(map[string]string, len(dependencies)),
		}

		status := http.StatusOK
		for name, dep := range dependencies {
			if err := dep.Ping(ctx); err != nil {
				resp.Dependencies[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = "ok"
		}

		writeJSON(w, log.ForContext(r.Context()), status, resp)
	})
}
