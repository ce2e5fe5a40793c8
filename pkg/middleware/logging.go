package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
)

// CorrelationHeader devolve ao cliente o ID de correlação da requisição
const CorrelationHeader = "X-Correlation-ID"

// slowRequest marca requisições lentas no log
const slowRequest = 5 * time.Second

// LoggingMiddleware registra cada requisição HTTP e alimenta as métricas
// por rota. A rota é o padrão do httprouter quando disponível.
func LoggingMiddleware(m *metrics.Metrics, routeOf func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationHeader, correlationID)

			route := r.URL.Path
			if routeOf != nil {
				route = routeOf(r)
			}

			if !log.IsDevelopment() {
				log.L.WithFields(log.Fields{
					"correlation_id": correlationID,
					"remote_addr":    r.RemoteAddr,
					"method":         r.Method,
					"route":          route,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
				}).Info("Requisição iniciada")
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			started := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(started)
			m.RecordRequest(route, sw.status, elapsed)

			logger := log.L.WithFields(log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"route":          route,
				"status_code":    sw.status,
				"duration_ms":    elapsed.Milliseconds(),
			})
			if elapsed > slowRequest {
				logger = logger.WithField("slow", true)
			}

			msg := fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, sw.status)
			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error(msg)
			case sw.status >= http.StatusBadRequest:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}
		})
	}
}

// statusWriter guarda o status devolvido pelo handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// RouteLookup é satisfeito por *httprouter.Router
type RouteLookup interface {
	Lookup(method, path string) (httprouter.Handle, httprouter.Params, bool)
}

// RouteOf resolve o padrão registrado no router para usar como label
func RouteOf(router RouteLookup) func(*http.Request) string {
	return func(r *http.Request) string {
		if handle, params, _ := router.Lookup(r.Method, r.URL.Path); handle != nil {
			segments := strings.Split(r.URL.Path, "/")
			for _, p := range params {
				for i, segment := range segments {
					if segment == p.Value {
						segments[i] = ":" + p.Key
						break
					}
				}
			}
			return strings.Join(segments, "/")
		}
		return "unmatched"
	}
}

// LogPanicMiddleware converte panics em 500 no formato de erro da API
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				logger := log.L.WithFields(log.Fields{
					"correlation_id": log.GetCorrelationID(r.Context()),
					"panic_error":    rec,
					"method":         r.Method,
					"path":           r.URL.Path,
				})

				if log.IsDevelopment() {
					logger.Error("PANIC na aplicação")
					fmt.Fprintf(os.Stderr, "\n=== STACK TRACE ===\n%s\n", stack)
				} else {
					logger.WithField("stack_trace", string(stack)).Error("Erro não tratado na aplicação")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
