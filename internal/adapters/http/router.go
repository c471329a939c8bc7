package httpadapter

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kirillkom/legal-classification-browser/internal/config"
	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
	"github.com/kirillkom/legal-classification-browser/internal/observability/metrics"
)

const serviceName = "browser-api"

const backpressureWait = 2 * time.Second

type Router struct {
	cfg      config.Config
	browser  ports.Browser
	exporter ports.Exporter
	metrics  *metrics.HTTPServerMetrics
	page     *pageRenderer
}

// NewRouter wires the HTTP surface. httpMetrics may be nil.
func NewRouter(
	cfg config.Config,
	browser ports.Browser,
	exporter ports.Exporter,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:      cfg,
		browser:  browser,
		exporter: exporter,
		metrics:  httpMetrics,
		page:     newPageRenderer(browser.Schema()),
	}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware)
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware(serviceName))
	}

	r.Get("/healthz", rt.healthz)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}
	r.Get("/openapi.yaml", rt.openAPIDoc)

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return rateLimitMiddleware(next, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
		})
		r.Use(func(next http.Handler) http.Handler {
			return backpressureMiddleware(next, rt.cfg.APIMaxInFlight, backpressureWait)
		})

		r.Get("/", rt.browsePage)

		r.Route("/v1", func(r chi.Router) {
			if rt.cfg.APIOpenAPIValidation {
				validator, err := newOpenAPIValidator()
				if err != nil {
					slog.Error("openapi validation disabled", "error", err)
				} else {
					r.Use(validator.Middleware)
				}
			}
			r.Get("/schema", rt.schema)
			r.Get("/subjects", rt.subjects)
			r.Get("/records", rt.records)
			r.Get("/stats/distribution", rt.distribution)
			r.Get("/stats/summary", rt.summary)
			r.Get("/export", rt.export)
		})
	})

	return r
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": rt.browser.Summary().Total,
	})
}

func (rt *Router) browsePage(w http.ResponseWriter, r *http.Request) {
	filter, err := bindFilter(r)
	if err != nil {
		http.Error(w, err.Error(), mapErrorToHTTPStatus(err))
		return
	}
	result, err := rt.browser.Browse(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), mapErrorToHTTPStatus(err))
		return
	}
	rt.recordBrowse("page", result.Shown)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rt.page.Render(w, result); err != nil {
		slog.Error("render page", "request_id", requestIDFromContext(r.Context()), "error", err)
	}
}

func (rt *Router) schema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.browser.Schema())
}

func (rt *Router) subjects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"all":      domain.AllSubjects,
		"subjects": rt.browser.Subjects(),
	})
}

func (rt *Router) records(w http.ResponseWriter, r *http.Request) {
	filter, err := bindFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := rt.browser.Browse(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.recordBrowse("records", result.Shown)

	writeJSON(w, http.StatusOK, map[string]any{
		"filter":  result.Filter,
		"shown":   result.Shown,
		"total":   result.Total,
		"records": result.Cards,
	})
}

func (rt *Router) distribution(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"distribution": rt.browser.Distribution(),
	})
}

func (rt *Router) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.browser.Summary())
}

func (rt *Router) export(w http.ResponseWriter, r *http.Request) {
	filter, format, err := bindExport(r)
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := rt.exporter.Export(r.Context(), filter, format)
	if rt.metrics != nil {
		size := 0
		if payload != nil {
			size = len(payload.Data)
		}
		rt.metrics.RecordExport(serviceName, string(format), size, err)
	}
	if err != nil {
		slog.Error("export failed",
			"request_id", requestIDFromContext(r.Context()),
			"format", format,
			"error", err,
		)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": payload.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload.Data)
}

func (rt *Router) recordBrowse(endpoint string, shown int) {
	if rt.metrics != nil {
		rt.metrics.RecordBrowse(serviceName, endpoint, shown)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
