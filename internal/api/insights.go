package api

import (
	"net/http"
	"strings"

	"github.com/beanup/interview-guide/internal/export"
	"github.com/beanup/interview-guide/internal/sync"
)

// GET /api/insights — the aggregated summary across all interviews.
func (rt *Router) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, rt.insights.Summary())
}

// GET /api/insights/clusters, /api/insights/trend, /api/insights/report
func (rt *Router) handleInsightsScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	switch strings.TrimPrefix(r.URL.Path, "/api/insights/") {
	case "clusters":
		writeJSON(w, http.StatusOK, map[string]any{"clusters": rt.insights.PainPointClusters()})
	case "trend":
		writeJSON(w, http.StatusOK, map[string]any{"trend": rt.insights.InterestTrend()})
	case "report":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=insights.md")
		_, _ = w.Write([]byte(export.InsightsMarkdown(rt.insights.Summary())))
	default:
		http.NotFound(w, r)
	}
}

// GET /api/sync/status
func (rt *Router) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if rt.syncer == nil {
		writeJSON(w, http.StatusOK, sync.Status{State: sync.StateIdle})
		return
	}
	writeJSON(w, http.StatusOK, rt.syncer.Status())
}
