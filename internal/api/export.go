package api

import (
	"net/http"

	"github.com/beanup/interview-guide/internal/export"
	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
)

// GET /api/sections — the static interview guide catalog.
func (rt *Router) handleSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sections": interview.Sections(),
		"pitch":    interview.BeanupPitch,
	})
}

// GET /api/export?format=markdown|csv|json[&id=...] — exports the active
// interview unless an explicit id is given.
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	iv := rt.store.ActiveInterview()
	if id := r.URL.Query().Get("id"); id != "" {
		got, ok := rt.store.Get(id)
		if !ok {
			writeError(w, services.NewNotFoundError("interview not found"))
			return
		}
		iv = got
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}
	switch format {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=interview.md")
		_, _ = w.Write([]byte(export.InterviewMarkdown(iv)))
	case "csv":
		b, err := export.InterviewCSV(iv)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=interview.csv")
		_, _ = w.Write(b)
	case "json":
		b, err := export.InterviewJSON(iv)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", "attachment; filename=interview.json")
		_, _ = w.Write(b)
	default:
		writeError(w, services.NewInvalidError("unsupported format"))
	}
}
