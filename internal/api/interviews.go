package api

import (
	"net/http"
	"strings"

	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
)

type interviewSummaryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// GET /api/interviews — list; POST /api/interviews — create and activate.
func (rt *Router) handleInterviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		activeID := rt.store.ActiveID()
		interviews := rt.store.Interviews()
		out := make([]interviewSummaryItem, 0, len(interviews))
		for _, iv := range interviews {
			out = append(out, interviewSummaryItem{
				ID:          iv.ID,
				Name:        iv.Name,
				Status:      string(iv.Status),
				StatusLabel: interview.StatusLabel(iv.Status),
				Active:      iv.ID == activeID,
				CreatedAt:   iv.CreatedAt.Format(timeLayout),
				UpdatedAt:   iv.UpdatedAt.Format(timeLayout),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"interviews": out, "activeInterviewId": activeID})
	case http.MethodPost:
		var req struct {
			Name string `json:"name"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		id := rt.store.CreateInterview(req.Name)
		iv, _ := rt.store.Get(id)
		writeJSON(w, http.StatusCreated, iv)
	default:
		methodNotAllowed(w)
	}
}

// /api/interviews/{id} and /api/interviews/{id}/{action}
func (rt *Router) handleInterviewScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/interviews/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			iv, ok := rt.store.Get(id)
			if !ok {
				writeError(w, services.NewNotFoundError("interview not found"))
				return
			}
			writeJSON(w, http.StatusOK, iv)
		case http.MethodDelete:
			rt.store.DeleteInterview(id)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "activeInterviewId": rt.store.ActiveID()})
		default:
			methodNotAllowed(w)
		}
		return
	}

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if _, ok := rt.store.Get(id); !ok {
		writeError(w, services.NewNotFoundError("interview not found"))
		return
	}
	switch parts[1] {
	case "activate":
		rt.store.SetActiveInterview(id)
		rt.wizard.SetInterview(id)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "activeInterviewId": rt.store.ActiveID()})
	case "duplicate":
		copyID, ok := rt.store.DuplicateInterview(id)
		if !ok {
			writeError(w, services.NewNotFoundError("interview not found"))
			return
		}
		iv, _ := rt.store.Get(copyID)
		writeJSON(w, http.StatusCreated, iv)
	case "rename":
		var req struct {
			Name string `json:"name" validate:"required"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		rt.store.RenameInterview(id, req.Name)
		iv, _ := rt.store.Get(id)
		writeJSON(w, http.StatusOK, iv)
	default:
		http.NotFound(w, r)
	}
}
