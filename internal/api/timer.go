package api

import (
	"net/http"

	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
)

// handleTimer covers the timer routes under /api/active/timer:
//
//	GET  /api/active/timer?section=key  — wall-clock snapshot
//	PUT  /api/active/timer              — raw state patch
//	POST /api/active/timer/observe      — section switch / repair
//	POST /api/active/timer/pause
//	POST /api/active/timer/resume
//	POST /api/active/timer/reset
func (rt *Router) handleTimer(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		switch r.Method {
		case http.MethodGet:
			key := interview.SectionKey(r.URL.Query().Get("section"))
			if !interview.ValidSectionKey(key) {
				writeError(w, services.NewInvalidError("unknown section key"))
				return
			}
			writeJSON(w, http.StatusOK, rt.timer.Snapshot(key))
		case http.MethodPut:
			var p interview.TimerStatePatch
			if err := rt.decode(r, &p); err != nil {
				writeError(w, err)
				return
			}
			rt.store.UpdateTimerState(p)
			rt.activeOK(w)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	switch parts[0] {
	case "observe":
		var req struct {
			SectionKey string `json:"sectionKey" validate:"required"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		key := interview.SectionKey(req.SectionKey)
		if !interview.ValidSectionKey(key) {
			writeError(w, services.NewInvalidError("unknown section key"))
			return
		}
		rt.timer.Observe(key)
		writeJSON(w, http.StatusOK, rt.timer.Snapshot(key))
	case "pause":
		rt.timer.Pause()
		rt.activeOK(w)
	case "resume":
		rt.timer.Resume()
		rt.activeOK(w)
	case "reset":
		rt.timer.ResetSection()
		rt.activeOK(w)
	default:
		http.NotFound(w, r)
	}
}
