package api

import (
	"net/http"
	"strings"

	"github.com/beanup/interview-guide/internal/wizard"
)

type wizardResponse struct {
	InterviewID string          `json:"interviewId"`
	Progress    wizard.Progress `json:"progress"`
}

func (rt *Router) wizardOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, wizardResponse{
		InterviewID: rt.wizard.CurrentInterviewID(),
		Progress:    rt.wizard.Current(),
	})
}

// GET /api/wizard — progress of the wizard for the current interview.
func (rt *Router) handleWizard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rt.wizardOK(w)
}

// POST /api/wizard/next|prev|goto|complete|errors|reset
func (rt *Router) handleWizardScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	switch strings.TrimPrefix(r.URL.Path, "/api/wizard/") {
	case "next":
		rt.wizard.NextStep()
		rt.wizardOK(w)
	case "prev":
		rt.wizard.PrevStep()
		rt.wizardOK(w)
	case "goto":
		var req struct {
			Step int `json:"step"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		rt.wizard.GoToStep(req.Step)
		rt.wizardOK(w)
	case "complete":
		var req struct {
			Step int `json:"step"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		rt.wizard.MarkComplete(req.Step)
		rt.wizardOK(w)
	case "errors":
		var req struct {
			Step   int      `json:"step"`
			Errors []string `json:"errors"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if len(req.Errors) == 0 {
			rt.wizard.ClearValidationErrors(req.Step)
		} else {
			rt.wizard.SetValidationErrors(req.Step, req.Errors)
		}
		rt.wizardOK(w)
	case "reset":
		rt.wizard.ResetInterview(rt.wizard.CurrentInterviewID())
		rt.wizardOK(w)
	default:
		http.NotFound(w, r)
	}
}
