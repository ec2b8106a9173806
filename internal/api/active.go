package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
)

// GET /api/active — the full active interview.
func (rt *Router) handleActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, rt.store.ActiveInterview())
}

// handleActiveScoped dispatches every mutation of the active interview.
func (rt *Router) handleActiveScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/active/")
	parts := strings.Split(rest, "/")

	switch parts[0] {
	case "core-facts":
		rt.handleCoreFacts(w, r)
	case "founders":
		rt.handleFounders(w, r, parts[1:])
	case "notes":
		rt.handleNotes(w, r, parts[1:])
	case "quotes":
		rt.handleQuotes(w, r, parts[1:])
	case "checklist":
		rt.handleChecklist(w, r, parts[1:])
	case "timer":
		rt.handleTimer(w, r, parts[1:])
	case "summary":
		rt.handleSummary(w, r)
	case "jtbd":
		rt.handleJTBD(w, r)
	case "pain-points":
		rt.handlePainPoints(w, r, parts[1:])
	case "steve-reaction":
		rt.handleSteveReaction(w, r)
	case "assessment":
		rt.handleAssessment(w, r)
	case "questions":
		rt.handleQuestions(w, r, parts[1:])
	case "status":
		rt.handleStatus(w, r)
	case "visibility":
		rt.handleVisibility(w, r)
	case "config":
		rt.handleConfigImport(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (rt *Router) activeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, rt.store.ActiveInterview())
}

// PUT /api/active/core-facts
func (rt *Router) handleCoreFacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var p interview.CoreFactsPatch
	if err := rt.decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateCoreFacts(p)
	rt.activeOK(w)
}

// POST /api/active/founders, PUT/DELETE /api/active/founders/{id}
func (rt *Router) handleFounders(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req struct {
			Name    string `json:"name" validate:"required"`
			Role    string `json:"role"`
			Contact string `json:"contact"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		id := rt.store.AddFounder(req.Name, req.Role, req.Contact)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
		return
	}
	id := parts[0]
	switch r.Method {
	case http.MethodPut:
		var p interview.FounderPatch
		if err := rt.decode(r, &p); err != nil {
			writeError(w, err)
			return
		}
		rt.store.UpdateFounder(id, p)
		rt.activeOK(w)
	case http.MethodDelete:
		rt.store.RemoveFounder(id)
		rt.activeOK(w)
	default:
		methodNotAllowed(w)
	}
}

// PUT /api/active/notes/{section}
func (rt *Router) handleNotes(w http.ResponseWriter, r *http.Request, parts []string) {
	if r.Method != http.MethodPut || len(parts) == 0 {
		methodNotAllowed(w)
		return
	}
	key := interview.SectionKey(parts[0])
	if !interview.ValidSectionKey(key) {
		writeError(w, services.NewInvalidError("unknown section key"))
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := rt.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateSectionNote(key, req.Content)
	rt.activeOK(w)
}

// POST /api/active/quotes, DELETE /api/active/quotes/{id}
func (rt *Router) handleQuotes(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req struct {
			Text       string `json:"text" validate:"required"`
			SectionKey string `json:"sectionKey" validate:"required"`
			IsVerbatim bool   `json:"isVerbatim"`
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
		id := rt.store.AddQuote(req.Text, key, req.IsVerbatim)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	rt.store.RemoveQuote(parts[0])
	rt.activeOK(w)
}

// POST /api/active/checklist, PUT/DELETE /api/active/checklist/{id}
func (rt *Router) handleChecklist(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req struct {
			Label string `json:"label" validate:"required"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		id := rt.store.AddChecklistItem(req.Label)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
		return
	}
	id := parts[0]
	switch r.Method {
	case http.MethodPut:
		var req struct {
			Checked bool `json:"checked"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		rt.store.SetChecklistItem(id, req.Checked)
		rt.activeOK(w)
	case http.MethodDelete:
		rt.store.RemoveChecklistItem(id)
		rt.activeOK(w)
	default:
		methodNotAllowed(w)
	}
}

// PUT /api/active/summary
func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var p interview.SummaryPatch
	if err := rt.decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateSummary(p)
	rt.activeOK(w)
}

// PUT /api/active/jtbd
func (rt *Router) handleJTBD(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var p interview.JTBDPatch
	if err := rt.decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateJTBD(p)
	rt.activeOK(w)
}

// POST /api/active/pain-points, POST /api/active/pain-points/reorder,
// PUT/DELETE /api/active/pain-points/{id}
func (rt *Router) handlePainPoints(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var p interview.PainPointPatch
		if err := rt.decode(r, &p); err != nil {
			writeError(w, err)
			return
		}
		id := rt.store.AddPainPoint(p)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
		return
	}
	if parts[0] == "reorder" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req struct {
			FromIndex int `json:"fromIndex"`
			ToIndex   int `json:"toIndex"`
		}
		if err := rt.decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		rt.store.ReorderPainPoints(req.FromIndex, req.ToIndex)
		rt.activeOK(w)
		return
	}
	id := parts[0]
	switch r.Method {
	case http.MethodPut:
		var p interview.PainPointPatch
		if err := rt.decode(r, &p); err != nil {
			writeError(w, err)
			return
		}
		rt.store.UpdatePainPoint(id, p)
		rt.activeOK(w)
	case http.MethodDelete:
		rt.store.RemovePainPoint(id)
		rt.activeOK(w)
	default:
		methodNotAllowed(w)
	}
}

// PUT /api/active/steve-reaction
func (rt *Router) handleSteveReaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var p interview.SteveReactionPatch
	if err := rt.decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateSteveReaction(p)
	rt.activeOK(w)
}

// PUT /api/active/assessment
func (rt *Router) handleAssessment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var p interview.OverallAssessmentPatch
	if err := rt.decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateOverallAssessment(p)
	rt.activeOK(w)
}

// POST /api/active/questions, DELETE /api/active/questions/{section}/{id}
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 || parts[0] == "" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req struct {
			SectionKey string `json:"sectionKey" validate:"required"`
			Text       string `json:"text" validate:"required"`
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
		id := rt.store.AddCustomQuestion(key, req.Text)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
		return
	}
	if r.Method != http.MethodDelete || len(parts) < 2 {
		methodNotAllowed(w)
		return
	}
	key := interview.SectionKey(parts[0])
	if !interview.ValidSectionKey(key) {
		writeError(w, services.NewInvalidError("unknown section key"))
		return
	}
	rt.store.RemoveCustomQuestion(key, parts[1])
	rt.activeOK(w)
}

// PUT /api/active/status
func (rt *Router) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Status string `json:"status" validate:"required,oneof=planned in_progress completed aborted"`
	}
	if err := rt.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rt.store.UpdateStatus(interview.Status(req.Status))
	rt.activeOK(w)
}

// PUT /api/active/visibility
func (rt *Router) handleVisibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var req struct {
		Visibility string `json:"visibility" validate:"required,oneof=private public"`
	}
	if err := rt.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	rt.store.SetVisibility(interview.Visibility(req.Visibility))
	rt.activeOK(w)
}

// PUT /api/active/config — replace the active interview's config with an
// imported blob. Runs through the normalizer, so partial or foreign shapes
// are repaired rather than rejected.
func (rt *Router) handleConfigImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, services.NewInvalidError("failed to read request body"))
		return
	}
	rt.store.ReplaceActiveConfig(interview.DecodeConfig(body, rt.store.Now()))
	rt.activeOK(w)
}
