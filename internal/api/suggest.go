package api

import (
	"net/http"
	"strings"

	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
)

// POST /api/suggest/* — deterministic mock AI helpers. Results are returned
// to the caller; nothing is written to the store until the client applies
// the suggestion through the regular mutation routes.
func (rt *Router) handleSuggestScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	iv := rt.store.ActiveInterview()

	switch strings.TrimPrefix(r.URL.Path, "/api/suggest/") {
	case "summary":
		writeJSON(w, http.StatusOK, map[string]any{"summary": rt.ai.GenerateSummary(&iv.Config)})
	case "pain-points":
		var notes []string
		for _, key := range interview.SectionKeys() {
			notes = append(notes, iv.Config.SectionNotes[key].Content)
		}
		points := rt.ai.ExtractPainPoints(strings.Join(notes, "\n"), iv.Config.AllQuotes)
		writeJSON(w, http.StatusOK, map[string]any{"painPoints": points})
	case "jtbd":
		jtbd := rt.ai.GenerateJTBD(
			iv.Config.SectionNotes[interview.SectionJourney].Content,
			iv.Config.SectionNotes[interview.SectionPain].Content,
		)
		writeJSON(w, http.StatusOK, map[string]any{"jtbd": jtbd})
	case "questions":
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
		questions := rt.ai.SuggestFollowUpQuestions(key,
			iv.Config.SectionNotes[key].Content, iv.Config.CoreFacts.Segment)
		writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
	default:
		http.NotFound(w, r)
	}
}
