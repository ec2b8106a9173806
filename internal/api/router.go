// Package api exposes the interview guide over HTTP. All mutation routes
// operate on the store's active interview; collection routes address
// interviews by id.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/beanup/interview-guide/internal/insights"
	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
	"github.com/beanup/interview-guide/internal/sync"
	"github.com/beanup/interview-guide/internal/wizard"
)

// SyncReporter surfaces the background sync indicator. Nil means sync is
// not configured; the status endpoint then reports idle.
type SyncReporter interface {
	Status() sync.Status
}

const timeLayout = time.RFC3339Nano

type Router struct {
	store    *interview.Store
	timer    *interview.SectionTimer
	wizard   *wizard.Tracker
	auth     *services.AuthService
	ai       *services.MockAIService
	insights *insights.Service
	syncer   SyncReporter
	validate *validator.Validate
}

type Deps struct {
	Store    *interview.Store
	Timer    *interview.SectionTimer
	Wizard   *wizard.Tracker
	Auth     *services.AuthService
	AI       *services.MockAIService
	Insights *insights.Service
	Syncer   SyncReporter
}

func NewRouter(deps Deps) *Router {
	return &Router{
		store:    deps.Store,
		timer:    deps.Timer,
		wizard:   deps.Wizard,
		auth:     deps.Auth,
		ai:       deps.AI,
		insights: deps.Insights,
		syncer:   deps.Syncer,
		validate: validator.New(),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister) // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)       // POST

	mux.HandleFunc("/api/interviews", rt.handleInterviews)        // GET, POST
	mux.HandleFunc("/api/interviews/", rt.handleInterviewScoped)  // GET/DELETE /{id}, POST /{id}/activate|duplicate|rename
	mux.HandleFunc("/api/active", rt.handleActive)                // GET
	mux.HandleFunc("/api/active/", rt.handleActiveScoped)         // mutations on the active interview
	mux.HandleFunc("/api/sections", rt.handleSections)            // GET
	mux.HandleFunc("/api/export", rt.handleExport)                // GET ?format=
	mux.HandleFunc("/api/insights", rt.handleInsights)            // GET
	mux.HandleFunc("/api/insights/", rt.handleInsightsScoped)     // GET /clusters|trend|report
	mux.HandleFunc("/api/sync/status", rt.handleSyncStatus)       // GET
	mux.HandleFunc("/api/wizard", rt.handleWizard)                // GET
	mux.HandleFunc("/api/wizard/", rt.handleWizardScoped)         // POST /next|prev|goto|complete|errors|reset
	mux.HandleFunc("/api/suggest/", rt.handleSuggestScoped)       // POST /summary|pain-points|jtbd|questions
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service error codes onto HTTP statuses; anything else is
// a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		}
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decode reads the JSON body into v and runs struct validation on it.
func (rt *Router) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewInvalidError("invalid json: " + err.Error())
	}
	if err := rt.validate.Struct(v); err != nil {
		return services.NewInvalidError(err.Error())
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
