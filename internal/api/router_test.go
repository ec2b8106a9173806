package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beanup/interview-guide/internal/db"
	"github.com/beanup/interview-guide/internal/insights"
	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/services"
	"github.com/beanup/interview-guide/internal/wizard"
)

type fakeAuthStore struct {
	users map[string]*db.User
}

func (s *fakeAuthStore) CreateUser(ctx context.Context, u *db.User) error {
	copy := *u
	s.users[u.Email] = &copy
	return nil
}

func (s *fakeAuthStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	if u, ok := s.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, db.ErrNotFound
}

func newTestRouter(t *testing.T) (*Router, *interview.Store) {
	t.Helper()
	now := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	store := interview.NewStore(func() time.Time { return now })
	tracker := wizard.NewTracker()
	store.SetWizardNotifier(tracker)
	tracker.SetInterview(store.ActiveID())

	auth := services.NewAuthService(&fakeAuthStore{users: map[string]*db.User{}},
		func(uid, email string, ttl time.Duration) (string, error) { return "tok:" + uid, nil })

	rt := NewRouter(Deps{
		Store:    store,
		Timer:    interview.NewSectionTimer(store, func() time.Time { return now }),
		Wizard:   tracker,
		Auth:     auth,
		AI:       services.NewMockAIService(),
		Insights: insights.NewService(store),
	})
	return rt, store
}

func serve(rt *Router, method, path string, body any) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	rt.Register(mux)
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	rt, _ := newTestRouter(t)

	rec := serve(rt, http.MethodPost, "/api/auth/register",
		map[string]string{"email": "founder@example.com", "password": "Secret123"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}
	var res authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || res.Token == "" {
		t.Fatalf("register body = %s", rec.Body.String())
	}

	rec = serve(rt, http.MethodPost, "/api/auth/register",
		map[string]string{"email": "founder@example.com", "password": "Secret123"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "founder@example.com", "password": "wrongpass"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "founder@example.com", "password": "Secret123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthPayloadValidation(t *testing.T) {
	rt, _ := newTestRouter(t)

	rec := serve(rt, http.MethodPost, "/api/auth/register",
		map[string]string{"email": "not-an-email", "password": "Secret123"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid email status = %d", rec.Code)
	}
	rec = serve(rt, http.MethodPost, "/api/auth/register",
		map[string]string{"email": "a@example.com", "password": "short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password status = %d", rec.Code)
	}
}

func TestInterviewLifecycleEndpoints(t *testing.T) {
	rt, store := newTestRouter(t)

	rec := serve(rt, http.MethodPost, "/api/interviews", map[string]string{"name": "Acme Interview"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created interview.Interview
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Name != "Acme Interview" {
		t.Fatalf("name = %q", created.Name)
	}
	if store.ActiveID() != created.ID {
		t.Fatal("create must activate the new interview")
	}

	rec = serve(rt, http.MethodGet, "/api/interviews", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Interviews []interviewSummaryItem `json:"interviews"`
		ActiveID   string                 `json:"activeInterviewId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Interviews) != 2 || list.ActiveID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	rec = serve(rt, http.MethodPost, "/api/interviews/"+created.ID+"/duplicate", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
	var dup interview.Interview
	_ = json.Unmarshal(rec.Body.Bytes(), &dup)
	if !strings.HasSuffix(dup.Name, " Kopie") {
		t.Fatalf("duplicate name = %q", dup.Name)
	}

	rec = serve(rt, http.MethodPost, "/api/interviews/"+dup.ID+"/rename", map[string]string{"name": "Zweiter Durchlauf"})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodDelete, "/api/interviews/"+dup.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if _, ok := store.Get(dup.ID); ok {
		t.Fatal("interview still present after delete")
	}

	rec = serve(rt, http.MethodGet, "/api/interviews/interview-missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing get status = %d", rec.Code)
	}
	rec = serve(rt, http.MethodPost, "/api/interviews/interview-missing/activate", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing activate status = %d", rec.Code)
	}
}

func TestActiveMutationEndpoints(t *testing.T) {
	rt, store := newTestRouter(t)

	rec := serve(rt, http.MethodPut, "/api/active/core-facts",
		map[string]string{"intervieweeName": "Alex Schmidt", "segment": "aktuell_gruendend"})
	if rec.Code != http.StatusOK {
		t.Fatalf("core facts status = %d: %s", rec.Code, rec.Body.String())
	}
	iv := store.ActiveInterview()
	if iv.Config.CoreFacts.IntervieweeName != "Alex Schmidt" {
		t.Fatalf("core facts not applied: %+v", iv.Config.CoreFacts)
	}
	if iv.Config.Summary.CoreFacts.IntervieweeName != "Alex Schmidt" {
		t.Fatal("core facts not mirrored into summary")
	}

	rec = serve(rt, http.MethodPut, "/api/active/core-facts", map[string]string{"segment": "mars"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid segment status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodPost, "/api/active/quotes",
		map[string]any{"text": "Das kostet mich jeden Freitag", "sectionKey": "schmerz_workarounds", "isVerbatim": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("quote status = %d: %s", rec.Code, rec.Body.String())
	}
	iv = store.ActiveInterview()
	if len(iv.Config.AllQuotes) != 1 || len(iv.Config.Summary.KeyQuotes) != 1 {
		t.Fatalf("quote fan-out missing: allQuotes=%d keyQuotes=%d",
			len(iv.Config.AllQuotes), len(iv.Config.Summary.KeyQuotes))
	}

	rec = serve(rt, http.MethodPost, "/api/active/pain-points",
		map[string]any{"description": "Buchhaltung frisst Zeit", "intensity": 5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("pain point status = %d: %s", rec.Code, rec.Body.String())
	}
	iv = store.ActiveInterview()
	if len(iv.Config.Summary.PainPoints) != 1 || iv.Config.Summary.PainPoints[0].Rank != 1 {
		t.Fatalf("pain points = %+v", iv.Config.Summary.PainPoints)
	}

	rec = serve(rt, http.MethodPost, "/api/active/pain-points",
		map[string]any{"description": "Zu hoch", "intensity": 9})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range intensity status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodPut, "/api/active/status", map[string]string{"status": "in_progress"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status update = %d", rec.Code)
	}
	if store.ActiveInterview().ConductedAt.IsZero() {
		t.Fatal("conductedAt not stamped on in_progress")
	}

	rec = serve(rt, http.MethodPut, "/api/active/notes/warmup", map[string]string{"content": "Lockerer Einstieg"})
	if rec.Code != http.StatusOK {
		t.Fatalf("note status = %d", rec.Code)
	}
	rec = serve(rt, http.MethodPut, "/api/active/notes/unbekannt", map[string]string{"content": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown section note status = %d", rec.Code)
	}
}

func TestConfigImportRepairsWrongTypes(t *testing.T) {
	rt, store := newTestRouter(t)

	rec := serve(rt, http.MethodPut, "/api/active/config", map[string]any{
		"coreFacts":  map[string]any{"intervieweeName": "Alex"},
		"timerState": map[string]any{"sectionElapsedMs": "abc", "totalElapsedMs": 1200},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("config import status = %d: %s", rec.Code, rec.Body.String())
	}

	cfg := store.ActiveInterview().Config
	if cfg.CoreFacts.IntervieweeName != "Alex" {
		t.Fatalf("intervieweeName = %q", cfg.CoreFacts.IntervieweeName)
	}
	if cfg.TimerState.SectionElapsedMs != 0 {
		t.Fatalf("wrong-typed sectionElapsedMs must reset to 0, got %d", cfg.TimerState.SectionElapsedMs)
	}
	if cfg.TimerState.TotalElapsedMs != 1200 {
		t.Fatalf("totalElapsedMs = %d", cfg.TimerState.TotalElapsedMs)
	}
	if len(cfg.SectionNotes) != len(interview.SectionKeys()) {
		t.Fatal("imported config must be backfilled to the full shape")
	}
}

func TestTimerEndpoints(t *testing.T) {
	rt, store := newTestRouter(t)

	rec := serve(rt, http.MethodPost, "/api/active/timer/observe", map[string]string{"sectionKey": "warmup"})
	if rec.Code != http.StatusOK {
		t.Fatalf("observe status = %d: %s", rec.Code, rec.Body.String())
	}
	var snap interview.TimerSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.SectionKey != interview.SectionWarmup || snap.IsPaused {
		t.Fatalf("snapshot = %+v", snap)
	}

	rec = serve(rt, http.MethodPost, "/api/active/timer/pause", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pause status = %d", rec.Code)
	}
	if !store.ActiveInterview().Config.TimerState.IsPaused {
		t.Fatal("timer not paused")
	}

	rec = serve(rt, http.MethodGet, "/api/active/timer?section=warmup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot status = %d", rec.Code)
	}
	rec = serve(rt, http.MethodGet, "/api/active/timer?section=nope", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid section snapshot status = %d", rec.Code)
	}
}

func TestWizardEndpoints(t *testing.T) {
	rt, _ := newTestRouter(t)

	rec := serve(rt, http.MethodPost, "/api/wizard/next", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next status = %d", rec.Code)
	}
	var res wizardResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Progress.CurrentStep != 1 {
		t.Fatalf("step = %d, want 1", res.Progress.CurrentStep)
	}

	rec = serve(rt, http.MethodPost, "/api/wizard/goto", map[string]int{"step": 99})
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Progress.CurrentStep != wizard.MaxStep {
		t.Fatalf("step = %d, want clamp to %d", res.Progress.CurrentStep, wizard.MaxStep)
	}
}

func TestExportAndInsightsEndpoints(t *testing.T) {
	rt, _ := newTestRouter(t)

	serve(rt, http.MethodPut, "/api/active/core-facts", map[string]string{"intervieweeName": "Alex"})

	rec := serve(rt, http.MethodGet, "/api/export?format=csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("csv status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}

	rec = serve(rt, http.MethodGet, "/api/export?format=markdown", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Alex") {
		t.Fatalf("markdown export: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(rt, http.MethodGet, "/api/export?format=tsv", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodGet, "/api/insights", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("insights status = %d", rec.Code)
	}
	var sum insights.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.TotalInterviews != 1 {
		t.Fatalf("total interviews = %d", sum.TotalInterviews)
	}
}

func TestSuggestEndpoints(t *testing.T) {
	rt, _ := newTestRouter(t)

	serve(rt, http.MethodPut, "/api/active/notes/schmerz_workarounds",
		map[string]string{"content": "Rechnungen stapeln sich. Mahnungen gehen unter."})

	rec := serve(rt, http.MethodPost, "/api/suggest/questions", map[string]string{"sectionKey": "schmerz_workarounds"})
	if rec.Code != http.StatusOK {
		t.Fatalf("questions status = %d: %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Questions) != 4 {
		t.Fatalf("questions = %v", res.Questions)
	}

	rec = serve(rt, http.MethodPost, "/api/suggest/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rec.Code)
	}

	rec = serve(rt, http.MethodPost, "/api/suggest/jtbd", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("jtbd status = %d", rec.Code)
	}
}

func TestSyncStatusWithoutSyncer(t *testing.T) {
	rt, _ := newTestRouter(t)

	rec := serve(rt, http.MethodGet, "/api/sync/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"idle"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
