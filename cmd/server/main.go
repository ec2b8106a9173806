package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/beanup/interview-guide/internal/api"
	"github.com/beanup/interview-guide/internal/db"
	"github.com/beanup/interview-guide/internal/insights"
	"github.com/beanup/interview-guide/internal/interview"
	"github.com/beanup/interview-guide/internal/middleware"
	"github.com/beanup/interview-guide/internal/services"
	"github.com/beanup/interview-guide/internal/snapshot"
	syncer "github.com/beanup/interview-guide/internal/sync"
	"github.com/beanup/interview-guide/internal/utils"
	"github.com/beanup/interview-guide/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	addr := utils.SafeEnv("BEANUP_ADDR", ":8080")
	dataDir := utils.SafeEnv("BEANUP_DATA_DIR", "data")
	sqlitePath := utils.SafeEnv("BEANUP_SQLITE_PATH", filepath.Join(dataDir, "beanup.db"))
	migrationsDir := os.Getenv("BEANUP_MIGRATIONS_DIR")
	userID := utils.SafeEnv("BEANUP_USER_ID", "user-local")
	commit := os.Getenv("BEANUP_COMMIT")
	buildTime := os.Getenv("BEANUP_BUILD_TIME")

	store := interview.NewStore(nil)
	tracker := wizard.NewTracker()
	store.SetWizardNotifier(tracker)

	files := snapshot.New(dataDir, nil)
	if interviews, activeID, err := files.LoadInterviews(); err != nil {
		log.Printf("snapshot: load interviews: %v", err)
	} else if len(interviews) > 0 {
		store.Load(interviews, activeID)
	}
	if currentID, byInterview, err := files.LoadWizard(); err != nil {
		log.Printf("snapshot: load wizard: %v", err)
	} else {
		tracker.Load(currentID, byInterview)
	}
	if tracker.CurrentInterviewID() == "" {
		tracker.SetInterview(store.ActiveID())
	}
	if usage := files.Usage(); usage.Warning {
		log.Printf("snapshot: local storage at %d%% of the advisory limit", usage.UsagePercent)
	}

	// Persist every store mutation back to the local snapshot.
	store.Subscribe(func() {
		if err := files.SaveInterviews(store.Interviews(), store.ActiveID()); err != nil {
			log.Printf("snapshot: save interviews: %v", err)
		}
		currentID, byInterview := tracker.State()
		if err := files.SaveWizard(currentID, byInterview); err != nil {
			log.Printf("snapshot: save wizard: %v", err)
		}
	})

	if err := seedRemoteFromSnapshot(files, sqlitePath, migrationsDir, userID); err != nil {
		log.Fatalf("seed remote store: %v", err)
	}
	conn, err := db.Open(sqlitePath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer conn.Close()
	if err := db.RunMigrations(conn, migrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	rowStore, err := db.NewStore(conn, nil)
	if err != nil {
		log.Fatalf("init row store: %v", err)
	}
	if err := ensureUser(context.Background(), rowStore, userID); err != nil {
		log.Fatalf("ensure user: %v", err)
	}

	sy := syncer.New(rowStore, store, userID, syncer.DefaultDebounce, nil)
	store.Subscribe(sy.Notify)
	go func() {
		if err := sy.InitialSync(context.Background()); err != nil {
			log.Printf("sync: initial sync: %v", err)
		}
	}()

	auth := services.NewAuthService(rowStore, middleware.SignToken)
	router := api.NewRouter(api.Deps{
		Store:    store,
		Timer:    interview.NewSectionTimer(store, nil),
		Wizard:   tracker,
		Auth:     auth,
		AI:       services.NewMockAIService(),
		Insights: insights.NewService(store),
		Syncer:   sy,
	})

	mux := http.NewServeMux()
	router.Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "bean:up Interview Guide API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	if staticDir := os.Getenv("BEANUP_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.NoStore(middleware.SecureHeaders(middleware.CORS(middleware.WithAuth(mux))))
	server := &http.Server{Addr: addr, Handler: handler}

	go func() {
		log.Printf("interview guide server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	sy.Flush(ctx)
	sy.Stop()
	if err := files.SaveInterviews(store.Interviews(), store.ActiveID()); err != nil {
		log.Printf("snapshot: final save: %v", err)
	}
	currentID, byInterview := tracker.State()
	if err := files.SaveWizard(currentID, byInterview); err != nil {
		log.Printf("snapshot: final wizard save: %v", err)
	}
}
