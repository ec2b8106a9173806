package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/beanup/interview-guide/internal/db"
	"github.com/beanup/interview-guide/internal/snapshot"
)

// seedRemoteFromSnapshot performs a one-time import of the local snapshot
// into a fresh SQLite database so that an existing local-only installation
// starts syncing with its history intact. A database that already exists is
// left alone.
func seedRemoteFromSnapshot(files *snapshot.Files, sqlitePath, migrationsDir, userID string) error {
	if sqlitePath == "" {
		return errors.New("sqlite path is required")
	}
	if _, err := os.Stat(sqlitePath); err == nil {
		return nil // already seeded
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check sqlite file: %w", err)
	}

	interviews, _, err := files.LoadInterviews()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if len(interviews) == 0 {
		return nil
	}

	log.Printf("first run detected, importing %d interview(s) from the local snapshot", len(interviews))

	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	conn, err := db.Open(sqlitePath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("warning: close sqlite: %v", cerr)
		}
	}()

	if err := db.RunMigrations(conn, migrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	store, err := db.NewStore(conn, nil)
	if err != nil {
		return fmt.Errorf("init row store: %w", err)
	}

	ctx := context.Background()
	if err := ensureUser(ctx, store, userID); err != nil {
		return err
	}
	for _, iv := range interviews {
		if err := store.Upsert(ctx, userID, iv); err != nil {
			return fmt.Errorf("import interview %s: %w", iv.ID, err)
		}
	}

	log.Printf("snapshot import completed")
	return nil
}

// ensureUser creates the owning account row if it does not exist yet. The
// local single-user installation never registers through the API.
func ensureUser(ctx context.Context, store *db.Store, userID string) error {
	_, err := store.GetUser(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("look up user %s: %w", userID, err)
	}
	if err := store.CreateUser(ctx, &db.User{
		ID:        userID,
		Email:     userID + "@local",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("create user %s: %w", userID, err)
	}
	return nil
}
