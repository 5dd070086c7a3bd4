package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/survey-relay/auth"
	"github.com/danielhkuo/survey-relay/cache"
	"github.com/danielhkuo/survey-relay/cliparse"
	"github.com/danielhkuo/survey-relay/db"
	"github.com/danielhkuo/survey-relay/responses"
	"github.com/danielhkuo/survey-relay/router"
	"github.com/danielhkuo/survey-relay/surveys"
	"github.com/danielhkuo/survey-relay/transport"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Backend client with bearer auth
	client := transport.New(cfg.BackendURL, &auth.Transport{Token: cfg.BackendToken}, cfg.RequestTimeout)

	// Optional local snapshot
	var snapshot responses.Snapshotter
	if cfg.SnapshotPath != "" {
		snap, err := db.Open(cfg.SnapshotPath)
		if err != nil {
			slog.Error("snapshot open failed", "path", cfg.SnapshotPath, "error", err)
			os.Exit(1)
		}
		defer snap.Close()
		snapshot = snap
		slog.Info("Snapshot ready", "path", cfg.SnapshotPath)
	}

	// Wire the service
	store := surveys.NewStore(client)
	svc := responses.NewService(client, store, cache.New(), snapshot)

	// Seed the cache from the snapshot; surveys still refresh on first read
	if snap, ok := snapshot.(*db.Snapshot); ok {
		restored, err := snap.LoadAll()
		if err != nil {
			slog.Warn("snapshot restore failed", "error", err)
		} else {
			svc.Restore(restored)
			slog.Info("Snapshot restored", "surveys", len(restored))
		}
	}

	// Create router
	mux := router.NewRouter(svc, store)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "backend", cfg.BackendURL)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Let in-flight background merges land before the snapshot closes
	svc.Wait()
}
