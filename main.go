package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaronzipp/flip7-scorekeeper/internal/config"
	"github.com/aaronzipp/flip7-scorekeeper/internal/handlers"
	"github.com/aaronzipp/flip7-scorekeeper/internal/render"
	"github.com/aaronzipp/flip7-scorekeeper/internal/session"
	"github.com/aaronzipp/flip7-scorekeeper/internal/sse"
	"github.com/aaronzipp/flip7-scorekeeper/internal/store"
	"github.com/aaronzipp/flip7-scorekeeper/internal/store/sqlite"
)

// sseSendTimeout bounds how long a broadcast waits on one slow tab
const sseSendTimeout = time.Second

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var slot store.Slot
	switch cfg.Store {
	case config.StoreMemory:
		slot = store.NewMemorySlot()
		log.Printf("Using in-memory store; state is lost on exit")
	default:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatal("Failed to open store: ", err)
		}
		defer db.Close()
		slot = db
		log.Printf("Using sqlite store at %s", cfg.DBPath)
	}
	stateStore := store.NewStateStore(slot)

	templates, err := render.Templates()
	if err != nil {
		log.Fatal("Failed to parse templates: ", err)
	}

	hub := sse.NewHub(sseSendTimeout, cfg.Debug)
	var sess *session.Session
	sess = session.Open(ctx, stateStore,
		session.WithSubmitCooldown(cfg.SubmitCooldown),
		session.WithDebug(cfg.Debug),
		session.WithOnChange(func() { handlers.BroadcastState(hub, sess) }),
	)

	h := &handlers.Context{
		Session:   sess,
		Store:     stateStore,
		Templates: templates,
		Hub:       hub,
		BaseURL:   cfg.BaseURL(),
		Debug:     cfg.Debug,
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.BaseURL())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
