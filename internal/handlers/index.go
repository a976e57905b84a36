package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/aaronzipp/flip7-scorekeeper/internal/render"
	"github.com/aaronzipp/flip7-scorekeeper/internal/session"
	"github.com/aaronzipp/flip7-scorekeeper/internal/sse"
	"github.com/aaronzipp/flip7-scorekeeper/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Session   *session.Session
	Store     *store.StateStore
	Templates *template.Template
	Hub       *sse.Hub
	BaseURL   string
	Debug     bool
}

// Routes registers every handler on a new mux
func (ctx *Context) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ctx.HandleIndex)

	mux.HandleFunc("/players/add", ctx.HandleAddPlayer)
	mux.HandleFunc("/players/remove", ctx.HandleRemovePlayer)
	mux.HandleFunc("/players/rename", ctx.HandleRenamePlayer)
	mux.HandleFunc("/start", ctx.HandleStartGame)
	mux.HandleFunc("/inputs", ctx.HandleSetInput)

	mux.HandleFunc("/rounds/submit", ctx.HandleSubmitRound)
	mux.HandleFunc("/rounds/undo", ctx.HandleUndoLastRound)
	mux.HandleFunc("/rounds/edit", ctx.HandleOpenEdit)
	mux.HandleFunc("/rounds/edit/save", ctx.HandleSaveEdit)
	mux.HandleFunc("/rounds/edit/cancel", ctx.HandleCancelEdit)

	mux.HandleFunc("/history", ctx.HandleOpenHistory)
	mux.HandleFunc("/history/clear", ctx.HandleClearHistory)
	mux.HandleFunc("/score", ctx.HandleBackToScore)
	mux.HandleFunc("/reset-scores", ctx.HandleResetScores)
	mux.HandleFunc("/new-game", ctx.HandleNewGame)

	mux.HandleFunc("/events", ctx.HandleSSE)
	mux.HandleFunc("/state.json", ctx.HandleState)
	mux.HandleFunc("/qr.png", ctx.HandleQRCode)
	mux.HandleFunc("/service-worker.js", ctx.HandleServiceWorker)
	mux.HandleFunc("/manifest.webmanifest", ctx.HandleManifest)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(render.Static()))))
	return mux
}

// HandleIndex renders whichever view the state is on
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx.renderPage(w, http.StatusOK, ctx.page())
}

func (ctx *Context) page() render.Page {
	return render.NewPage(ctx.Session.Snapshot(), ctx.Session.SaveStatus())
}

func (ctx *Context) renderPage(w http.ResponseWriter, status int, page render.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.Execute(w, ctx.Templates, page); err != nil {
		log.Printf("renderPage: %v", err)
	}
}
