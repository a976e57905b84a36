package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/aaronzipp/flip7-scorekeeper/internal/game"
	"github.com/aaronzipp/flip7-scorekeeper/internal/render"
	"github.com/aaronzipp/flip7-scorekeeper/internal/session"
	"github.com/aaronzipp/flip7-scorekeeper/internal/sse"
)

// formPrompter answers confirmations from the submitted form. An action
// posted without confirm=yes is declined and the question is remembered so
// the page can ask it.
type formPrompter struct {
	confirmed bool
	asked     string
	alerts    []string
}

func newFormPrompter(r *http.Request) *formPrompter {
	return &formPrompter{confirmed: r.FormValue("confirm") == "yes"}
}

func (p *formPrompter) Confirm(message string) bool {
	if p.confirmed {
		return true
	}
	p.asked = message
	return false
}

func (p *formPrompter) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

// requirePost parses the form of a POST request, rejecting other methods
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

// respond finishes an action: ask for confirmation, show alerts, or go back
// to the current view.
func (ctx *Context) respond(w http.ResponseWriter, r *http.Request, op string, p *formPrompter, err error) {
	if ctx.Debug {
		log.Printf("%s: err=%v asked=%q alerts=%v", op, err, p.asked, p.alerts)
	}
	switch {
	case p.asked != "":
		fields := make(map[string]string, len(r.PostForm))
		for name := range r.PostForm {
			fields[name] = r.PostForm.Get(name)
		}
		ctx.renderPage(w, http.StatusOK, ctx.page().WithConfirm(p.asked, r.URL.Path, fields))
		return
	case len(p.alerts) > 0:
		page := ctx.page()
		page.Alerts = p.alerts
		ctx.renderPage(w, http.StatusUnprocessableEntity, page)
		return
	case errors.Is(err, game.ErrUnknownPlayer):
		http.Error(w, "Unknown player", http.StatusBadRequest)
		return
	case err != nil && !errors.Is(err, game.ErrEmptyName) && !errors.Is(err, game.ErrSubmitTooSoon):
		log.Printf("%s: %v", op, err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// BroadcastState pushes the scoreboard and save status to every open tab
func BroadcastState(hub *sse.Hub, s *session.Session) {
	hub.Broadcast(sse.EventStateUpdate, render.Scoreboard(s.Snapshot()))
	hub.Broadcast(sse.EventSaveStatus, render.SaveStatus(s.SaveStatus()))
}
