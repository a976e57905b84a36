package handlers

import (
	"net/http"
	"strings"
)

// HandleAddPlayer adds a default-named player to the roster
func (ctx *Context) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	err := ctx.Session.AddPlayer(r.Context(), p)
	ctx.respond(w, r, "HandleAddPlayer", p, err)
}

// HandleRemovePlayer removes a player after confirmation
func (ctx *Context) HandleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	playerID := strings.TrimSpace(r.FormValue("player_id"))
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}
	p := newFormPrompter(r)
	_, err := ctx.Session.RemovePlayer(r.Context(), p, playerID)
	ctx.respond(w, r, "HandleRemovePlayer", p, err)
}

// HandleRenamePlayer renames a player; a blank name keeps the previous one
func (ctx *Context) HandleRenamePlayer(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	err := ctx.Session.RenamePlayer(r.Context(), p, r.FormValue("player_id"), r.FormValue("name"))
	ctx.respond(w, r, "HandleRenamePlayer", p, err)
}

// HandleSetInput stores one player's pending score text as it is typed
func (ctx *Context) HandleSetInput(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	if err := ctx.Session.SetInput(r.Context(), p, r.FormValue("player_id"), r.FormValue("value")); err != nil {
		http.Error(w, "Unknown player", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
