package handlers

import (
	"net/http"
)

// HandleStartGame leaves setup for scoring
func (ctx *Context) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	err := ctx.Session.StartGame(r.Context(), p)
	ctx.respond(w, r, "HandleStartGame", p, err)
}

// HandleNewGame clears players and history after confirmation
func (ctx *Context) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	_, err := ctx.Session.NewGame(r.Context(), p)
	ctx.respond(w, r, "HandleNewGame", p, err)
}

// HandleResetScores drops every round but keeps the roster
func (ctx *Context) HandleResetScores(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	_, err := ctx.Session.ResetScores(r.Context(), p)
	ctx.respond(w, r, "HandleResetScores", p, err)
}

// HandleClearHistory removes every round after confirmation
func (ctx *Context) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	_, err := ctx.Session.ClearHistory(r.Context(), p)
	ctx.respond(w, r, "HandleClearHistory", p, err)
}

// HandleOpenHistory switches to the history view
func (ctx *Context) HandleOpenHistory(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	err := ctx.Session.OpenHistory(r.Context())
	ctx.respond(w, r, "HandleOpenHistory", newFormPrompter(r), err)
}

// HandleBackToScore switches to the score view
func (ctx *Context) HandleBackToScore(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	err := ctx.Session.BackToScore(r.Context())
	ctx.respond(w, r, "HandleBackToScore", newFormPrompter(r), err)
}
