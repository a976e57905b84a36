package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

const scoreFieldPrefix = "score-"

// scoreInputs collects score-<playerID> form fields
func scoreInputs(r *http.Request) map[string]string {
	inputs := make(map[string]string)
	for name := range r.PostForm {
		if id, ok := strings.CutPrefix(name, scoreFieldPrefix); ok && id != "" {
			inputs[id] = r.PostForm.Get(name)
		}
	}
	return inputs
}

// HandleSubmitRound records the submitted inputs and appends a round
func (ctx *Context) HandleSubmitRound(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	if inputs := scoreInputs(r); len(inputs) > 0 {
		if err := ctx.Session.SetInputs(r.Context(), p, inputs); err != nil {
			ctx.respond(w, r, "HandleSubmitRound", p, err)
			return
		}
	}
	err := ctx.Session.SubmitRound(r.Context(), p)
	ctx.respond(w, r, "HandleSubmitRound", p, err)
}

// HandleUndoLastRound removes the latest round after confirmation
func (ctx *Context) HandleUndoLastRound(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	_, err := ctx.Session.UndoLastRound(r.Context(), p)
	ctx.respond(w, r, "HandleUndoLastRound", p, err)
}

// HandleOpenEdit selects a round (0-based index) for editing
func (ctx *Context) HandleOpenEdit(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	index, err := strconv.Atoi(strings.TrimSpace(r.FormValue("index")))
	if err != nil {
		index = -1
	}
	p := newFormPrompter(r)
	err = ctx.Session.OpenEdit(r.Context(), p, index)
	ctx.respond(w, r, "HandleOpenEdit", p, err)
}

// HandleSaveEdit replaces the selected round's scores
func (ctx *Context) HandleSaveEdit(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	p := newFormPrompter(r)
	err := ctx.Session.SaveEdit(r.Context(), p, scoreInputs(r))
	ctx.respond(w, r, "HandleSaveEdit", p, err)
}

// HandleCancelEdit returns to history without saving
func (ctx *Context) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	err := ctx.Session.CancelEdit(r.Context())
	ctx.respond(w, r, "HandleCancelEdit", newFormPrompter(r), err)
}
