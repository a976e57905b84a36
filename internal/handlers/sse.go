package handlers

import (
	"log"
	"net/http"

	"github.com/aaronzipp/flip7-scorekeeper/internal/render"
	"github.com/aaronzipp/flip7-scorekeeper/internal/sse"
)

// HandleSSE streams state updates to an open tab
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	clientChan := make(chan sse.Message, sse.BufferSize)
	ctx.Hub.AddClient(clientChan)
	defer ctx.Hub.RemoveClient(clientChan)

	// Send the current state so a reconnecting tab catches up
	sse.Message{Event: sse.EventStateUpdate, Data: render.Scoreboard(ctx.Session.Snapshot())}.WriteTo(w)
	sse.Message{Event: sse.EventSaveStatus, Data: render.SaveStatus(ctx.Session.SaveStatus())}.WriteTo(w)
	flusher.Flush()

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			if ctx.Debug {
				log.Printf("HandleSSE: client disconnected")
			}
			return
		case msg := <-clientChan:
			if _, err := msg.WriteTo(w); err != nil {
				log.Printf("HandleSSE: write failed: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}
