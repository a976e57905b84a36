package handlers

import (
	"log"
	"net/http"

	"github.com/skip2/go-qrcode"

	"github.com/aaronzipp/flip7-scorekeeper/internal/render"
)

// HandleState returns the persisted state blob
func (ctx *Context) HandleState(w http.ResponseWriter, r *http.Request) {
	blob, found, err := ctx.Store.Raw(r.Context())
	if err != nil {
		log.Printf("HandleState: %v", err)
		http.Error(w, "State unavailable", http.StatusServiceUnavailable)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="scorekeeper.json"`)
	_, _ = w.Write(blob)
}

// HandleQRCode renders a QR code that opens the scorekeeper on a phone
func (ctx *Context) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(ctx.BaseURL+"/", qrcode.Medium, 256)
	if err != nil {
		log.Printf("HandleQRCode: %v", err)
		http.Error(w, "Could not render QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// HandleServiceWorker serves the offline cache script
func (ctx *Context) HandleServiceWorker(w http.ResponseWriter, r *http.Request) {
	js, err := render.ServiceWorker()
	if err != nil {
		log.Printf("HandleServiceWorker: %v", err)
		http.Error(w, "Could not render service worker", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Service-Worker-Allowed", "/")
	_, _ = w.Write(js)
}

// HandleManifest serves the web app manifest
func (ctx *Context) HandleManifest(w http.ResponseWriter, r *http.Request) {
	blob, err := render.Manifest()
	if err != nil {
		log.Printf("HandleManifest: %v", err)
		http.Error(w, "Could not render manifest", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/manifest+json")
	_, _ = w.Write(blob)
}
