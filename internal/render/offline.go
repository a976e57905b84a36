package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

// CacheName names the offline cache; bump it when the asset list changes
const CacheName = "flip7-scorekeeper-v1"

// OfflineAssets are precached by the service worker. Navigations go to the
// network first and only fall back to the cached "/" when offline; the
// other assets are served cache-first.
var OfflineAssets = []string{
	"/",
	"/static/app.css",
	"/manifest.webmanifest",
}

var serviceWorkerTemplate = template.Must(template.New("service-worker.js").Parse(`const CACHE_NAME = {{.CacheName}};
const ASSETS = {{.Assets}};

self.addEventListener("install", (event) => {
  event.waitUntil(caches.open(CACHE_NAME).then((cache) => cache.addAll(ASSETS)));
  self.skipWaiting();
});

self.addEventListener("activate", (event) => {
  event.waitUntil(
    caches.keys().then((keys) =>
      Promise.all(keys.filter((k) => k !== CACHE_NAME).map((k) => caches.delete(k)))
    )
  );
  self.clients.claim();
});

self.addEventListener("fetch", (event) => {
  const req = event.request;
  if (req.method !== "GET") return;
  if (req.mode === "navigate") {
    event.respondWith(
      fetch(req)
        .then((res) => {
          if (res.ok) {
            const copy = res.clone();
            caches.open(CACHE_NAME).then((cache) => cache.put("/", copy));
          }
          return res;
        })
        .catch(() => caches.match("/"))
    );
    return;
  }
  event.respondWith(caches.match(req).then((cached) => cached || fetch(req)));
});
`))

// ServiceWorker generates the offline service worker script
func ServiceWorker() ([]byte, error) {
	cacheName, err := json.Marshal(CacheName)
	if err != nil {
		return nil, err
	}
	assets, err := json.Marshal(OfflineAssets)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := serviceWorkerTemplate.Execute(&buf, struct {
		CacheName string
		Assets    string
	}{string(cacheName), string(assets)}); err != nil {
		return nil, fmt.Errorf("render service worker: %w", err)
	}
	return buf.Bytes(), nil
}

type manifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	StartURL        string `json:"start_url"`
	Scope           string `json:"scope"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
}

// Manifest generates the web app manifest
func Manifest() ([]byte, error) {
	return json.MarshalIndent(manifest{
		Name:            "Flip 7 Scorekeeper",
		ShortName:       "Flip 7",
		StartURL:        "/",
		Scope:           "/",
		Display:         "standalone",
		BackgroundColor: "#101418",
		ThemeColor:      "#101418",
	}, "", "  ")
}
