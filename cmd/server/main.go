package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	mrand "math/rand"
	"net/http"
	"os"
	"time"

	"autoborder/internal/border"
	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/maps"
	"autoborder/internal/server"
	"autoborder/internal/ws"
)

const (
	defaultSSHPort  = "2222"
	defaultHTTPPort = "8080"
	hostKeyPath     = "host_key"
	layoutsDir      = "assets/layouts"
	defaultLayout   = "Default"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	// Generate host key if it doesn't exist
	if err := ensureHostKey(hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		log.Fatalf("Brush catalog error: %v", err)
	}

	layout := loadLayout(envOr("LAYOUTS_DIR", layoutsDir), envOr("LAYOUT", defaultLayout))

	seed := time.Now().UnixNano()
	engine := border.NewEngine(cat.Registry, nil, mrand.New(mrand.NewSource(seed)), log.New(os.Stderr, "border: ", log.Ltime))
	doc, err := editor.Build(layout, engine, mrand.New(mrand.NewSource(seed+1)))
	if err != nil {
		log.Fatalf("Build %q: %v", layout.Name, err)
	}
	log.Printf("Layout ready: %s (%dx%d, %d tiles)", layout.Name, layout.Width, layout.Height, doc.Map().Count())

	editLoop := editor.NewLoop(doc, cat, log.Default())
	go editLoop.Run()
	defer editLoop.Stop()

	// Snapshot feed for browsers
	hub := ws.NewHub(log.Default())
	_, feed := editLoop.Watch()
	go hub.Pump(feed)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	httpAddr := ":" + envOr("HTTP_PORT", defaultHTTPPort)
	go func() {
		log.Printf("HTTP listening on %s", httpAddr)
		if err := http.ListenAndServe(httpAddr, mux); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Start SSH server (blocks)
	sshPort := envOr("SSH_PORT", defaultSSHPort)
	sshServer := server.NewSSHServer(":"+sshPort, hostKeyPath, editLoop, cat)
	log.Printf("Starting autoborder editor, connect with: ssh -p %s YourName@localhost", sshPort)
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadLayout returns the named layout from dir, or the built-in default
// when the directory or the name is missing.
func loadLayout(dir, name string) *maps.Layout {
	all, err := maps.LoadLayouts(dir)
	if err != nil {
		log.Printf("Could not load layouts from %s: %v, using default layout", dir, err)
		return maps.DefaultLayout()
	}
	for n, l := range all {
		log.Printf("Layout found: %s (%dx%d, %d legend entries)", n, l.Width, l.Height, len(l.Legend))
	}
	if l, ok := all[name]; ok {
		return l
	}
	log.Printf("Layout %q not in %s, using default layout", name, dir)
	return maps.DefaultLayout()
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
