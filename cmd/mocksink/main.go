// Package main implements a standalone mock image upload sink for local
// development and end-to-end testing. It accepts multipart uploads on
// /upload, stores the bytes in memory, and serves them back under /i/.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
)

type sink struct {
	apiKey string

	mu     sync.Mutex
	images map[string][]byte
	nextID int
}

func newSink(apiKey string) *sink {
	return &sink{
		apiKey: apiKey,
		images: make(map[string][]byte),
		nextID: 1,
	}
}

func (s *sink) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.apiKey != "" && r.Header.Get("X-Sink-Key") != s.apiKey {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read image", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	key := fmt.Sprintf("%d/%s", s.nextID, header.Filename)
	s.nextID++
	s.images[key] = data
	s.mu.Unlock()

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	//nolint:errcheck
	json.NewEncoder(w).Encode(map[string]string{
		"url": fmt.Sprintf("%s://%s/i/%s", scheme, r.Host, key),
	})
}

func (s *sink) handleServe(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/i/")

	s.mu.Lock()
	data, ok := s.images[key]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	//nolint:errcheck
	w.Write(data)
}

func (s *sink) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/i/", s.handleServe)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

func getAddr() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	return ":" + port
}

func main() {
	s := newSink(os.Getenv("SINK_KEY"))

	server := &http.Server{
		Addr:    getAddr(),
		Handler: s.routes(),
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint
		log.Println("shutting down mocksink...")
		//nolint:errcheck
		server.Close()
	}()

	log.Printf("mocksink listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("mocksink failed: %v", err)
	}
}
