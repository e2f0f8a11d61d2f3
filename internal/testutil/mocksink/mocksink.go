// Package mocksink provides a mock image upload sink server for testing.
package mocksink

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Upload records one received upload.
type Upload struct {
	Filename string
	Size     int64
	APIKey   string
}

// Server is a mock upload sink. It accepts multipart POSTs on /upload and
// returns a synthetic hosted URL.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	uploads  []Upload
	failWith int // inject this HTTP status on the next uploads when nonzero
}

// New creates a running mock sink. requireKey, when non-empty, makes the sink
// reject requests whose X-Sink-Key header does not match.
func New(requireKey string) *Server {
	s := &Server{}

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		s.mu.Lock()
		fail := s.failWith
		s.mu.Unlock()
		if fail != 0 {
			http.Error(w, "injected failure", fail)
			return
		}

		key := r.Header.Get("X-Sink-Key")
		if requireKey != "" && key != requireKey {
			http.Error(w, "invalid api key", http.StatusUnauthorized)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "missing image part", http.StatusBadRequest)
			return
		}
		defer file.Close()

		size, err := io.Copy(io.Discard, file)
		if err != nil {
			http.Error(w, "failed to read image", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.uploads = append(s.uploads, Upload{
			Filename: header.Filename,
			Size:     size,
			APIKey:   key,
		})
		n := len(s.uploads)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"url": fmt.Sprintf("%s/i/%d/%s", s.URL, n, header.Filename),
		})
	})

	s.Server = httptest.NewServer(mux)
	return s
}

// Uploads returns a copy of the uploads received so far.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// FailWith makes subsequent uploads fail with the given HTTP status.
// Pass 0 to restore normal behavior.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	s.failWith = status
	s.mu.Unlock()
}
