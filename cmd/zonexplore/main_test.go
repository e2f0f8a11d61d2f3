package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ashique01/dhaka2070/internal/session"
)

func newMockAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"username":"ashique","token":"issued-token"}`))
	})
	mux.HandleFunc("GET /admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"username":"ashique","zoneCount":3,"adminCount":1}`))
	})
	mux.HandleFunc("GET /city", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Cyber City","coords":{"lat":1,"lng":2}}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDefaultAPIURL(t *testing.T) {
	t.Setenv("DHAKA2070_API", "")
	if got := defaultAPIURL(); got != "http://localhost:8080" {
		t.Errorf("defaultAPIURL() = %q", got)
	}

	t.Setenv("DHAKA2070_API", "http://example:9000")
	if got := defaultAPIURL(); got != "http://example:9000" {
		t.Errorf("defaultAPIURL() = %q", got)
	}
}

func TestSessionPath_EnvOverride(t *testing.T) {
	t.Setenv("DHAKA2070_SESSION", "/tmp/custom-session.json")
	if got := sessionPath(); got != "/tmp/custom-session.json" {
		t.Errorf("sessionPath() = %q", got)
	}
}

func TestLoginDashboardLogoutFlow(t *testing.T) {
	srv := newMockAPI(t)
	sessFile := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("DHAKA2070_SESSION", sessFile)

	if err := run([]string{"-api", srv.URL, "login", "ashique", "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Session persisted with the issued token
	store := session.NewStore(sessFile)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	sess := store.Current()
	if sess == nil || sess.Token != "issued-token" {
		t.Fatalf("stored session = %+v", sess)
	}

	if err := run([]string{"-api", srv.URL, "dashboard"}); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if err := run([]string{"-api", srv.URL, "logout"}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// Dashboard now requires a fresh login
	if err := run([]string{"-api", srv.URL, "dashboard"}); err == nil {
		t.Error("dashboard after logout succeeded, want error")
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Setenv("DHAKA2070_SESSION", filepath.Join(t.TempDir(), "session.json"))
	if err := run([]string{"bogus"}); err == nil {
		t.Error("unknown command succeeded, want error")
	}
}
