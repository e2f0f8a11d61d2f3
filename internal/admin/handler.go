// Package admin implements the administrator account endpoints: registration,
// login, and the protected dashboard.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ashique01/dhaka2070/internal/auth"
	"github.com/ashique01/dhaka2070/internal/metrics"
	"github.com/ashique01/dhaka2070/internal/storage"
)

// dummyHash is compared against when a login targets an unknown username so
// that lookup misses and password mismatches take the same time.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Store is the subset of storage operations the admin handlers need.
type Store interface {
	CreateAdmin(ctx context.Context, username, passwordHash string) (*storage.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*storage.Admin, error)
	GetAdminByID(ctx context.Context, id int64) (*storage.Admin, error)
	CountAdmins(ctx context.Context) (int, error)
	CountZones(ctx context.Context) (int, error)
}

// Handler serves the /admin endpoints.
type Handler struct {
	store    Store
	issuer   *auth.TokenIssuer
	logLevel *slog.LevelVar
	logger   *slog.Logger
}

// NewHandler creates an admin Handler. logLevel may be nil if runtime log
// level changes are not needed.
func NewHandler(store Store, issuer *auth.TokenIssuer, logLevel *slog.LevelVar, logger *slog.Logger) *Handler {
	if logLevel == nil {
		logLevel = new(slog.LevelVar)
	}
	return &Handler{
		store:    store,
		issuer:   issuer,
		logLevel: logLevel,
		logger:   logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type dashboardResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	ZoneCount  int    `json:"zoneCount"`
	AdminCount int    `json:"adminCount"`
}

// HandleRegister creates a new administrator account.
// POST /admin/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := storage.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	admin, err := h.store.CreateAdmin(r.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		h.logger.Error("failed to create admin", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.issuer.Issue(admin.ID, admin.Username)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("admin registered", "id", admin.ID, "username", admin.Username)
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:       admin.ID,
		Username: admin.Username,
		Token:    token,
	})
}

// HandleLogin verifies credentials and issues a bearer token.
// POST /admin/login
//
// Unknown usernames and wrong passwords both return the same generic 401.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	admin, err := h.store.GetAdminByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Burn a bcrypt compare so unknown usernames take as long
			// as wrong passwords.
			_ = storage.VerifyPassword(req.Password, dummyHash)
			metrics.RecordAuthFailure("invalid_credentials")
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("failed to look up admin", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := storage.VerifyPassword(req.Password, admin.PasswordHash); err != nil {
		metrics.RecordAuthFailure("invalid_credentials")
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.Issue(admin.ID, admin.Username)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("admin logged in", "id", admin.ID, "username", admin.Username)
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:       admin.ID,
		Username: admin.Username,
		Token:    token,
	})
}

// HandleDashboard returns the authenticated admin's identity plus catalog counts.
// GET /admin/dashboard (requires bearer token)
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	admin, err := h.store.GetAdminByID(r.Context(), claims.AdminID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Token is valid but the account is gone
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		h.logger.Error("failed to load admin", "id", claims.AdminID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	zoneCount, err := h.store.CountZones(r.Context())
	if err != nil {
		h.logger.Error("failed to count zones", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	adminCount, err := h.store.CountAdmins(r.Context())
	if err != nil {
		h.logger.Error("failed to count admins", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		ID:         admin.ID,
		Username:   admin.Username,
		ZoneCount:  zoneCount,
		AdminCount: adminCount,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
