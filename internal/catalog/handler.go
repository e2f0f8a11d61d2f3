// Package catalog implements the /city HTTP endpoints over the zone store.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashique01/dhaka2070/internal/storage"
)

// maxMultipartMemory bounds how much of a create request is buffered in memory.
const maxMultipartMemory = 10 << 20 // 10 MiB

// Store is the subset of storage operations the catalog handlers need.
type Store interface {
	CreateZone(ctx context.Context, z *storage.Zone) (*storage.Zone, error)
	GetZone(ctx context.Context, id int64) (*storage.Zone, error)
	ListZones(ctx context.Context) ([]*storage.Zone, error)
	UpdateZone(ctx context.Context, id int64, patch *storage.ZonePatch) (*storage.Zone, error)
	DeleteZone(ctx context.Context, id int64) error
}

// Uploader forwards image bytes to the upload sink and returns the hosted URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Handler serves the /city endpoints.
type Handler struct {
	store    Store
	uploader Uploader
	logger   *slog.Logger
}

// NewHandler creates a catalog Handler.
func NewHandler(store Store, uploader Uploader, logger *slog.Logger) *Handler {
	return &Handler{
		store:    store,
		uploader: uploader,
		logger:   logger,
	}
}

// zoneJSON is the wire representation of a Zone.
type zoneJSON struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Coords              coords    `json:"coords"`
	Image               string    `json:"image"`
	Population          int64     `json:"population"`
	PollutionIndex      float64   `json:"pollutionIndex"`
	CrimeRate           float64   `json:"crimeRate"`
	AIIntegrationLevel  float64   `json:"aiIntegrationLevel"`
	DroneTrafficDensity float64   `json:"droneTrafficDensity"`
	CyberSecurityLevel  float64   `json:"cyberSecurityLevel"`
	SmartInfraScore     float64   `json:"smartInfraScore"`
	EnergySource        string    `json:"energySource"`
	NotableTech         []string  `json:"notableTech"`
	CreatedAt           time.Time `json:"createdAt"`
}

func toZoneJSON(z *storage.Zone) zoneJSON {
	tech := z.NotableTech
	if tech == nil {
		tech = []string{}
	}
	return zoneJSON{
		ID:                  z.ID,
		Name:                z.Name,
		Description:         z.Description,
		Coords:              coords{Lat: z.Lat, Lng: z.Lng},
		Image:               z.Image,
		Population:          z.Population,
		PollutionIndex:      z.PollutionIndex,
		CrimeRate:           z.CrimeRate,
		AIIntegrationLevel:  z.AIIntegrationLevel,
		DroneTrafficDensity: z.DroneTrafficDensity,
		CyberSecurityLevel:  z.CyberSecurityLevel,
		SmartInfraScore:     z.SmartInfraScore,
		EnergySource:        z.EnergySource,
		NotableTech:         tech,
		CreatedAt:           z.CreatedAt,
	}
}

// HandleList returns every zone in the catalog.
// GET /city
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	zones, err := h.store.ListZones(r.Context())
	if err != nil {
		h.logger.Error("failed to list zones", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]zoneJSON, 0, len(zones))
	for _, z := range zones {
		out = append(out, toZoneJSON(z))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet returns one zone by identifier.
// GET /city/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := zoneID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}

	zone, err := h.store.GetZone(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "zone not found")
			return
		}
		h.logger.Error("failed to get zone", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toZoneJSON(zone))
}

// HandleCreate creates a zone from a multipart form. The image part, if
// present, is forwarded to the upload sink before the zone is persisted so the
// returned URL can be embedded.
// POST /city
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	zone, err := ParseZoneForm(r.Form)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		url, uploadErr := h.uploader.Upload(r.Context(), header.Filename, file)
		if uploadErr != nil {
			h.logger.Error("image upload failed", "filename", header.Filename, "error", uploadErr)
			writeError(w, http.StatusBadGateway, "image upload failed")
			return
		}
		zone.Image = url
	case errors.Is(err, http.ErrMissingFile):
		// image is optional
	default:
		writeError(w, http.StatusBadRequest, "malformed image part")
		return
	}

	created, err := h.store.CreateZone(r.Context(), zone)
	if err != nil {
		h.logger.Error("failed to create zone", "name", zone.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("zone created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, toZoneJSON(created))
}

// HandleUpdate applies a partial update to a zone.
// PATCH /city/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := zoneID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	patch, err := ParseZonePatch(body)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	updated, err := h.store.UpdateZone(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "zone not found")
		case errors.Is(err, storage.ErrEmptyPatch):
			writeError(w, http.StatusBadRequest, "no fields to update")
		default:
			h.logger.Error("failed to update zone", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("zone updated", "id", id)
	writeJSON(w, http.StatusOK, toZoneJSON(updated))
}

// HandleDelete removes a zone.
// DELETE /city/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := zoneID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "zone not found")
		return
	}

	if err := h.store.DeleteZone(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "zone not found")
			return
		}
		h.logger.Error("failed to delete zone", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("zone deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func zoneID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeValidationError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusBadRequest, vErr.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid input")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
