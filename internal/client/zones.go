package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// ListZones retrieves all zones in the catalog.
func (c *Client) ListZones(ctx context.Context) ([]Zone, error) {
	var zones []Zone
	if err := c.getJSON(ctx, "/city", http.StatusOK, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// GetZone retrieves a single zone by ID.
func (c *Client) GetZone(ctx context.Context, id int64) (*Zone, error) {
	var zone Zone
	if err := c.getJSON(ctx, fmt.Sprintf("/city/%d", id), http.StatusOK, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

// CreateZone creates a zone from typed input. The optional image is uploaded
// as part of the same multipart request; pass a nil reader to skip it.
func (c *Client) CreateZone(ctx context.Context, input ZoneInput, imageName string, image io.Reader) (*Zone, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	coordsJSON, err := json.Marshal(Coords{Lat: input.Lat, Lng: input.Lng})
	if err != nil {
		return nil, fmt.Errorf("failed to encode coords: %w", err)
	}
	tech := input.NotableTech
	if tech == nil {
		tech = []string{}
	}
	techJSON, err := json.Marshal(tech)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notableTech: %w", err)
	}

	fields := map[string]string{
		"name":                input.Name,
		"description":         input.Description,
		"coords":              string(coordsJSON),
		"population":          strconv.FormatInt(input.Population, 10),
		"pollutionIndex":      formatFloat(input.PollutionIndex),
		"crimeRate":           formatFloat(input.CrimeRate),
		"aiIntegrationLevel":  formatFloat(input.AIIntegrationLevel),
		"droneTrafficDensity": formatFloat(input.DroneTrafficDensity),
		"cyberSecurityLevel":  formatFloat(input.CyberSecurityLevel),
		"smartInfraScore":     formatFloat(input.SmartInfraScore),
		"energySource":        input.EnergySource,
		"notableTech":         string(techJSON),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	if image != nil {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, image); err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/city", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var created Zone
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateZone applies a partial update to a zone.
func (c *Client) UpdateZone(ctx context.Context, id int64, patch ZonePatch) (*Zone, error) {
	var updated Zone
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/city/%d", id), patch, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteZone removes a zone.
func (c *Client) DeleteZone(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/city/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
