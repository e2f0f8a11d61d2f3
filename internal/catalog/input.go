package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/ashique01/dhaka2070/internal/storage"
)

// ValidationError reports a missing or malformed input field. Handlers map it
// to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

type coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseZoneForm builds a Zone from multipart form values. All values arrive as
// strings; each field is parsed against its declared type and unparseable
// input is rejected rather than passed through.
func ParseZoneForm(form url.Values) (*storage.Zone, error) {
	z := &storage.Zone{}

	z.Name = strings.TrimSpace(form.Get("name"))
	if z.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "required"}
	}

	z.Description = strings.TrimSpace(form.Get("description"))
	if z.Description == "" {
		return nil, &ValidationError{Field: "description", Message: "required"}
	}

	c, err := parseCoords(form.Get("coords"))
	if err != nil {
		return nil, err
	}
	z.Lat = c.Lat
	z.Lng = c.Lng

	z.Population, err = parseCount(form.Get("population"), "population")
	if err != nil {
		return nil, err
	}

	numeric := []struct {
		field string
		dst   *float64
	}{
		{"pollutionIndex", &z.PollutionIndex},
		{"crimeRate", &z.CrimeRate},
		{"aiIntegrationLevel", &z.AIIntegrationLevel},
		{"droneTrafficDensity", &z.DroneTrafficDensity},
		{"cyberSecurityLevel", &z.CyberSecurityLevel},
		{"smartInfraScore", &z.SmartInfraScore},
	}
	for _, n := range numeric {
		*n.dst, err = parseNumber(form.Get(n.field), n.field)
		if err != nil {
			return nil, err
		}
	}

	z.EnergySource = strings.TrimSpace(form.Get("energySource"))

	z.NotableTech, err = parseTechList(form.Get("notableTech"))
	if err != nil {
		return nil, err
	}

	return z, nil
}

// patchBody is the JSON shape of a partial update. Pointer fields distinguish
// "absent" from "set to zero value".
type patchBody struct {
	Name                *string   `json:"name"`
	Description         *string   `json:"description"`
	Coords              *coords   `json:"coords"`
	Image               *string   `json:"image"`
	Population          *int64    `json:"population"`
	PollutionIndex      *float64  `json:"pollutionIndex"`
	CrimeRate           *float64  `json:"crimeRate"`
	AIIntegrationLevel  *float64  `json:"aiIntegrationLevel"`
	DroneTrafficDensity *float64  `json:"droneTrafficDensity"`
	CyberSecurityLevel  *float64  `json:"cyberSecurityLevel"`
	SmartInfraScore     *float64  `json:"smartInfraScore"`
	EnergySource        *string   `json:"energySource"`
	NotableTech         *[]string `json:"notableTech"`
}

// ParseZonePatch decodes a PATCH body into a ZonePatch. Unknown fields are
// rejected so that typos surface as errors instead of silent no-ops.
func ParseZonePatch(data []byte) (*storage.ZonePatch, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()

	var body patchBody
	if err := dec.Decode(&body); err != nil {
		return nil, &ValidationError{Field: "body", Message: "malformed JSON: " + err.Error()}
	}

	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if body.Description != nil && strings.TrimSpace(*body.Description) == "" {
		return nil, &ValidationError{Field: "description", Message: "must not be empty"}
	}
	if body.Population != nil && *body.Population < 0 {
		return nil, &ValidationError{Field: "population", Message: "must not be negative"}
	}

	patch := &storage.ZonePatch{
		Name:                body.Name,
		Description:         body.Description,
		Image:               body.Image,
		Population:          body.Population,
		PollutionIndex:      body.PollutionIndex,
		CrimeRate:           body.CrimeRate,
		AIIntegrationLevel:  body.AIIntegrationLevel,
		DroneTrafficDensity: body.DroneTrafficDensity,
		CyberSecurityLevel:  body.CyberSecurityLevel,
		SmartInfraScore:     body.SmartInfraScore,
		EnergySource:        body.EnergySource,
		NotableTech:         body.NotableTech,
	}

	if body.Coords != nil {
		if !isFinite(body.Coords.Lat) || !isFinite(body.Coords.Lng) {
			return nil, &ValidationError{Field: "coords", Message: "lat and lng must be finite numbers"}
		}
		lat, lng := body.Coords.Lat, body.Coords.Lng
		patch.Lat = &lat
		patch.Lng = &lng
	}

	for _, check := range []struct {
		field string
		v     *float64
	}{
		{"pollutionIndex", body.PollutionIndex},
		{"crimeRate", body.CrimeRate},
		{"aiIntegrationLevel", body.AIIntegrationLevel},
		{"droneTrafficDensity", body.DroneTrafficDensity},
		{"cyberSecurityLevel", body.CyberSecurityLevel},
		{"smartInfraScore", body.SmartInfraScore},
	} {
		if check.v != nil && !isFinite(*check.v) {
			return nil, &ValidationError{Field: check.field, Message: "must be a finite number"}
		}
	}

	return patch, nil
}

// parseCoords parses the coords field, which the client sends as a JSON
// object in its textual transport form: {"lat": 23.8, "lng": 90.4}.
func parseCoords(raw string) (*coords, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationError{Field: "coords", Message: "required"}
	}

	var c coords
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, &ValidationError{Field: "coords", Message: "must be a JSON object with lat and lng"}
	}
	if !isFinite(c.Lat) || !isFinite(c.Lng) {
		return nil, &ValidationError{Field: "coords", Message: "lat and lng must be finite numbers"}
	}
	return &c, nil
}

func parseNumber(raw, field string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(v) {
		return 0, &ValidationError{Field: field, Message: "must be a number"}
	}
	return v, nil
}

func parseCount(raw, field string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: "must be a non-negative integer"}
	}
	if v < 0 {
		return 0, &ValidationError{Field: field, Message: "must not be negative"}
	}
	return v, nil
}

// parseTechList parses the notableTech field, sent as a JSON array of strings.
// A single bare string is accepted and wrapped into a one-element list.
func parseTechList(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list, nil
	}

	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		return []string{single}, nil
	}

	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return []string{trimmed}, nil
	}

	return nil, &ValidationError{Field: "notableTech", Message: "must be a JSON array of strings"}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
