package catalog

import (
	"errors"
	"net/url"
	"testing"
)

func validForm() url.Values {
	return url.Values{
		"name":                {"Cyber City"},
		"description":         {"Neon skyline district"},
		"coords":              {`{"lat": 23.81, "lng": 90.41}`},
		"population":          {"2500000"},
		"pollutionIndex":      {"42.5"},
		"crimeRate":           {"3.2"},
		"aiIntegrationLevel":  {"8"},
		"droneTrafficDensity": {"120"},
		"cyberSecurityLevel":  {"9"},
		"smartInfraScore":     {"77"},
		"energySource":        {"Fusion"},
		"notableTech":         {`["Quantum Mesh","Neural Transit"]`},
	}
}

func TestParseZoneForm_Coercion(t *testing.T) {
	z, err := ParseZoneForm(validForm())
	if err != nil {
		t.Fatalf("ParseZoneForm failed: %v", err)
	}

	if z.Name != "Cyber City" {
		t.Errorf("Name = %q", z.Name)
	}
	if z.Lat != 23.81 || z.Lng != 90.41 {
		t.Errorf("coords = (%v, %v), want (23.81, 90.41)", z.Lat, z.Lng)
	}
	if z.Population != 2500000 {
		t.Errorf("Population = %d, want 2500000", z.Population)
	}
	if z.AIIntegrationLevel != 8 {
		t.Errorf("AIIntegrationLevel = %v, want 8", z.AIIntegrationLevel)
	}
	if len(z.NotableTech) != 2 || z.NotableTech[0] != "Quantum Mesh" {
		t.Errorf("NotableTech = %v", z.NotableTech)
	}
}

func TestParseZoneForm_Defaults(t *testing.T) {
	form := url.Values{
		"name":        {"Eco Dome"},
		"description": {"Sealed habitat"},
		"coords":      {`{"lat": 1, "lng": 2}`},
	}

	z, err := ParseZoneForm(form)
	if err != nil {
		t.Fatalf("ParseZoneForm failed: %v", err)
	}

	if z.Population != 0 || z.PollutionIndex != 0 || z.AIIntegrationLevel != 0 {
		t.Errorf("numeric defaults not zero: %+v", z)
	}
	if z.NotableTech == nil || len(z.NotableTech) != 0 {
		t.Errorf("NotableTech = %v, want empty non-nil list", z.NotableTech)
	}
	if z.EnergySource != "" {
		t.Errorf("EnergySource = %q, want empty", z.EnergySource)
	}
}

func TestParseZoneForm_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
		field  string
	}{
		{"missing name", func(f url.Values) { f.Del("name") }, "name"},
		{"blank name", func(f url.Values) { f.Set("name", "   ") }, "name"},
		{"missing description", func(f url.Values) { f.Del("description") }, "description"},
		{"missing coords", func(f url.Values) { f.Del("coords") }, "coords"},
		{"coords not JSON", func(f url.Values) { f.Set("coords", "23.8,90.4") }, "coords"},
		{"non-numeric level", func(f url.Values) { f.Set("aiIntegrationLevel", "very high") }, "aiIntegrationLevel"},
		{"negative population", func(f url.Values) { f.Set("population", "-5") }, "population"},
		{"fractional population", func(f url.Values) { f.Set("population", "1.5") }, "population"},
		{"malformed tech list", func(f url.Values) { f.Set("notableTech", `[1, 2]`) }, "notableTech"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			_, err := ParseZoneForm(form)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestParseZoneForm_BareTechString(t *testing.T) {
	form := validForm()
	form.Set("notableTech", "Quantum Mesh")

	z, err := ParseZoneForm(form)
	if err != nil {
		t.Fatalf("ParseZoneForm failed: %v", err)
	}
	if len(z.NotableTech) != 1 || z.NotableTech[0] != "Quantum Mesh" {
		t.Errorf("NotableTech = %v, want single-element list", z.NotableTech)
	}
}

func TestParseZonePatch_Subset(t *testing.T) {
	patch, err := ParseZonePatch([]byte(`{"name": "New Name", "aiIntegrationLevel": 9.5}`))
	if err != nil {
		t.Fatalf("ParseZonePatch failed: %v", err)
	}

	if patch.Name == nil || *patch.Name != "New Name" {
		t.Errorf("Name = %v", patch.Name)
	}
	if patch.AIIntegrationLevel == nil || *patch.AIIntegrationLevel != 9.5 {
		t.Errorf("AIIntegrationLevel = %v", patch.AIIntegrationLevel)
	}
	if patch.Description != nil || patch.Lat != nil || patch.NotableTech != nil {
		t.Error("omitted fields must stay nil")
	}
}

func TestParseZonePatch_Coords(t *testing.T) {
	patch, err := ParseZonePatch([]byte(`{"coords": {"lat": -10.5, "lng": 100}}`))
	if err != nil {
		t.Fatalf("ParseZonePatch failed: %v", err)
	}
	if patch.Lat == nil || *patch.Lat != -10.5 || patch.Lng == nil || *patch.Lng != 100 {
		t.Errorf("coords patch = (%v, %v)", patch.Lat, patch.Lng)
	}
}

func TestParseZonePatch_Rejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"name":`},
		{"unknown field", `{"nonexistent": 1}`},
		{"blank name", `{"name": "  "}`},
		{"negative population", `{"population": -1}`},
		{"string where number expected", `{"crimeRate": "high"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseZonePatch([]byte(tt.body)); err == nil {
				t.Errorf("ParseZonePatch(%s) succeeded, want error", tt.body)
			}
		})
	}
}
