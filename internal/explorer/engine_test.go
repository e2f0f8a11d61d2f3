package explorer

import (
	"fmt"
	"testing"

	"github.com/ashique01/dhaka2070/internal/client"
)

func sampleZones() []client.Zone {
	return []client.Zone{
		{ID: 1, Name: "Cyber City", Description: "Quantum grid metropolis", AIIntegrationLevel: 8, CyberSecurityLevel: 9, EnergySource: "Fusion", NotableTech: []string{"Quantum Mesh", "Neural Transit"}},
		{ID: 2, Name: "Eco Dome", Description: "Sealed green habitat", AIIntegrationLevel: 3, CyberSecurityLevel: 5, EnergySource: "Solar", NotableTech: []string{"Vertical Farms"}},
		{ID: 3, Name: "Port Nagari", Description: "Drone logistics hub", AIIntegrationLevel: 6, CyberSecurityLevel: 4, EnergySource: "Hybrid Grid", NotableTech: []string{"Drone Corridors", "Quantum Mesh"}},
	}
}

func zoneNames(zones []client.Zone) []string {
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	return names
}

func genZones(n int) []client.Zone {
	zones := make([]client.Zone, n)
	for i := range zones {
		zones[i] = client.Zone{ID: int64(i + 1), Name: fmt.Sprintf("Zone %02d", i+1)}
	}
	return zones
}

func TestEmptyFiltersShowEverything(t *testing.T) {
	e := NewEngine(sampleZones())

	visible := e.Visible()
	if len(visible) != 3 {
		t.Fatalf("visible = %v, want all 3 zones", zoneNames(visible))
	}
	if e.HasMore() {
		t.Error("HasMore = true with 3 zones and page size 6")
	}
}

func TestAIThresholdExcludesBelow(t *testing.T) {
	zones := sampleZones()

	for _, threshold := range []float64{1, 3, 5, 6, 8, 10} {
		e := NewEngine(zones)
		e.SetMinAILevel(threshold)

		for _, z := range e.Filtered() {
			if z.AIIntegrationLevel < threshold {
				t.Errorf("threshold %v: %s (level %v) should be excluded", threshold, z.Name, z.AIIntegrationLevel)
			}
		}
		for _, z := range zones {
			if z.AIIntegrationLevel >= threshold && !containsZone(e.Filtered(), z.ID) {
				t.Errorf("threshold %v: %s (level %v) should be included", threshold, z.Name, z.AIIntegrationLevel)
			}
		}
	}
}

func containsZone(zones []client.Zone, id int64) bool {
	for _, z := range zones {
		if z.ID == id {
			return true
		}
	}
	return false
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	upper := NewEngine(sampleZones())
	upper.SetSearch("QUANTUM")
	lower := NewEngine(sampleZones())
	lower.SetSearch("quantum")

	u, l := zoneNames(upper.Visible()), zoneNames(lower.Visible())
	if len(u) != len(l) {
		t.Fatalf("case-sensitive divergence: %v vs %v", u, l)
	}
	for i := range u {
		if u[i] != l[i] {
			t.Errorf("case-sensitive divergence at %d: %q vs %q", i, u[i], l[i])
		}
	}
	// "Quantum" appears in Cyber City's description and tech, and in
	// Port Nagari's tech list
	if len(u) != 2 || u[0] != "Cyber City" || u[1] != "Port Nagari" {
		t.Errorf("visible = %v, want [Cyber City Port Nagari]", u)
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	e := NewEngine(sampleZones())

	e.SetSearch("dome")
	if got := zoneNames(e.Visible()); len(got) != 1 || got[0] != "Eco Dome" {
		t.Errorf("name search visible = %v", got)
	}

	e.SetSearch("logistics")
	if got := zoneNames(e.Visible()); len(got) != 1 || got[0] != "Port Nagari" {
		t.Errorf("description search visible = %v", got)
	}

	e.SetSearch("vertical farms")
	if got := zoneNames(e.Visible()); len(got) != 1 || got[0] != "Eco Dome" {
		t.Errorf("tech search visible = %v", got)
	}
}

func TestConjunctiveFilters(t *testing.T) {
	e := NewEngine(sampleZones())
	e.SetTech("quantum mesh")

	if got := zoneNames(e.Visible()); len(got) != 2 {
		t.Fatalf("tech filter visible = %v, want 2 zones", got)
	}

	// Adding the AI threshold narrows further: both must hold
	e.SetMinAILevel(7)
	if got := zoneNames(e.Visible()); len(got) != 1 || got[0] != "Cyber City" {
		t.Errorf("conjunctive visible = %v, want [Cyber City]", got)
	}
}

func TestEnergySourceSubstring(t *testing.T) {
	e := NewEngine(sampleZones())
	e.SetEnergySource("grid")

	if got := zoneNames(e.Visible()); len(got) != 1 || got[0] != "Port Nagari" {
		t.Errorf("energy filter visible = %v, want [Port Nagari]", got)
	}
}

func TestScenario_AILevelFive(t *testing.T) {
	zones := []client.Zone{
		{ID: 1, Name: "Cyber City", AIIntegrationLevel: 8},
		{ID: 2, Name: "Eco Dome", AIIntegrationLevel: 3},
	}
	e := NewEngine(zones)
	e.SetMinAILevel(5)

	got := zoneNames(e.Visible())
	if len(got) != 1 || got[0] != "Cyber City" {
		t.Errorf("visible = %v, want [Cyber City]", got)
	}
}

func TestScenario_TenZonesPagination(t *testing.T) {
	e := NewEngine(genZones(10))

	if got := len(e.Visible()); got != 6 {
		t.Fatalf("initial visible = %d, want 6", got)
	}
	if !e.HasMore() {
		t.Fatal("HasMore = false, want true")
	}

	e.RevealMore()
	if got := len(e.Visible()); got != 10 {
		t.Fatalf("after reveal visible = %d, want 10", got)
	}
	if e.HasMore() {
		t.Error("HasMore = true after full reveal")
	}
}

func TestRevealMoreIdempotentAtEnd(t *testing.T) {
	e := NewEngine(genZones(10))
	e.RevealMore()

	if e.HasMore() {
		t.Fatal("HasMore = true after full reveal")
	}

	before := e.PageCount()
	e.RevealMore()
	e.RevealMore()
	if e.PageCount() != before {
		t.Errorf("PageCount = %d after extra reveals, want %d", e.PageCount(), before)
	}
	if got := len(e.Visible()); got != 10 {
		t.Errorf("visible = %d after extra reveals, want 10", got)
	}
}

func TestFilterChangeResetsWindow(t *testing.T) {
	e := NewEngine(genZones(20))
	e.RevealMore()
	e.RevealMore()
	if e.PageCount() != 3 {
		t.Fatalf("PageCount = %d, want 3", e.PageCount())
	}

	resets := []struct {
		name  string
		apply func()
	}{
		{"search", func() { e.SetSearch("zone") }},
		{"ai level", func() { e.SetMinAILevel(0) }},
		{"security level", func() { e.SetMinSecurityLevel(0) }},
		{"energy source", func() { e.SetEnergySource("") }},
		{"tech", func() { e.SetTech("") }},
	}

	for _, r := range resets {
		e.RevealMore()
		e.RevealMore()
		r.apply()
		if e.PageCount() != 1 {
			t.Errorf("%s change left PageCount = %d, want 1", r.name, e.PageCount())
		}
	}
}

func TestSetZonesResetsWindow(t *testing.T) {
	e := NewEngine(genZones(20))
	e.RevealMore()

	e.SetZones(genZones(8))
	if e.PageCount() != 1 {
		t.Errorf("PageCount = %d after SetZones, want 1", e.PageCount())
	}
	if got := len(e.Visible()); got != 6 {
		t.Errorf("visible = %d, want 6", got)
	}
}

func TestNoMatchesYieldsEmptyWindow(t *testing.T) {
	e := NewEngine(sampleZones())
	e.SetSearch("atlantis")

	if got := e.Visible(); len(got) != 0 {
		t.Errorf("visible = %v, want empty", zoneNames(got))
	}
	if e.HasMore() {
		t.Error("HasMore = true with no matches")
	}
	e.RevealMore()
	if e.PageCount() != 1 {
		t.Errorf("PageCount = %d, want 1", e.PageCount())
	}
}
