package storage

import (
	"context"
	"errors"
	"testing"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testZone() *Zone {
	return &Zone{
		Name:                "Cyber City",
		Description:         "A neon metropolis run by quantum grids",
		Lat:                 23.8103,
		Lng:                 90.4125,
		Population:          21000000,
		PollutionIndex:      42.5,
		CrimeRate:           3.1,
		AIIntegrationLevel:  8,
		DroneTrafficDensity: 120,
		CyberSecurityLevel:  9,
		SmartInfraScore:     87,
		EnergySource:        "Fusion",
		NotableTech:         []string{"Quantum Mesh", "Neural Transit"},
	}
}

func TestCreateAndGetZone(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateZone(ctx, testZone())
	if err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}
	if created.ID <= 0 {
		t.Errorf("expected positive zone ID, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Errorf("expected CreatedAt to be set")
	}

	got, err := s.GetZone(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetZone failed: %v", err)
	}

	if got.Name != "Cyber City" {
		t.Errorf("Name = %q, want %q", got.Name, "Cyber City")
	}
	if got.Lat != 23.8103 || got.Lng != 90.4125 {
		t.Errorf("coords = (%v, %v), want (23.8103, 90.4125)", got.Lat, got.Lng)
	}
	if got.Population != 21000000 {
		t.Errorf("Population = %d, want 21000000", got.Population)
	}
	if got.AIIntegrationLevel != 8 {
		t.Errorf("AIIntegrationLevel = %v, want 8", got.AIIntegrationLevel)
	}
	if len(got.NotableTech) != 2 || got.NotableTech[0] != "Quantum Mesh" {
		t.Errorf("NotableTech = %v, want [Quantum Mesh Neural Transit]", got.NotableTech)
	}
}

func TestGetZone_NotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetZone(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetZone(9999) error = %v, want ErrNotFound", err)
	}
}

func TestListZones(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	// Empty catalog returns empty slice, not nil
	zones, err := s.ListZones(ctx)
	if err != nil {
		t.Fatalf("ListZones failed: %v", err)
	}
	if zones == nil {
		t.Errorf("expected empty slice, got nil")
	}
	if len(zones) != 0 {
		t.Errorf("expected 0 zones, got %d", len(zones))
	}

	for i := 0; i < 3; i++ {
		z := testZone()
		z.Name = z.Name + string(rune('A'+i))
		if _, err := s.CreateZone(ctx, z); err != nil {
			t.Fatalf("CreateZone failed: %v", err)
		}
	}

	zones, err = s.ListZones(ctx)
	if err != nil {
		t.Fatalf("ListZones failed: %v", err)
	}
	if len(zones) != 3 {
		t.Errorf("expected 3 zones, got %d", len(zones))
	}
}

func TestUpdateZone_PartialPatch(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateZone(ctx, testZone())
	if err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}

	newName := "Eco Dome"
	newAI := 3.0
	updated, err := s.UpdateZone(ctx, created.ID, &ZonePatch{
		Name:               &newName,
		AIIntegrationLevel: &newAI,
	})
	if err != nil {
		t.Fatalf("UpdateZone failed: %v", err)
	}

	if updated.Name != "Eco Dome" {
		t.Errorf("Name = %q, want %q", updated.Name, "Eco Dome")
	}
	if updated.AIIntegrationLevel != 3 {
		t.Errorf("AIIntegrationLevel = %v, want 3", updated.AIIntegrationLevel)
	}

	// Untouched fields survive the patch
	if updated.Description != created.Description {
		t.Errorf("Description changed: %q", updated.Description)
	}
	if updated.EnergySource != "Fusion" {
		t.Errorf("EnergySource = %q, want Fusion", updated.EnergySource)
	}
	if len(updated.NotableTech) != 2 {
		t.Errorf("NotableTech = %v, want 2 entries", updated.NotableTech)
	}
}

func TestUpdateZone_NotableTech(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateZone(ctx, testZone())
	if err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}

	tech := []string{"Orbital Farms"}
	updated, err := s.UpdateZone(ctx, created.ID, &ZonePatch{NotableTech: &tech})
	if err != nil {
		t.Fatalf("UpdateZone failed: %v", err)
	}
	if len(updated.NotableTech) != 1 || updated.NotableTech[0] != "Orbital Farms" {
		t.Errorf("NotableTech = %v, want [Orbital Farms]", updated.NotableTech)
	}
}

func TestUpdateZone_NotFound(t *testing.T) {
	s := newTestStorage(t)

	name := "Ghost Town"
	_, err := s.UpdateZone(context.Background(), 12345, &ZonePatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateZone error = %v, want ErrNotFound", err)
	}
}

func TestUpdateZone_EmptyPatch(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateZone(ctx, testZone())
	if err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}

	_, err = s.UpdateZone(ctx, created.ID, &ZonePatch{})
	if !errors.Is(err, ErrEmptyPatch) {
		t.Errorf("UpdateZone error = %v, want ErrEmptyPatch", err)
	}
}

func TestDeleteZone(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateZone(ctx, testZone())
	if err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}

	if err := s.DeleteZone(ctx, created.ID); err != nil {
		t.Fatalf("DeleteZone failed: %v", err)
	}

	_, err = s.GetZone(ctx, created.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetZone after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteZone_NotFound(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.CreateZone(ctx, testZone()); err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}

	if err := s.DeleteZone(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteZone(9999) error = %v, want ErrNotFound", err)
	}

	// The rest of the catalog is unaffected
	zones, err := s.ListZones(ctx)
	if err != nil {
		t.Fatalf("ListZones failed: %v", err)
	}
	if len(zones) != 1 {
		t.Errorf("expected 1 zone after failed delete, got %d", len(zones))
	}
}

func TestCountZones(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	count, err := s.CountZones(ctx)
	if err != nil {
		t.Fatalf("CountZones failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	if _, err := s.CreateZone(ctx, testZone()); err != nil {
		t.Fatalf("CreateZone failed: %v", err)
	}

	count, err = s.CountZones(ctx)
	if err != nil {
		t.Fatalf("CountZones failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
