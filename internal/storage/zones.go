package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const zoneColumns = `id, name, description, lat, lng, image, population,
	pollution_index, crime_rate, ai_integration_level, drone_traffic_density,
	cyber_security_level, smart_infra_score, energy_source, notable_tech, created_at`

// CreateZone inserts a new zone and returns it with its assigned ID
// and creation timestamp populated.
func (s *SQLiteStorage) CreateZone(ctx context.Context, z *Zone) (*Zone, error) {
	techJSON, err := marshalStringArray(z.NotableTech)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notable tech: %w", err)
	}

	createdAt := time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO zones (name, description, lat, lng, image, population,
			pollution_index, crime_rate, ai_integration_level, drone_traffic_density,
			cyber_security_level, smart_infra_score, energy_source, notable_tech, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		z.Name, z.Description, z.Lat, z.Lng, z.Image, z.Population,
		z.PollutionIndex, z.CrimeRate, z.AIIntegrationLevel, z.DroneTrafficDensity,
		z.CyberSecurityLevel, z.SmartInfraScore, z.EnergySource, string(techJSON), createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert ID: %w", err)
	}

	created := *z
	created.ID = id
	created.CreatedAt = createdAt
	if created.NotableTech == nil {
		created.NotableTech = []string{}
	}
	return &created, nil
}

// GetZone retrieves a zone by ID.
// Returns ErrNotFound if the ID doesn't exist.
func (s *SQLiteStorage) GetZone(ctx context.Context, id int64) (*Zone, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+zoneColumns+" FROM zones WHERE id = ?", id)

	z, err := scanZone(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	return z, nil
}

// ListZones returns every zone in store order.
// Returns an empty slice if the catalog is empty.
func (s *SQLiteStorage) ListZones(ctx context.Context) ([]*Zone, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+zoneColumns+" FROM zones ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var zones []*Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone row: %w", err)
		}
		zones = append(zones, z)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zones: %w", err)
	}

	if zones == nil {
		zones = make([]*Zone, 0)
	}

	return zones, nil
}

// UpdateZone applies a partial update to a zone and returns the updated row.
// Nil patch fields are left unchanged. Returns ErrNotFound if the ID doesn't
// exist and ErrEmptyPatch if no fields are set.
func (s *SQLiteStorage) UpdateZone(ctx context.Context, id int64, patch *ZonePatch) (*Zone, error) {
	var (
		sets []string
		args []any
	)

	appendSet := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Lat != nil {
		appendSet("lat", *patch.Lat)
	}
	if patch.Lng != nil {
		appendSet("lng", *patch.Lng)
	}
	if patch.Image != nil {
		appendSet("image", *patch.Image)
	}
	if patch.Population != nil {
		appendSet("population", *patch.Population)
	}
	if patch.PollutionIndex != nil {
		appendSet("pollution_index", *patch.PollutionIndex)
	}
	if patch.CrimeRate != nil {
		appendSet("crime_rate", *patch.CrimeRate)
	}
	if patch.AIIntegrationLevel != nil {
		appendSet("ai_integration_level", *patch.AIIntegrationLevel)
	}
	if patch.DroneTrafficDensity != nil {
		appendSet("drone_traffic_density", *patch.DroneTrafficDensity)
	}
	if patch.CyberSecurityLevel != nil {
		appendSet("cyber_security_level", *patch.CyberSecurityLevel)
	}
	if patch.SmartInfraScore != nil {
		appendSet("smart_infra_score", *patch.SmartInfraScore)
	}
	if patch.EnergySource != nil {
		appendSet("energy_source", *patch.EnergySource)
	}
	if patch.NotableTech != nil {
		techJSON, err := marshalStringArray(*patch.NotableTech)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notable tech: %w", err)
		}
		appendSet("notable_tech", string(techJSON))
	}

	if len(sets) == 0 {
		return nil, ErrEmptyPatch
	}

	query := "UPDATE zones SET " + joinSets(sets) + " WHERE id = ?"
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update zone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.GetZone(ctx, id)
}

// DeleteZone deletes a zone by ID.
// Returns ErrNotFound if the ID doesn't exist.
func (s *SQLiteStorage) DeleteZone(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM zones WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountZones returns the number of zones in the catalog.
func (s *SQLiteStorage) CountZones(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM zones").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count zones: %w", err)
	}
	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanZone.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanZone(row rowScanner) (*Zone, error) {
	var z Zone
	var techJSON string

	err := row.Scan(&z.ID, &z.Name, &z.Description, &z.Lat, &z.Lng, &z.Image,
		&z.Population, &z.PollutionIndex, &z.CrimeRate, &z.AIIntegrationLevel,
		&z.DroneTrafficDensity, &z.CyberSecurityLevel, &z.SmartInfraScore,
		&z.EnergySource, &techJSON, &z.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalStringArray(techJSON, &z.NotableTech); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notable tech: %w", err)
	}
	if z.NotableTech == nil {
		z.NotableTech = []string{}
	}

	return &z, nil
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}

// marshalStringArray is a helper to marshal a string array to JSON.
func marshalStringArray(arr []string) ([]byte, error) {
	if arr == nil {
		arr = []string{}
	}
	return json.Marshal(arr)
}

// unmarshalStringArray is a helper to unmarshal a JSON string array.
func unmarshalStringArray(data string, arr *[]string) error {
	return json.Unmarshal([]byte(data), arr)
}
