package storage

import "time"

// Zone represents one catalog entry: a city of the 2070 skyline.
type Zone struct {
	ID                  int64
	Name                string
	Description         string
	Lat                 float64
	Lng                 float64
	Image               string
	Population          int64
	PollutionIndex      float64
	CrimeRate           float64
	AIIntegrationLevel  float64
	DroneTrafficDensity float64
	CyberSecurityLevel  float64
	SmartInfraScore     float64
	EnergySource        string
	NotableTech         []string
	CreatedAt           time.Time
}

// ZonePatch is a partial update of a Zone. Nil fields are left unchanged;
// non-nil fields overwrite the stored value.
type ZonePatch struct {
	Name                *string
	Description         *string
	Lat                 *float64
	Lng                 *float64
	Image               *string
	Population          *int64
	PollutionIndex      *float64
	CrimeRate           *float64
	AIIntegrationLevel  *float64
	DroneTrafficDensity *float64
	CyberSecurityLevel  *float64
	SmartInfraScore     *float64
	EnergySource        *string
	NotableTech         *[]string
}

// Admin represents one authorized administrator account.
// PasswordHash is a bcrypt hash; the plaintext password is never stored.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
