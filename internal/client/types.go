// Package client provides an HTTP client for the dhaka2070 catalog API.
package client

import "time"

// Coords is a latitude/longitude pair.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Zone is one catalog entry as served by the API.
type Zone struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Coords              Coords    `json:"coords"`
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

// ZoneInput carries the fields for a create call. They are transmitted as
// multipart form values.
type ZoneInput struct {
	Name                string
	Description         string
	Lat                 float64
	Lng                 float64
	Population          int64
	PollutionIndex      float64
	CrimeRate           float64
	AIIntegrationLevel  float64
	DroneTrafficDensity float64
	CyberSecurityLevel  float64
	SmartInfraScore     float64
	EnergySource        string
	NotableTech         []string
}

// ZonePatch is a partial update. Nil fields are omitted from the request.
type ZonePatch struct {
	Name                *string   `json:"name,omitempty"`
	Description         *string   `json:"description,omitempty"`
	Coords              *Coords   `json:"coords,omitempty"`
	Image               *string   `json:"image,omitempty"`
	Population          *int64    `json:"population,omitempty"`
	PollutionIndex      *float64  `json:"pollutionIndex,omitempty"`
	CrimeRate           *float64  `json:"crimeRate,omitempty"`
	AIIntegrationLevel  *float64  `json:"aiIntegrationLevel,omitempty"`
	DroneTrafficDensity *float64  `json:"droneTrafficDensity,omitempty"`
	CyberSecurityLevel  *float64  `json:"cyberSecurityLevel,omitempty"`
	SmartInfraScore     *float64  `json:"smartInfraScore,omitempty"`
	EnergySource        *string   `json:"energySource,omitempty"`
	NotableTech         *[]string `json:"notableTech,omitempty"`
}

// Session is the identity returned by register and login.
type Session struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Dashboard is the protected admin overview.
type Dashboard struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	ZoneCount  int    `json:"zoneCount"`
	AdminCount int    `json:"adminCount"`
}
