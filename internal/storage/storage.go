// Package storage provides types and interfaces for SQLite persistence operations.
package storage

import (
	"context"
)

// Storage defines the interface for SQLite persistence operations.
type Storage interface {
	// Zone operations
	CreateZone(ctx context.Context, z *Zone) (*Zone, error)
	GetZone(ctx context.Context, id int64) (*Zone, error)
	ListZones(ctx context.Context) ([]*Zone, error)
	UpdateZone(ctx context.Context, id int64, patch *ZonePatch) (*Zone, error)
	DeleteZone(ctx context.Context, id int64) error
	CountZones(ctx context.Context) (int, error)

	// Admin account operations
	CreateAdmin(ctx context.Context, username, passwordHash string) (*Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*Admin, error)
	GetAdminByID(ctx context.Context, id int64) (*Admin, error)
	CountAdmins(ctx context.Context) (int, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
