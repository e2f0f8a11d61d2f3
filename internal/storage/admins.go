package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// CreateAdmin creates a new administrator account with an already-hashed password.
// Returns ErrDuplicate if the username is taken.
func (s *SQLiteStorage) CreateAdmin(ctx context.Context, username, passwordHash string) (*Admin, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash) VALUES (?, ?)",
		username, passwordHash)
	if err != nil {
		// UNIQUE constraint violation: extended error code 2067,
		// base constraint error code 19
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.Code() == 2067 || (sqliteErr.Code()&0xFF) == sqlite3.SQLITE_CONSTRAINT {
				return nil, ErrDuplicate
			}
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get insert ID: %w", err)
	}

	return &Admin{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
	}, nil
}

// GetAdminByUsername retrieves an administrator account by username.
// This is used during login to look up the stored password hash.
// Returns ErrNotFound if the username doesn't exist.
func (s *SQLiteStorage) GetAdminByUsername(ctx context.Context, username string) (*Admin, error) {
	var a Admin

	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = ?",
		username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}

	return &a, nil
}

// GetAdminByID retrieves an administrator account by ID.
// Returns ErrNotFound if the ID doesn't exist.
func (s *SQLiteStorage) GetAdminByID(ctx context.Context, id int64) (*Admin, error) {
	var a Admin

	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM admins WHERE id = ?",
		id).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by ID: %w", err)
	}

	return &a, nil
}

// CountAdmins returns the number of administrator accounts.
func (s *SQLiteStorage) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
