package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/rahat/streamvault/internal/apperror"
	"github.com/rahat/streamvault/internal/model"
	"github.com/rahat/streamvault/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` verifies at compile time that *DB implements the
// repository.UserRepository interface. If a method is missing, the compiler
// errors here instead of at some distant call site.
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user with an empty profile list.
//
// ID GENERATION WITH xid:
// xid generates globally unique IDs that are 20 chars, URL-safe, and sortable
// by creation time. Example: "cv37rs3pp9olc6atsptg".
//
// DUPLICATE EMAILS:
// The UNIQUE constraint on users.email is the source of truth — checking
// first and inserting after would leave a race window between the two
// statements. We insert unconditionally and translate the constraint
// violation into apperror.ErrConflict.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return apperror.Conflict("email already registered")
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	user.Profiles = []model.Profile{}
	return nil
}

// GetByID retrieves the full user record, profiles included.
func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.CreatedAt,
	)
	if err != nil {
		// sql.ErrNoRows is a sentinel, not a real failure — translate it to
		// the domain's NotFound so the handler can return 404.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	profiles, err := db.ListProfiles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Profiles = profiles

	return &u, nil
}

// GetByEmail looks up a user by exact email match. The comparison is
// case-sensitive: SQLite's = on TEXT is byte-wise, matching the stored
// string exactly. Profiles are not loaded — login only needs the hash.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, created_at
		 FROM users WHERE email = ?`,
		email,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	return &u, nil
}

// CreateProfile appends a new profile to the user's profile list.
//
// The generated xid is globally unique, which trivially satisfies the
// "unique within its owning user" invariant.
func (db *DB) CreateProfile(ctx context.Context, profile *model.Profile) error {
	profile.ID = xid.New().String()
	profile.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, name, avatar, is_kids, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Avatar,
		profile.IsKids,
		profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating profile: %w", err)
	}

	return nil
}

// ListProfiles returns the user's profiles in creation order.
//
// ORDER BY created_at, id: created_at has second precision, so two profiles
// created in the same second would tie. xid strings sort by creation time,
// which breaks the tie in insertion order.
func (db *DB) ListProfiles(ctx context.Context, userID string) ([]model.Profile, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, avatar, is_kids, created_at
		 FROM profiles
		 WHERE user_id = ?
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing profiles: %w", err)
	}
	// sql.Rows holds a pool connection until closed — never skip this.
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.IsKids, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating profiles: %w", err)
	}

	return profiles, nil
}

// GetProfile returns a profile by ID, whoever owns it. The service layer
// compares the owner against the caller to decide between not-found and
// forbidden.
func (db *DB) GetProfile(ctx context.Context, profileID string) (*model.Profile, error) {
	var p model.Profile

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, avatar, is_kids, created_at
		 FROM profiles WHERE id = ?`,
		profileID,
	).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.IsKids, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("profile", profileID)
		}
		return nil, fmt.Errorf("sqlite: getting profile %s: %w", profileID, err)
	}

	return &p, nil
}

// AddToWatchlist inserts a content ID into the profile's watchlist.
//
// INSERT OR IGNORE + the composite primary key give set semantics in a
// single atomic statement: a duplicate add hits the key and is ignored, so
// the same content ID can never appear twice.
func (db *DB) AddToWatchlist(ctx context.Context, profileID, contentID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO watchlist (profile_id, content_id, added_at)
		 VALUES (?, ?, ?)`,
		profileID, contentID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding to watchlist: %w", err)
	}
	return nil
}

// RemoveFromWatchlist removes a content ID from the profile's watchlist.
// DELETE of an absent row affects zero rows — that's the idempotent no-op
// the contract asks for, so RowsAffected is deliberately not checked.
func (db *DB) RemoveFromWatchlist(ctx context.Context, profileID, contentID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM watchlist WHERE profile_id = ? AND content_id = ?`,
		profileID, contentID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing from watchlist: %w", err)
	}
	return nil
}

// GetWatchlistIDs returns the content IDs in the profile's watchlist.
// No ORDER BY: watchlist order is explicitly not meaningful.
func (db *DB) GetWatchlistIDs(ctx context.Context, profileID string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT content_id FROM watchlist WHERE profile_id = ?`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading watchlist: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite: scanning watchlist row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating watchlist: %w", err)
	}

	return ids, nil
}
