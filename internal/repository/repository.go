// Package repository declares the storage interfaces the service layer
// programs against. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/rahat/streamvault/internal/model"
)

// ContentFilter narrows catalog listings.
// An empty Genre means "no genre filter". Limit <= 0 falls back to the
// repository default (20); the repository clamps it to at most 100.
type ContentFilter struct {
	Genre string
	Limit int
}

// UserRepository persists accounts, their profile lists, and per-profile
// watchlists. Profiles and watchlists hang off the user record, so they live
// behind the same interface — mirroring the single users collection they map
// to conceptually.
type UserRepository interface {
	// Create inserts a new user and fills in ID and CreatedAt.
	// Returns apperror.ErrConflict if the email is already registered.
	Create(ctx context.Context, user *model.User) error
	// GetByID returns the full user record including profiles, in creation order.
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByEmail looks up a user by exact (case-sensitive) email match.
	// Profiles are not loaded. Returns apperror.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateProfile appends a profile to the user's profile list, filling in
	// ID and CreatedAt.
	CreateProfile(ctx context.Context, profile *model.Profile) error
	// ListProfiles returns the user's profiles in creation order.
	ListProfiles(ctx context.Context, userID string) ([]model.Profile, error)
	// GetProfile returns a profile by its ID regardless of owner, so callers
	// can distinguish "no such profile" from "someone else's profile".
	GetProfile(ctx context.Context, profileID string) (*model.Profile, error)

	// AddToWatchlist inserts contentID into the profile's watchlist.
	// Idempotent: adding an already-present ID is a no-op.
	AddToWatchlist(ctx context.Context, profileID, contentID string) error
	// RemoveFromWatchlist removes contentID from the profile's watchlist.
	// Idempotent: removing an absent ID is a no-op.
	RemoveFromWatchlist(ctx context.Context, profileID, contentID string) error
	// GetWatchlistIDs returns the content IDs in the profile's watchlist.
	// Order is not semantically meaningful.
	GetWatchlistIDs(ctx context.Context, profileID string) ([]string, error)
}

// CatalogRepository persists movies and series and answers the filtered,
// searched, and id-set queries the API needs.
type CatalogRepository interface {
	// CreateMovie inserts a movie and fills in ID and CreatedAt.
	CreateMovie(ctx context.Context, movie *model.Movie) error
	// GetMovie returns a movie by ID or apperror.ErrNotFound.
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	// ListMovies returns up to filter.Limit movies, optionally restricted to
	// an exact genre match. Ordering is not guaranteed stable across calls.
	ListMovies(ctx context.Context, filter ContentFilter) ([]model.Movie, error)

	// CreateSeries inserts a series and fills in ID and CreatedAt.
	CreateSeries(ctx context.Context, series *model.Series) error
	// GetSeries returns a series by ID or apperror.ErrNotFound.
	GetSeries(ctx context.Context, id string) (*model.Series, error)
	// ListSeries is ListMovies for series.
	ListSeries(ctx context.Context, filter ContentFilter) ([]model.Series, error)

	// SearchMovies matches the query case-insensitively as a substring of
	// title, description, or genre. At most limit results.
	SearchMovies(ctx context.Context, query string, limit int) ([]model.Movie, error)
	// SearchSeries is SearchMovies for series.
	SearchSeries(ctx context.Context, query string, limit int) ([]model.Series, error)

	// MoviesByIDs returns the movies whose IDs appear in ids; unknown IDs are
	// silently skipped. Used for watchlist hydration.
	MoviesByIDs(ctx context.Context, ids []string) ([]model.Movie, error)
	// SeriesByIDs is MoviesByIDs for series.
	SeriesByIDs(ctx context.Context, ids []string) ([]model.Series, error)
}
