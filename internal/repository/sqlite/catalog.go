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

// compile-time check that *DB implements repository.CatalogRepository
var _ repository.CatalogRepository = (*DB)(nil)

// Listing limits. The default matches the API contract (20); the cap keeps a
// single request from dragging the whole catalog across the wire.
const (
	defaultListLimit = 20
	maxListLimit     = 100
)

const movieColumns = `id, title, description, genre, year, rating, image_url, trailer_url, duration, created_at`
const seriesColumns = `id, title, description, genre, year, rating, image_url, trailer_url, seasons, episodes, created_at`

// CreateMovie inserts a movie. Catalog records are immutable after this —
// there is no update or delete path.
func (db *DB) CreateMovie(ctx context.Context, movie *model.Movie) error {
	movie.ID = xid.New().String()
	movie.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO movies (`+movieColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Year,
		movie.Rating,
		movie.ImageURL,
		movie.TrailerURL,
		movie.Duration,
		movie.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating movie: %w", err)
	}

	return nil
}

// GetMovie retrieves a single movie by its ID.
func (db *DB) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	var m model.Movie

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`,
		id,
	).Scan(
		&m.ID, &m.Title, &m.Description, &m.Genre, &m.Year, &m.Rating,
		&m.ImageURL, &m.TrailerURL, &m.Duration, &m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("movie", id)
		}
		return nil, fmt.Errorf("sqlite: getting movie %s: %w", id, err)
	}

	return &m, nil
}

// ListMovies returns up to filter.Limit movies, optionally restricted to an
// exact genre match. No ORDER BY — like the original store, listing order is
// whatever iteration order the engine picks, and the contract does not
// promise stability.
func (db *DB) ListMovies(ctx context.Context, filter repository.ContentFilter) ([]model.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`
	args := []any{}
	if filter.Genre != "" {
		query += ` WHERE genre = ?`
		args = append(args, filter.Genre)
	}
	query += ` LIMIT ?`
	args = append(args, clampLimit(filter.Limit))

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

// CreateSeries inserts a series.
func (db *DB) CreateSeries(ctx context.Context, series *model.Series) error {
	series.ID = xid.New().String()
	series.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO series (`+seriesColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		series.ID,
		series.Title,
		series.Description,
		series.Genre,
		series.Year,
		series.Rating,
		series.ImageURL,
		series.TrailerURL,
		series.Seasons,
		series.Episodes,
		series.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating series: %w", err)
	}

	return nil
}

// GetSeries retrieves a single series by its ID.
func (db *DB) GetSeries(ctx context.Context, id string) (*model.Series, error) {
	var s model.Series

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE id = ?`,
		id,
	).Scan(
		&s.ID, &s.Title, &s.Description, &s.Genre, &s.Year, &s.Rating,
		&s.ImageURL, &s.TrailerURL, &s.Seasons, &s.Episodes, &s.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("series", id)
		}
		return nil, fmt.Errorf("sqlite: getting series %s: %w", id, err)
	}

	return &s, nil
}

// ListSeries is ListMovies for the series table.
func (db *DB) ListSeries(ctx context.Context, filter repository.ContentFilter) ([]model.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series`
	args := []any{}
	if filter.Genre != "" {
		query += ` WHERE genre = ?`
		args = append(args, filter.Genre)
	}
	query += ` LIMIT ?`
	args = append(args, clampLimit(filter.Limit))

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing series: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

// SearchMovies matches the query case-insensitively as a substring of title,
// description, or genre.
//
// instr() (rather than LIKE) sidesteps wildcard characters in user input: a
// "%" in the query is matched literally instead of widening the search.
func (db *DB) SearchMovies(ctx context.Context, query string, limit int) ([]model.Movie, error) {
	q := strings.ToLower(query)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies
		 WHERE instr(lower(title), ?) > 0
		    OR instr(lower(description), ?) > 0
		    OR instr(lower(genre), ?) > 0
		 LIMIT ?`,
		q, q, q, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching movies: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

// SearchSeries is SearchMovies for the series table.
func (db *DB) SearchSeries(ctx context.Context, query string, limit int) ([]model.Series, error) {
	q := strings.ToLower(query)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series
		 WHERE instr(lower(title), ?) > 0
		    OR instr(lower(description), ?) > 0
		    OR instr(lower(genre), ?) > 0
		 LIMIT ?`,
		q, q, q, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching series: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

// MoviesByIDs returns the movies whose IDs appear in ids. Unknown IDs are
// skipped silently — a watchlist may reference content that was never a
// movie (it might be a series) or no longer resolves.
func (db *DB) MoviesByIDs(ctx context.Context, ids []string) ([]model.Movie, error) {
	if len(ids) == 0 {
		return []model.Movie{}, nil
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id IN (`+placeholders(len(ids))+`)`,
		toAnySlice(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: movies by ids: %w", err)
	}
	defer rows.Close()

	return scanMovies(rows)
}

// SeriesByIDs is MoviesByIDs for the series table.
func (db *DB) SeriesByIDs(ctx context.Context, ids []string) ([]model.Series, error) {
	if len(ids) == 0 {
		return []model.Series{}, nil
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+seriesColumns+` FROM series WHERE id IN (`+placeholders(len(ids))+`)`,
		toAnySlice(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: series by ids: %w", err)
	}
	defer rows.Close()

	return scanSeries(rows)
}

func scanMovies(rows *sql.Rows) ([]model.Movie, error) {
	movies := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.Genre, &m.Year, &m.Rating,
			&m.ImageURL, &m.TrailerURL, &m.Duration, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning movie row: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating movies: %w", err)
	}
	return movies, nil
}

func scanSeries(rows *sql.Rows) ([]model.Series, error) {
	series := []model.Series{}
	for rows.Next() {
		var s model.Series
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.Genre, &s.Year, &s.Rating,
			&s.ImageURL, &s.TrailerURL, &s.Seasons, &s.Episodes, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning series row: %w", err)
		}
		series = append(series, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating series: %w", err)
	}
	return series, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// placeholders builds "?, ?, ?" for an IN clause of n values.
// database/sql has no slice binding, so the placeholder list is assembled by
// hand — the values still go through parameters, never string concatenation.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toAnySlice(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
