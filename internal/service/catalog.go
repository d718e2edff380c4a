package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rahat/streamvault/internal/apperror"
	"github.com/rahat/streamvault/internal/model"
	"github.com/rahat/streamvault/internal/repository"
)

// Validation and paging constants for the catalog.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	DefaultListLimit     = 20
	MaxListLimit         = 100
	SearchLimitPerKind   = 10
)

// Search kind filters, matching the content_type query parameter on the
// wire. Any other value matches nothing — callers get an empty result, not
// an error, same as the system this replaces.
const (
	SearchKindMovies = "movies"
	SearchKindSeries = "series"
)

// CatalogService handles business logic for the movie/series catalog.
type CatalogService struct {
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(catalog repository.CatalogRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		logger:  logger,
	}
}

// ListMovies returns up to limit movies (default 20, capped at 100),
// optionally filtered by exact genre match.
func (s *CatalogService) ListMovies(ctx context.Context, genre string, limit int) ([]model.Movie, error) {
	movies, err := s.catalog.ListMovies(ctx, repository.ContentFilter{
		Genre: strings.TrimSpace(genre),
		Limit: clampListLimit(limit),
	})
	if err != nil {
		s.logger.Error("failed to list movies", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing movies: %w", err)
	}
	return movies, nil
}

// GetMovie retrieves one movie. Returns apperror.ErrNotFound if absent.
func (s *CatalogService) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "movie ID is required")
	}
	return s.catalog.GetMovie(ctx, id)
}

// AddMovie validates and stores a new movie. Any authenticated user may add
// catalog entries — the trust model is flat, with no editor role.
func (s *CatalogService) AddMovie(ctx context.Context, movie *model.Movie) (*model.Movie, error) {
	if err := validateContent(movie.Title, movie.Description, movie.Rating); err != nil {
		return nil, err
	}
	movie.Title = strings.TrimSpace(movie.Title)

	if err := s.catalog.CreateMovie(ctx, movie); err != nil {
		s.logger.Error("failed to create movie",
			slog.String("title", movie.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating movie: %w", err)
	}

	s.logger.Info("movie added",
		slog.String("id", movie.ID),
		slog.String("title", movie.Title),
	)
	return movie, nil
}

// ListSeries returns up to limit series, optionally filtered by exact genre.
func (s *CatalogService) ListSeries(ctx context.Context, genre string, limit int) ([]model.Series, error) {
	series, err := s.catalog.ListSeries(ctx, repository.ContentFilter{
		Genre: strings.TrimSpace(genre),
		Limit: clampListLimit(limit),
	})
	if err != nil {
		s.logger.Error("failed to list series", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing series: %w", err)
	}
	return series, nil
}

// GetSeries retrieves one series. Returns apperror.ErrNotFound if absent.
func (s *CatalogService) GetSeries(ctx context.Context, id string) (*model.Series, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "series ID is required")
	}
	return s.catalog.GetSeries(ctx, id)
}

// AddSeries validates and stores a new series.
func (s *CatalogService) AddSeries(ctx context.Context, series *model.Series) (*model.Series, error) {
	if err := validateContent(series.Title, series.Description, series.Rating); err != nil {
		return nil, err
	}
	series.Title = strings.TrimSpace(series.Title)

	if err := s.catalog.CreateSeries(ctx, series); err != nil {
		s.logger.Error("failed to create series",
			slog.String("title", series.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating series: %w", err)
	}

	s.logger.Info("series added",
		slog.String("id", series.ID),
		slog.String("title", series.Title),
	)
	return series, nil
}

// Search matches query case-insensitively as a substring of title,
// description, or genre, independently for movies and series.
//
// kind narrows the search: "movies" or "series" searches one table, ""
// searches both. Each kind is capped at 10 results, and movie results always
// precede series results in the combined list.
func (s *CatalogService) Search(ctx context.Context, query, kind string) ([]model.ContentItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.ValidationFailed("q", "search query is required")
	}

	results := []model.ContentItem{}

	if kind == "" || kind == SearchKindMovies {
		movies, err := s.catalog.SearchMovies(ctx, query, SearchLimitPerKind)
		if err != nil {
			return nil, fmt.Errorf("searching movies: %w", err)
		}
		for _, m := range movies {
			results = append(results, model.MovieItem(m))
		}
	}

	if kind == "" || kind == SearchKindSeries {
		series, err := s.catalog.SearchSeries(ctx, query, SearchLimitPerKind)
		if err != nil {
			return nil, fmt.Errorf("searching series: %w", err)
		}
		for _, sr := range series {
			results = append(results, model.SeriesItem(sr))
		}
	}

	return results, nil
}

func validateContent(title, description string, rating float64) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if len(description) > MaxDescriptionLength {
		return apperror.ValidationFailed("description",
			fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength))
	}
	if rating < 0 || rating > 5 {
		return apperror.ValidationFailed("rating", "rating must be between 0 and 5")
	}
	return nil
}

// clampListLimit applies the default page size and the hard cap, so callers
// can't request the entire catalog in one response.
func clampListLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
