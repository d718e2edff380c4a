package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rahat/streamvault/internal/model"
	"github.com/rahat/streamvault/internal/service"
)

// CatalogHandler exposes the movie/series catalog and search.
//
// Reads are public; writes sit behind RequireAuth in the router. Any
// authenticated user may add catalog entries — the trust model is flat.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

type movieRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"       validate:"required"`
	Year        int     `json:"year"        validate:"required"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
	TrailerURL  string  `json:"trailer_url"`
	Duration    int     `json:"duration"    validate:"required"` // minutes
}

type seriesRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"       validate:"required"`
	Year        int     `json:"year"        validate:"required"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
	TrailerURL  string  `json:"trailer_url"`
	Seasons     int     `json:"seasons"     validate:"required"`
	Episodes    int     `json:"episodes"    validate:"required"`
}

// HandleListMovies lists movies with an optional exact-match genre filter.
//
// HTTP: GET /api/movies?genre=Sci-Fi&limit=20
//
// limit defaults to 20 and is capped at 100 by the service. There is no
// pagination cursor; ordering across repeated calls is not guaranteed.
func (h *CatalogHandler) HandleListMovies(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	limit := queryInt(r, "limit")

	movies, err := h.catalog.ListMovies(r.Context(), genre, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movies)
}

// HandleGetMovie returns a single movie by ID.
//
// HTTP: GET /api/movies/{id} → 404 if unknown.
func (h *CatalogHandler) HandleGetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.catalog.GetMovie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// HandleAddMovie stores a new movie.
//
// HTTP: POST /api/movies
// Auth: Required.
func (h *CatalogHandler) HandleAddMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.catalog.AddMovie(r.Context(), &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Year:        req.Year,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
		TrailerURL:  req.TrailerURL,
		Duration:    req.Duration,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      movie.ID,
		"message": "Movie added successfully",
	})
}

// HandleListSeries lists series with an optional exact-match genre filter.
//
// HTTP: GET /api/series?genre=&limit=
func (h *CatalogHandler) HandleListSeries(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	limit := queryInt(r, "limit")

	series, err := h.catalog.ListSeries(r.Context(), genre, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// HandleGetSeries returns a single series by ID.
//
// HTTP: GET /api/series/{id} → 404 if unknown.
func (h *CatalogHandler) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.catalog.GetSeries(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// HandleAddSeries stores a new series.
//
// HTTP: POST /api/series
// Auth: Required.
func (h *CatalogHandler) HandleAddSeries(w http.ResponseWriter, r *http.Request) {
	var req seriesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	series, err := h.catalog.AddSeries(r.Context(), &model.Series{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Year:        req.Year,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
		TrailerURL:  req.TrailerURL,
		Seasons:     req.Seasons,
		Episodes:    req.Episodes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      series.ID,
		"message": "Series added successfully",
	})
}

// HandleSearch searches the catalog by keyword.
//
// HTTP: GET /api/search?q=inception&content_type=movies
//
// content_type narrows to one kind ("movies" or "series"); omitted, both
// are searched. Movie results precede series results; each kind is capped
// at 10 matches.
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	kind := r.URL.Query().Get("content_type")

	results, err := h.catalog.Search(r.Context(), query, kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// queryInt parses an integer query parameter, returning 0 (meaning "use the
// default") when absent or malformed.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
