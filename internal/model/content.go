package model

import "time"

// Content kind tags attached to search and watchlist results, so clients can
// tell a movie apart from a series in a mixed list.
const (
	KindMovie  = "movie"
	KindSeries = "series"
)

// Movie is a single catalog entry. Records are immutable after insertion —
// there are no update or delete endpoints for catalog content.
type Movie struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Genre       string    `json:"genre"       db:"genre"`
	Year        int       `json:"year"        db:"year"`
	Rating      float64   `json:"rating"      db:"rating"`
	ImageURL    string    `json:"image_url"   db:"image_url"`
	TrailerURL  string    `json:"trailer_url" db:"trailer_url"`
	Duration    int       `json:"duration"    db:"duration"` // minutes
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// Series is the episodic counterpart of Movie: season/episode counts instead
// of a runtime.
type Series struct {
	ID          string    `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Genre       string    `json:"genre"       db:"genre"`
	Year        int       `json:"year"        db:"year"`
	Rating      float64   `json:"rating"      db:"rating"`
	ImageURL    string    `json:"image_url"   db:"image_url"`
	TrailerURL  string    `json:"trailer_url" db:"trailer_url"`
	Seasons     int       `json:"seasons"     db:"seasons"`
	Episodes    int       `json:"episodes"    db:"episodes"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// ContentItem is a catalog entry tagged with its kind. Search results and
// hydrated watchlists are mixed lists, so every entry carries content_type.
//
// Exactly one of Duration (movies) or Seasons/Episodes (series) is
// meaningful; the omitempty tags keep the irrelevant fields out of the JSON.
type ContentItem struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Year        int       `json:"year"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"image_url"`
	TrailerURL  string    `json:"trailer_url"`
	Duration    int       `json:"duration,omitempty"`
	Seasons     int       `json:"seasons,omitempty"`
	Episodes    int       `json:"episodes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovieItem tags a movie for inclusion in a mixed content list.
func MovieItem(m Movie) ContentItem {
	return ContentItem{
		ID:          m.ID,
		ContentType: KindMovie,
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		Year:        m.Year,
		Rating:      m.Rating,
		ImageURL:    m.ImageURL,
		TrailerURL:  m.TrailerURL,
		Duration:    m.Duration,
		CreatedAt:   m.CreatedAt,
	}
}

// SeriesItem tags a series for inclusion in a mixed content list.
func SeriesItem(s Series) ContentItem {
	return ContentItem{
		ID:          s.ID,
		ContentType: KindSeries,
		Title:       s.Title,
		Description: s.Description,
		Genre:       s.Genre,
		Year:        s.Year,
		Rating:      s.Rating,
		ImageURL:    s.ImageURL,
		TrailerURL:  s.TrailerURL,
		Seasons:     s.Seasons,
		Episodes:    s.Episodes,
		CreatedAt:   s.CreatedAt,
	}
}
