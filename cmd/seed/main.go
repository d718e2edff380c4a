// Seeds the database with sample catalog content for local development.
//
//	DB_PATH=data/streamvault.db go run ./cmd/seed
//
// Running it twice inserts the titles twice — it's a dev convenience, not a
// migration. Wipe the database file if you want a clean slate.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rahat/streamvault/internal/model"
	sqliteRepo "github.com/rahat/streamvault/internal/repository/sqlite"
)

var sampleMovies = []model.Movie{
	{
		Title:       "Inception",
		Description: "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.",
		Genre:       "Sci-Fi",
		Year:        2010,
		Rating:      4.8,
		Duration:    148,
	},
	{
		Title:       "The Dark Knight",
		Description: "Batman faces the Joker, a criminal mastermind who plunges Gotham into anarchy.",
		Genre:       "Action",
		Year:        2008,
		Rating:      4.9,
		Duration:    152,
	},
	{
		Title:       "Pulp Fiction",
		Description: "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.",
		Genre:       "Crime",
		Year:        1994,
		Rating:      4.7,
		Duration:    154,
	},
	{
		Title:       "Forrest Gump",
		Description: "The presidencies of Kennedy and Johnson, Vietnam, and other historical events unfold from the perspective of an Alabama man.",
		Genre:       "Drama",
		Year:        1994,
		Rating:      4.6,
		Duration:    142,
	},
	{
		Title:       "The Matrix",
		Description: "A computer hacker learns the true nature of his reality and his role in the war against its controllers.",
		Genre:       "Sci-Fi",
		Year:        1999,
		Rating:      4.8,
		Duration:    136,
	},
	{
		Title:       "Goodfellas",
		Description: "The story of Henry Hill and his life in the mob, covering his relationship with his wife and his mob partners.",
		Genre:       "Crime",
		Year:        1990,
		Rating:      4.7,
		Duration:    148,
	},
	{
		Title:       "The Shawshank Redemption",
		Description: "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		Genre:       "Drama",
		Year:        1994,
		Rating:      4.9,
		Duration:    142,
	},
	{
		Title:       "Fight Club",
		Description: "An insomniac office worker and a devil-may-care soap maker form an underground fight club.",
		Genre:       "Drama",
		Year:        1999,
		Rating:      4.5,
		Duration:    139,
	},
}

var sampleSeries = []model.Series{
	{
		Title:       "Breaking Bad",
		Description: "A chemistry teacher diagnosed with cancer turns to manufacturing methamphetamine to secure his family's future.",
		Genre:       "Crime",
		Year:        2008,
		Rating:      4.9,
		Seasons:     5,
		Episodes:    62,
	},
	{
		Title:       "Stranger Things",
		Description: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments and supernatural forces.",
		Genre:       "Sci-Fi",
		Year:        2016,
		Rating:      4.6,
		Seasons:     4,
		Episodes:    34,
	},
	{
		Title:       "The Office",
		Description: "A mockumentary on a group of typical office workers at a paper company in Scranton, Pennsylvania.",
		Genre:       "Comedy",
		Year:        2005,
		Rating:      4.7,
		Seasons:     9,
		Episodes:    201,
	},
	{
		Title:       "Game of Thrones",
		Description: "Nine noble families fight for control over the lands of Westeros while an ancient enemy returns.",
		Genre:       "Fantasy",
		Year:        2011,
		Rating:      4.5,
		Seasons:     8,
		Episodes:    73,
	},
	{
		Title:       "The Crown",
		Description: "Follows the political rivalries and romance of Queen Elizabeth II's reign and the events that shaped Britain.",
		Genre:       "Drama",
		Year:        2016,
		Rating:      4.4,
		Seasons:     6,
		Episodes:    60,
	},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/streamvault.db"
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("creating database directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	db, err := sqliteRepo.New(dbPath)
	if err != nil {
		logger.Error("opening database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	for i := range sampleMovies {
		if err := db.CreateMovie(ctx, &sampleMovies[i]); err != nil {
			logger.Error("inserting movie",
				slog.String("title", sampleMovies[i].Title),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	for i := range sampleSeries {
		if err := db.CreateSeries(ctx, &sampleSeries[i]); err != nil {
			logger.Error("inserting series",
				slog.String("title", sampleSeries[i].Title),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("seed complete",
		slog.Int("movies", len(sampleMovies)),
		slog.Int("series", len(sampleSeries)),
		slog.String("database", dbPath),
	)
}
