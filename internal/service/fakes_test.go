package service

// Hand-written fakes for the repository interfaces. They store everything in
// maps, so service tests run without a database and each test controls its
// data exactly.

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/rahat/streamvault/internal/apperror"
	"github.com/rahat/streamvault/internal/model"
	"github.com/rahat/streamvault/internal/repository"
)

// discardLogger keeps service log output out of test runs.
var discardLogger = slog.New(slog.DiscardHandler)

type fakeUserRepo struct {
	users     map[string]*model.User    // by ID
	byEmail   map[string]*model.User    // by email
	profiles  map[string]*model.Profile // by ID
	watchlist map[string]map[string]bool
	nextID    int

	// forcedErr, when set, is returned by every method. Used to test the
	// service's error wrapping.
	forcedErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     map[string]*model.User{},
		byEmail:   map[string]*model.User{},
		profiles:  map[string]*model.Profile{},
		watchlist: map[string]map[string]bool{},
	}
}

func (f *fakeUserRepo) genID(prefix string) string {
	f.nextID++
	return prefix + "-" + strconv.Itoa(f.nextID)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return apperror.Conflict("email already registered")
	}
	user.ID = f.genID("user")
	user.CreatedAt = time.Now()
	user.Profiles = []model.Profile{}
	f.users[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	profiles, _ := f.ListProfiles(ctx, id)
	copied := *user
	copied.Profiles = profiles
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	return user, nil
}

func (f *fakeUserRepo) CreateProfile(ctx context.Context, profile *model.Profile) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	profile.ID = f.genID("profile")
	profile.CreatedAt = time.Now()
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeUserRepo) ListProfiles(ctx context.Context, userID string) ([]model.Profile, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []model.Profile{}
	// map iteration order doesn't matter for these tests
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, profileID string) (*model.Profile, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, apperror.NotFound("profile", profileID)
	}
	return p, nil
}

func (f *fakeUserRepo) AddToWatchlist(ctx context.Context, profileID, contentID string) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if f.watchlist[profileID] == nil {
		f.watchlist[profileID] = map[string]bool{}
	}
	f.watchlist[profileID][contentID] = true
	return nil
}

func (f *fakeUserRepo) RemoveFromWatchlist(ctx context.Context, profileID, contentID string) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	delete(f.watchlist[profileID], contentID)
	return nil
}

func (f *fakeUserRepo) GetWatchlistIDs(ctx context.Context, profileID string) ([]string, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	ids := []string{}
	for id := range f.watchlist[profileID] {
		ids = append(ids, id)
	}
	return ids, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

type fakeCatalogRepo struct {
	movies map[string]*model.Movie
	series map[string]*model.Series
	nextID int

	// searchMovieResults/searchSeriesResults, when non-nil, are returned
	// verbatim from the search methods so tests control ordering and caps.
	searchMovieResults  []model.Movie
	searchSeriesResults []model.Series

	forcedErr error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		movies: map[string]*model.Movie{},
		series: map[string]*model.Series{},
	}
}

func (f *fakeCatalogRepo) genID(prefix string) string {
	f.nextID++
	return prefix + "-" + strconv.Itoa(f.nextID)
}

func (f *fakeCatalogRepo) CreateMovie(ctx context.Context, movie *model.Movie) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	movie.ID = f.genID("movie")
	movie.CreatedAt = time.Now()
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeCatalogRepo) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	m, ok := f.movies[id]
	if !ok {
		return nil, apperror.NotFound("movie", id)
	}
	return m, nil
}

func (f *fakeCatalogRepo) ListMovies(ctx context.Context, filter repository.ContentFilter) ([]model.Movie, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []model.Movie{}
	for _, m := range f.movies {
		if filter.Genre != "" && m.Genre != filter.Genre {
			continue
		}
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeCatalogRepo) CreateSeries(ctx context.Context, series *model.Series) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	series.ID = f.genID("series")
	series.CreatedAt = time.Now()
	f.series[series.ID] = series
	return nil
}

func (f *fakeCatalogRepo) GetSeries(ctx context.Context, id string) (*model.Series, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	s, ok := f.series[id]
	if !ok {
		return nil, apperror.NotFound("series", id)
	}
	return s, nil
}

func (f *fakeCatalogRepo) ListSeries(ctx context.Context, filter repository.ContentFilter) ([]model.Series, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []model.Series{}
	for _, s := range f.series {
		if filter.Genre != "" && s.Genre != filter.Genre {
			continue
		}
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) SearchMovies(ctx context.Context, query string, limit int) ([]model.Movie, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if f.searchMovieResults != nil {
		if len(f.searchMovieResults) > limit {
			return f.searchMovieResults[:limit], nil
		}
		return f.searchMovieResults, nil
	}
	return []model.Movie{}, nil
}

func (f *fakeCatalogRepo) SearchSeries(ctx context.Context, query string, limit int) ([]model.Series, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	if f.searchSeriesResults != nil {
		if len(f.searchSeriesResults) > limit {
			return f.searchSeriesResults[:limit], nil
		}
		return f.searchSeriesResults, nil
	}
	return []model.Series{}, nil
}

func (f *fakeCatalogRepo) MoviesByIDs(ctx context.Context, ids []string) ([]model.Movie, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []model.Movie{}
	for _, id := range ids {
		if m, ok := f.movies[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) SeriesByIDs(ctx context.Context, ids []string) ([]model.Series, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	out := []model.Series{}
	for _, id := range ids {
		if s, ok := f.series[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.CatalogRepository = (*fakeCatalogRepo)(nil)
