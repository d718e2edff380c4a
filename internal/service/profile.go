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

// Validation constants for profiles.
const (
	MaxProfileNameLength = 50
	DefaultAvatar        = "default.png"
)

// ProfileService manages viewing profiles and their watchlists.
//
// It needs both repositories: profiles and watchlist membership live with
// the users, but hydrating a watchlist into actual content means hitting the
// catalog.
type ProfileService struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	logger  *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		users:   users,
		catalog: catalog,
		logger:  logger,
	}
}

// CreateProfile appends a new profile to the caller's account.
// An empty avatar falls back to the default image.
func (s *ProfileService) CreateProfile(ctx context.Context, userID, name, avatar string, isKids bool) (*model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "profile name is required")
	}
	if len(name) > MaxProfileNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("profile name must be %d characters or less", MaxProfileNameLength))
	}

	if avatar = strings.TrimSpace(avatar); avatar == "" {
		avatar = DefaultAvatar
	}

	profile := &model.Profile{
		UserID: userID,
		Name:   name,
		Avatar: avatar,
		IsKids: isKids,
	}
	if err := s.users.CreateProfile(ctx, profile); err != nil {
		s.logger.Error("failed to create profile",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	s.logger.Info("profile created",
		slog.String("userID", userID),
		slog.String("profileID", profile.ID),
	)

	return profile, nil
}

// ListProfiles returns the caller's profiles in creation order.
func (s *ProfileService) ListProfiles(ctx context.Context, userID string) ([]model.Profile, error) {
	profiles, err := s.users.ListProfiles(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list profiles",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

// AddToWatchlist inserts contentID into the profile's watchlist.
// Set semantics: adding an already-present ID leaves the watchlist unchanged.
func (s *ProfileService) AddToWatchlist(ctx context.Context, userID, profileID, contentID string) error {
	contentID = strings.TrimSpace(contentID)
	if contentID == "" {
		return apperror.ValidationFailed("content_id", "content ID is required")
	}

	if _, err := s.ownedProfile(ctx, userID, profileID); err != nil {
		return err
	}

	if err := s.users.AddToWatchlist(ctx, profileID, contentID); err != nil {
		return fmt.Errorf("adding to watchlist: %w", err)
	}

	s.logger.Info("watchlist add",
		slog.String("profileID", profileID),
		slog.String("contentID", contentID),
	)
	return nil
}

// RemoveFromWatchlist removes contentID from the profile's watchlist.
// Removing an absent ID is a no-op, not an error.
func (s *ProfileService) RemoveFromWatchlist(ctx context.Context, userID, profileID, contentID string) error {
	if _, err := s.ownedProfile(ctx, userID, profileID); err != nil {
		return err
	}

	if err := s.users.RemoveFromWatchlist(ctx, profileID, contentID); err != nil {
		return fmt.Errorf("removing from watchlist: %w", err)
	}

	s.logger.Info("watchlist remove",
		slog.String("profileID", profileID),
		slog.String("contentID", contentID),
	)
	return nil
}

// GetWatchlist resolves the profile's stored content IDs against the
// catalog. Each result carries its content kind; movies precede series, and
// the order within each kind is not meaningful. IDs that no longer resolve
// to catalog entries are skipped.
func (s *ProfileService) GetWatchlist(ctx context.Context, userID, profileID string) ([]model.ContentItem, error) {
	if _, err := s.ownedProfile(ctx, userID, profileID); err != nil {
		return nil, err
	}

	ids, err := s.users.GetWatchlistIDs(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("reading watchlist: %w", err)
	}

	movies, err := s.catalog.MoviesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating watchlist movies: %w", err)
	}
	series, err := s.catalog.SeriesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating watchlist series: %w", err)
	}

	items := make([]model.ContentItem, 0, len(movies)+len(series))
	for _, m := range movies {
		items = append(items, model.MovieItem(m))
	}
	for _, sr := range series {
		items = append(items, model.SeriesItem(sr))
	}

	return items, nil
}

// ownedProfile resolves profileID and enforces ownership.
//
// Unknown profile → ErrNotFound. Existing profile owned by a different user
// → ErrForbidden. Watchlist mutations used to silently no-op when the
// profile wasn't the caller's; the explicit check replaces that gap with a
// real authorization decision.
func (s *ProfileService) ownedProfile(ctx context.Context, userID, profileID string) (*model.Profile, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, apperror.ValidationFailed("profile_id", "profile ID is required")
	}

	profile, err := s.users.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		s.logger.Warn("profile access denied",
			slog.String("userID", userID),
			slog.String("profileID", profileID),
		)
		return nil, apperror.Forbidden("profile belongs to another account")
	}

	return profile, nil
}
