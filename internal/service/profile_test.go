package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rahat/streamvault/internal/apperror"
	"github.com/rahat/streamvault/internal/model"
)

func seedUser(t *testing.T, users *fakeUserRepo, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash", FullName: "Test"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedProfile(t *testing.T, users *fakeUserRepo, userID, name string) *model.Profile {
	t.Helper()
	profile := &model.Profile{UserID: userID, Name: name, Avatar: "default.png"}
	if err := users.CreateProfile(context.Background(), profile); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	return profile
}

func TestCreateProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users, newFakeCatalogRepo(), discardLogger)
	owner := seedUser(t, users, "alice@example.com")

	profile, err := svc.CreateProfile(context.Background(), owner.ID, "Kids", "", true)
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if profile.ID == "" {
		t.Error("expected generated profile ID")
	}
	if profile.Avatar != DefaultAvatar {
		t.Errorf("empty avatar should fall back to %q, got %q", DefaultAvatar, profile.Avatar)
	}
	if !profile.IsKids {
		t.Error("expected IsKids to be preserved")
	}
}

func TestCreateProfileValidation(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users, newFakeCatalogRepo(), discardLogger)
	owner := seedUser(t, users, "alice@example.com")
	ctx := context.Background()

	if _, err := svc.CreateProfile(ctx, owner.ID, "   ", "", false); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("blank name: expected ErrValidation, got %v", err)
	}

	long := strings.Repeat("x", MaxProfileNameLength+1)
	if _, err := svc.CreateProfile(ctx, owner.ID, long, "", false); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("overlong name: expected ErrValidation, got %v", err)
	}
}

func TestWatchlistOwnership(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users, newFakeCatalogRepo(), discardLogger)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@example.com")
	bob := seedUser(t, users, "bob@example.com")
	bobProfile := seedProfile(t, users, bob.ID, "Bob Main")

	// Another account's profile → 403, and nothing is written.
	err := svc.AddToWatchlist(ctx, alice.ID, bobProfile.ID, "content-1")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if ids, _ := users.GetWatchlistIDs(ctx, bobProfile.ID); len(ids) != 0 {
		t.Errorf("forbidden add must not mutate the watchlist, got %v", ids)
	}

	// Unknown profile → 404, not 403.
	err = svc.AddToWatchlist(ctx, alice.ID, "no-such-profile", "content-1")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Same rules on remove and read.
	if err := svc.RemoveFromWatchlist(ctx, alice.ID, bobProfile.ID, "content-1"); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("remove: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetWatchlist(ctx, alice.ID, bobProfile.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("get: expected ErrForbidden, got %v", err)
	}
}

func TestWatchlistAddRemove(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewProfileService(users, newFakeCatalogRepo(), discardLogger)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@example.com")
	profile := seedProfile(t, users, alice.ID, "Main")

	if err := svc.AddToWatchlist(ctx, alice.ID, profile.ID, "content-1"); err != nil {
		t.Fatalf("AddToWatchlist: %v", err)
	}
	// Duplicate add is a silent success.
	if err := svc.AddToWatchlist(ctx, alice.ID, profile.ID, "content-1"); err != nil {
		t.Fatalf("duplicate AddToWatchlist: %v", err)
	}
	ids, _ := users.GetWatchlistIDs(ctx, profile.ID)
	if len(ids) != 1 {
		t.Errorf("expected 1 entry after duplicate add, got %d", len(ids))
	}

	if err := svc.RemoveFromWatchlist(ctx, alice.ID, profile.ID, "content-1"); err != nil {
		t.Fatalf("RemoveFromWatchlist: %v", err)
	}
	// Removing an absent ID is also a success.
	if err := svc.RemoveFromWatchlist(ctx, alice.ID, profile.ID, "content-1"); err != nil {
		t.Errorf("second remove should succeed: %v", err)
	}

	if err := svc.AddToWatchlist(ctx, alice.ID, profile.ID, ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("empty content ID: expected ErrValidation, got %v", err)
	}
}

func TestGetWatchlistHydration(t *testing.T) {
	users := newFakeUserRepo()
	catalog := newFakeCatalogRepo()
	svc := NewProfileService(users, catalog, discardLogger)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@example.com")
	profile := seedProfile(t, users, alice.ID, "Main")

	movie := &model.Movie{Title: "Inception", Genre: "Sci-Fi", Duration: 148}
	if err := catalog.CreateMovie(ctx, movie); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	series := &model.Series{Title: "Breaking Bad", Genre: "Crime", Seasons: 5, Episodes: 62}
	if err := catalog.CreateSeries(ctx, series); err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}

	for _, id := range []string{movie.ID, series.ID, "dangling-id"} {
		if err := svc.AddToWatchlist(ctx, alice.ID, profile.ID, id); err != nil {
			t.Fatalf("AddToWatchlist(%s): %v", id, err)
		}
	}

	items, err := svc.GetWatchlist(ctx, alice.ID, profile.ID)
	if err != nil {
		t.Fatalf("GetWatchlist: %v", err)
	}

	// The dangling ID resolves to nothing and is dropped.
	if len(items) != 2 {
		t.Fatalf("expected 2 hydrated items, got %d", len(items))
	}

	// Movies come before series in the combined list.
	if items[0].ContentType != model.KindMovie {
		t.Errorf("expected movie first, got %s", items[0].ContentType)
	}
	if items[1].ContentType != model.KindSeries {
		t.Errorf("expected series second, got %s", items[1].ContentType)
	}
	if items[0].Duration != 148 {
		t.Errorf("expected movie duration 148, got %d", items[0].Duration)
	}
	if items[1].Seasons != 5 || items[1].Episodes != 62 {
		t.Errorf("series counts lost in hydration: %+v", items[1])
	}
}
