package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/rahat/streamvault/internal/apperror"
	"github.com/rahat/streamvault/internal/model"
)

// newTestDB opens an in-memory database with the full schema applied.
// Each test gets its own — no shared state, no cleanup files.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "$2a$04$fakehashforrepositorytests",
		FullName:     "Test User",
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return user
}

func createTestProfile(t *testing.T, db *DB, userID, name string) *model.Profile {
	t.Helper()
	profile := &model.Profile{
		UserID: userID,
		Name:   name,
		Avatar: "default.png",
	}
	if err := db.CreateProfile(context.Background(), profile); err != nil {
		t.Fatalf("creating profile %s: %v", name, err)
	}
	return profile
}

func TestCreateUserFillsIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice@example.com")

	if user.ID == "" {
		t.Error("expected generated ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if user.Profiles == nil || len(user.Profiles) != 0 {
		t.Errorf("expected empty profile list, got %v", user.Profiles)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice@example.com")

	dup := &model.User{
		Email:        "alice@example.com",
		PasswordHash: "other-hash",
		FullName:     "Second Alice",
	}
	err := db.Create(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestGetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "alice@example.com")

	got, err := db.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, got.ID)
	}
	if got.PasswordHash != created.PasswordHash {
		t.Error("password hash not returned — login would break")
	}

	// Exact match only: a different casing is a different email.
	if _, err := db.GetByEmail(context.Background(), "ALICE@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound for different casing, got %v", err)
	}
}

func TestGetByIDIncludesProfiles(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice@example.com")
	createTestProfile(t, db, user.ID, "Kids")

	got, err := db.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(got.Profiles))
	}
	if got.Profiles[0].Name != "Kids" {
		t.Errorf("expected profile name Kids, got %s", got.Profiles[0].Name)
	}
}

func TestGetByIDUnknown(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.GetByID(context.Background(), "nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListProfilesCreationOrder(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice@example.com")

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		createTestProfile(t, db, user.ID, name)
	}

	profiles, err := db.ListProfiles(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(profiles) != len(names) {
		t.Fatalf("expected %d profiles, got %d", len(names), len(profiles))
	}
	for i, name := range names {
		if profiles[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, profiles[i].Name)
		}
	}
}

func TestListProfilesIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	createTestProfile(t, db, alice.ID, "Alice Main")
	createTestProfile(t, db, bob.ID, "Bob Main")

	profiles, err := db.ListProfiles(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "Alice Main" {
		t.Errorf("expected only Alice's profile, got %v", profiles)
	}
}

func TestGetProfileReturnsAnyOwner(t *testing.T) {
	db := newTestDB(t)
	bob := createTestUser(t, db, "bob@example.com")
	profile := createTestProfile(t, db, bob.ID, "Bob Main")

	got, err := db.GetProfile(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.UserID != bob.ID {
		t.Errorf("expected owner %s, got %s", bob.ID, got.UserID)
	}
}

func TestWatchlistSetSemantics(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice@example.com")
	profile := createTestProfile(t, db, user.ID, "Main")

	// Adding the same ID twice leaves one entry.
	for i := 0; i < 2; i++ {
		if err := db.AddToWatchlist(ctx, profile.ID, "content-1"); err != nil {
			t.Fatalf("AddToWatchlist: %v", err)
		}
	}
	if err := db.AddToWatchlist(ctx, profile.ID, "content-2"); err != nil {
		t.Fatalf("AddToWatchlist: %v", err)
	}

	ids, err := db.GetWatchlistIDs(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetWatchlistIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 entries after duplicate add, got %d: %v", len(ids), ids)
	}
}

func TestRemoveFromWatchlistIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice@example.com")
	profile := createTestProfile(t, db, user.ID, "Main")

	if err := db.AddToWatchlist(ctx, profile.ID, "content-1"); err != nil {
		t.Fatalf("AddToWatchlist: %v", err)
	}
	if err := db.RemoveFromWatchlist(ctx, profile.ID, "content-1"); err != nil {
		t.Fatalf("RemoveFromWatchlist: %v", err)
	}
	// Removing again is a no-op, not an error.
	if err := db.RemoveFromWatchlist(ctx, profile.ID, "content-1"); err != nil {
		t.Errorf("second remove should succeed: %v", err)
	}

	ids, err := db.GetWatchlistIDs(ctx, profile.ID)
	if err != nil {
		t.Fatalf("GetWatchlistIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty watchlist, got %v", ids)
	}
}
