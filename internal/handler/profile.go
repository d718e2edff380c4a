package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rahat/streamvault/internal/auth"
	"github.com/rahat/streamvault/internal/service"
)

// ProfileHandler exposes profile management and watchlist endpoints.
// Every route here is behind RequireAuth — profiles and watchlists are
// always scoped to the authenticated account.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type createProfileRequest struct {
	Name   string `json:"name" validate:"required"`
	Avatar string `json:"avatar"`
	IsKids bool   `json:"is_kids"`
}

// HandleCreateProfile appends a new viewing profile to the caller's account.
//
// HTTP: POST /api/profiles
// BODY: {"name": ..., "avatar"?: ..., "is_kids"?: ...}
func (h *ProfileHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req createProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.profiles.CreateProfile(r.Context(), userID, req.Name, req.Avatar, req.IsKids)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      profile.ID,
		"message": "Profile created successfully",
	})
}

// HandleListProfiles returns the caller's profiles in creation order.
//
// HTTP: GET /api/profiles
func (h *ProfileHandler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	profiles, err := h.profiles.ListProfiles(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// HandleAddToWatchlist adds a content ID to a profile's watchlist.
//
// HTTP: POST /api/watchlist/{profileID}/{contentID}
//
// Idempotent: adding something already on the list returns the same success
// response and changes nothing. 404 if the profile doesn't exist, 403 if it
// belongs to another account.
func (h *ProfileHandler) HandleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	profileID := chi.URLParam(r, "profileID")
	contentID := chi.URLParam(r, "contentID")

	if err := h.profiles.AddToWatchlist(r.Context(), userID, profileID, contentID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Added to watchlist"})
}

// HandleRemoveFromWatchlist removes a content ID from a profile's watchlist.
//
// HTTP: DELETE /api/watchlist/{profileID}/{contentID}
//
// Idempotent: removing something that isn't on the list is a success.
func (h *ProfileHandler) HandleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	profileID := chi.URLParam(r, "profileID")
	contentID := chi.URLParam(r, "contentID")

	if err := h.profiles.RemoveFromWatchlist(r.Context(), userID, profileID, contentID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Removed from watchlist"})
}

// HandleGetWatchlist returns the profile's watchlist hydrated into full
// catalog entries, each tagged with content_type.
//
// HTTP: GET /api/watchlist/{profileID}
func (h *ProfileHandler) HandleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	profileID := chi.URLParam(r, "profileID")

	items, err := h.profiles.GetWatchlist(r.Context(), userID, profileID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
