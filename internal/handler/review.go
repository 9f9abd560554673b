package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/auth"
	"github.com/sakif/review-hub/internal/service"
)

// ReviewHandler exposes review reads and the owner-scoped mutations.
type ReviewHandler struct {
	reviewService *service.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

type reviewRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// HandleListForItem returns an item's reviews.
//
// HTTP: GET /items/{itemID}/reviews (RequireAuth)
func (h *ReviewHandler) HandleListForItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeError(w, apperror.NotFound("Item not found"))
		return
	}

	reviews, err := h.reviewService.ListForItem(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// HandleGet returns a single review with its comments.
//
// HTTP: GET /items/{itemID}/reviews/{reviewID}
func (h *ReviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeError(w, apperror.NotFound("Item not found"))
		return
	}
	reviewID, ok := idParam(r, "reviewID")
	if !ok {
		writeError(w, apperror.NotFound("Review not found"))
		return
	}

	review, err := h.reviewService.Get(r.Context(), itemID, reviewID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// HandleCreate posts the caller's review of an item.
//
// HTTP: POST /items/{itemID}/reviews (RequireAuth)
// 201 on success; 400 for a missing/out-of-range rating or missing
// content, and for a duplicate (user, item) review; 404 for an unknown
// item.
func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("Authentication token required"))
		return
	}

	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeError(w, apperror.NotFound("Item not found"))
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "Invalid JSON body"))
		return
	}

	review, err := h.reviewService.Create(r.Context(), identity, itemID, req.Content, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// HandleListMine returns the caller's own reviews.
//
// HTTP: GET /reviews/me (RequireAuth)
func (h *ReviewHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("Authentication token required"))
		return
	}

	reviews, err := h.reviewService.ListMine(r.Context(), identity)
	if err != nil {
		h.logger.Error("listing own reviews failed",
			slog.Int64("userID", identity.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// HandleUpdate edits a review under the owner-scoped path.
//
// HTTP: PUT /users/{userID}/reviews/{reviewID} (RequireAuth)
// 403 when the caller is not the path's user; 404 when no review with that
// id belongs to them.
func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("Authentication token required"))
		return
	}

	// A non-numeric user segment can never match the caller's id, so it is
	// the same ownership mismatch a wrong id would be.
	pathUserID, ok := idParam(r, "userID")
	if !ok {
		writeError(w, apperror.Forbidden("You are not authorized to perform this action"))
		return
	}
	reviewID, ok := idParam(r, "reviewID")
	if !ok {
		writeError(w, apperror.NotFound("Review not found"))
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "Invalid JSON body"))
		return
	}

	review, err := h.reviewService.Update(r.Context(), identity, pathUserID, reviewID, req.Content, req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// HandleDelete removes a review (and, through the cascade, its comments).
//
// HTTP: DELETE /users/{userID}/reviews/{reviewID} (RequireAuth)
func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("Authentication token required"))
		return
	}

	pathUserID, ok := idParam(r, "userID")
	if !ok {
		writeError(w, apperror.Forbidden("You are not authorized to perform this action"))
		return
	}
	reviewID, ok := idParam(r, "reviewID")
	if !ok {
		writeError(w, apperror.NotFound("Review not found"))
		return
	}

	if err := h.reviewService.Delete(r.Context(), identity, pathUserID, reviewID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}
