package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/auth"
	"github.com/sakif/review-hub/internal/service"
)

// CommentHandler exposes comment creation and the owner-scoped mutations.
type CommentHandler struct {
	commentService *service.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(commentService *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// HandleCreate posts a comment on a review.
//
// HTTP: POST /items/{itemID}/reviews/{reviewID}/comments (RequireAuth)
// 201 on success; 400 for missing content; 404 when the review does not
// exist under that item.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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
	reviewID, ok := idParam(r, "reviewID")
	if !ok {
		writeError(w, apperror.NotFound("Review not found"))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "Invalid JSON body"))
		return
	}

	comment, err := h.commentService.Create(r.Context(), identity, itemID, reviewID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// HandleListMine returns the caller's own comments.
//
// HTTP: GET /comments/me (RequireAuth)
func (h *CommentHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("Authentication token required"))
		return
	}

	comments, err := h.commentService.ListMine(r.Context(), identity)
	if err != nil {
		h.logger.Error("listing own comments failed",
			slog.Int64("userID", identity.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// HandleUpdate edits a comment under the owner-scoped path.
//
// HTTP: PUT /users/{userID}/comments/{commentID} (RequireAuth)
func (h *CommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
	commentID, ok := idParam(r, "commentID")
	if !ok {
		writeError(w, apperror.NotFound("Comment not found"))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("", "Invalid JSON body"))
		return
	}

	comment, err := h.commentService.Update(r.Context(), identity, pathUserID, commentID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// HandleDelete removes a comment.
//
// HTTP: DELETE /users/{userID}/comments/{commentID} (RequireAuth)
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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
	commentID, ok := idParam(r, "commentID")
	if !ok {
		writeError(w, apperror.NotFound("Comment not found"))
		return
	}

	if err := h.commentService.Delete(r.Context(), identity, pathUserID, commentID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}
