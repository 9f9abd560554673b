package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/review-hub/internal/apperror"
	"github.com/sakif/review-hub/internal/model"
	"github.com/sakif/review-hub/internal/service"
)

// ItemHandler serves the read-only item catalog.
type ItemHandler struct {
	itemService *service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(itemService *service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		logger:      logger,
	}
}

type itemListResponse struct {
	Items []model.Item `json:"items"`
}

// HandleList returns the catalog, optionally filtered.
//
// HTTP: GET /items?search=&category=
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.List(r.Context(),
		r.URL.Query().Get("search"),
		r.URL.Query().Get("category"),
	)
	if err != nil {
		h.logger.Error("item list failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemListResponse{Items: items})
}

// HandleGet returns a single item with its derived rating summary.
//
// HTTP: GET /items/{itemID}
func (h *ItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(r, "itemID")
	if !ok {
		writeError(w, apperror.NotFound("Item not found"))
		return
	}

	item, err := h.itemService.Get(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}
