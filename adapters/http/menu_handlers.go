package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tiffinbox/tiffinbox/app"
	"github.com/tiffinbox/tiffinbox/domain/menu"
)

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  string    `json:"categoryId"`
	ImageURL    string    `json:"imageUrl"`
	IsAvailable bool      `json:"isAvailable"`
	IsAlcoholic bool      `json:"isAlcoholic"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCategoryResponse(c menu.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
	}
}

func toItemResponse(it menu.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		CategoryID:  it.CategoryID,
		ImageURL:    it.ImageURL,
		IsAvailable: it.IsAvailable,
		IsAlcoholic: it.IsAlcoholic,
		CreatedAt:   it.CreatedAt,
	}
}

// ListCategories returns all menu categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.menu.ListCategories(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list categories failed")
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListItems returns catalog items, filtered by ?category= when present.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error().Err(err).Msg("list items failed")
		writeError(w, http.StatusInternalServerError, "Failed to load items")
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	writeJSON(w, http.StatusOK, out)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// CreateCategory adds a new menu category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.menu.CreateCategory(r.Context(), req.Name, req.Description, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrDuplicateCategory):
			writeError(w, http.StatusConflict, "Category already exists")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

// UpdateCategory modifies a menu category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.menu.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req.Name, req.Description, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, http.StatusNotFound, "Category not found")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

// DeleteCategory removes an empty menu category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := h.menu.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, menu.ErrCategoryNotEmpty):
			writeError(w, http.StatusConflict, "Cannot delete category with existing items")
		default:
			h.logger.Error().Err(err).Msg("delete category failed")
			writeError(w, http.StatusInternalServerError, "Failed to delete category")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

type itemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
	IsAlcoholic bool    `json:"isAlcoholic"`
}

func (req itemRequest) params() app.ItemParams {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return app.ItemParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
		IsAlcoholic: req.IsAlcoholic,
	}
}

// CreateItem adds a new catalog item.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := h.menu.CreateItem(r.Context(), req.params())
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, http.StatusNotFound, "Category not found")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

// UpdateItem modifies a catalog item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	it, err := h.menu.UpdateItem(r.Context(), chi.URLParam(r, "id"), req.params())
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, http.StatusNotFound, "Item not found")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(it))
}

// DeleteItem removes a catalog item.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	err := h.menu.DeleteItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, menu.ErrNotFound):
			writeError(w, http.StatusNotFound, "Item not found")
		default:
			h.logger.Error().Err(err).Msg("delete item failed")
			writeError(w, http.StatusInternalServerError, "Failed to delete item")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}
