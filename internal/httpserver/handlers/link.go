package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cloudnav/cloudnav/internal/domain"
	"github.com/cloudnav/cloudnav/internal/httpserver/deps"
	"github.com/cloudnav/cloudnav/internal/logger"
)

type quickAddRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
}

type quickAddResponse struct {
	Success      bool        `json:"success"`
	Link         domain.Link `json:"link"`
	CategoryName string      `json:"categoryName"`
}

// QuickAdd appends one link from a minimal payload, without the caller
// holding the full dataset. Intended for external callers such as a browser
// extension; the resolved category name rides back in the response so they
// can confirm without a second fetch.
func QuickAdd(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quickAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON body", Details: err.Error()})
			return
		}

		if req.Title == "" || req.URL == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing title or url"})
			return
		}

		env, err := d.Store.LoadEnvelope(r.Context())
		if err != nil {
			d.Logger.Error("quick-add failed to load envelope", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch data", Details: err.Error()})
			return
		}

		catID, catName := domain.ResolveCategory(env.Categories, req.CategoryID)

		now := d.Now()
		link := domain.Link{
			ID:          domain.NewLinkID(now),
			Title:       req.Title,
			URL:         req.URL,
			Description: req.Description,
			Icon:        req.Icon,
			CategoryID:  catID,
			Pinned:      false,
			CreatedAt:   now.UnixMilli(),
		}

		// Newest first.
		env.Links = append([]domain.Link{link}, env.Links...)

		if err := d.Store.SaveEnvelope(r.Context(), env); err != nil {
			d.Logger.Error("quick-add failed to save envelope", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to save data", Details: err.Error()})
			return
		}

		d.Logger.Info("quick-add stored link",
			logger.String("link_id", link.ID),
			logger.String("category_id", catID),
			logger.String("title", req.Title))

		writeJSON(w, http.StatusOK, quickAddResponse{
			Success:      true,
			Link:         link,
			CategoryName: catName,
		})
	}
}
