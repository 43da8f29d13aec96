package api

import (
	"net/http"

	"github.com/banqueando/matchd/internal/catalog"
	"github.com/banqueando/matchd/internal/scoring"
)

type ProductsHandler struct {
	engines map[string]*scoring.Engine
}

func NewProductsHandler(engines map[string]*scoring.Engine) *ProductsHandler {
	return &ProductsHandler{engines: engines}
}

// List returns the raw catalog, optionally narrowed to one vertical.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	vertical := r.URL.Query().Get("vertical")
	if vertical != "" {
		engine, ok := h.engines[vertical]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown vertical"})
			return
		}
		writeJSON(w, http.StatusOK, engine.Products())
		return
	}

	var all []catalog.Product
	// Fixed iteration order so the combined listing is stable.
	for _, v := range []string{"cards", "credit"} {
		if engine, ok := h.engines[v]; ok {
			all = append(all, engine.Products()...)
		}
	}
	if all == nil {
		all = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, all)
}
