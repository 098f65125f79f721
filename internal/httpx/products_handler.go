package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/products"
)

type ProductsHandler struct {
	Svc *products.Service
	Log *slog.Logger
}

func (h *ProductsHandler) Register(r chi.Router) {
	if h.Log == nil {
		h.Log = logx.Discard()
	}
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/filter/price", h.byPrice)
		r.Get("/filter/name", h.byName)
		r.Get("/filter/category", h.byCategory)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var p products.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, h.Log, err)
		return
	}
	out, err := h.Svc.Add(r.Context(), p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.Svc.List(r.Context()))
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var p products.Product
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, h.Log, err)
		return
	}
	out, err := h.Svc.Update(r.Context(), id, p)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ProductsHandler) byPrice(w http.ResponseWriter, r *http.Request) {
	min, err := queryDecimal(r, "min")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	max, err := queryDecimal(r, "max")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.writeList(w)(h.Svc.ListByPriceRange(r.Context(), min, max))
}

func (h *ProductsHandler) byName(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.Svc.ListByName(r.Context(), r.URL.Query().Get("name")))
}

func (h *ProductsHandler) byCategory(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.Svc.ListByCategory(r.Context(), r.URL.Query().Get("category")))
}

func (h *ProductsHandler) writeList(w http.ResponseWriter) func([]products.Product, error) {
	return func(ps []products.Product, err error) {
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		if ps == nil {
			ps = []products.Product{}
		}
		writeJSON(w, http.StatusOK, ps)
	}
}

func queryDecimal(r *http.Request, name string) (decimal.Decimal, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return decimal.Zero, apperr.Invalid("missing query parameter: %s", name)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.Invalid("invalid %s: %q", name, raw)
	}
	return d, nil
}
