package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/users"
)

type UsersHandler struct {
	Svc *users.Service
	Log *slog.Logger
}

func (h *UsersHandler) Register(r chi.Router) {
	if h.Log == nil {
		h.Log = logx.Discard()
	}
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	// Called by the order service only.
	r.Put("/internal/users/{id}/orders/{orderId}", h.addOrder)
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	var u users.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, h.Log, err)
		return
	}
	out, err := h.Svc.Add(r.Context(), u)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	us, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if us == nil {
		us = []users.User{}
	}
	writeJSON(w, http.StatusOK, us)
}

func (h *UsersHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	u, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var u users.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, h.Log, err)
		return
	}
	out, err := h.Svc.Update(r.Context(), id, u)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func (h *UsersHandler) addOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Svc.AddOrderToUser(r.Context(), id, orderID); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
