package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
	kafkax "github.com/ariefcatur/go-shop-services/internal/kafka"
	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/orders"
)

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Svc     *orders.Service
	Events  EventPublisher // nil disables order.placed events
	Service string
	Log     *slog.Logger
}

type CreateOrderReq struct {
	UserID     int64         `json:"userId"`
	OrderItems map[int64]int `json:"orderItems"`
}

type UpdateStatusReq struct {
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	if h.Log == nil {
		h.Log = logx.Discard()
	}
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
		r.Get("/user/{userId}", h.listByUser)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}/status", h.updateStatus)
	})
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if len(req.OrderItems) == 0 {
		writeError(w, h.Log, apperr.Invalid("Order must contain at least one item"))
		return
	}

	o, err := h.Svc.PlaceOrder(r.Context(), orders.Order{UserID: req.UserID, OrderItems: req.OrderItems})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.publishPlaced(r, o)
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) publishPlaced(r *http.Request, o orders.Order) {
	if h.Events == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       middleware.GetReqID(r.Context()),
		CorrelationID: orders.CorrelationID(o.ID),
		Payload:       kafkax.MustMarshal(orders.PlacedPayload(o)),
	}
	value := kafkax.MustMarshal(ev)
	h.Events.Publish(orders.PartitionKey(o.ID), value,
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	h.writeList(w)(h.Svc.ListOrders(r.Context()))
}

func (h *OrdersHandler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.writeList(w)(h.Svc.ListOrdersByUser(r.Context(), userID))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	o, err := h.Svc.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	var req UpdateStatusReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if !req.Status.Valid() {
		writeError(w, h.Log, apperr.Invalid("Invalid status: %s", req.Status))
		return
	}
	o, err := h.Svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) writeList(w http.ResponseWriter) func([]orders.Order, error) {
	return func(list []orders.Order, err error) {
		if err != nil {
			writeError(w, h.Log, err)
			return
		}
		if list == nil {
			list = []orders.Order{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}
