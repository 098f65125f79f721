package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-shop-services/internal/client"
	"github.com/ariefcatur/go-shop-services/internal/metrics"
	"github.com/ariefcatur/go-shop-services/internal/orders"
	"github.com/ariefcatur/go-shop-services/internal/products"
	"github.com/ariefcatur/go-shop-services/internal/users"
)

type published struct {
	Key, Value []byte
	Headers    []kafkago.Header
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (f *fakePublisher) Publish(key, value []byte, headers ...kafkago.Header) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{Key: key, Value: value, Headers: headers})
}

func (f *fakePublisher) all() []published {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]published(nil), f.msgs...)
}

// shop runs the three services against in-memory stores, wired over real HTTP
// the same way the binaries are.
type shop struct {
	Products, Users, Orders *httptest.Server

	ProductStore *products.MemStore
	UserStore    *users.MemStore
	OrderStore   *orders.MemStore
	Events       *fakePublisher
}

func newProductServer(t *testing.T, store products.Store) *httptest.Server {
	t.Helper()
	r := NewRouter(nil, metrics.NewServerMetrics("product_service"))
	(&ProductsHandler{Svc: products.NewService(store, nil, nil)}).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newUserServer(t *testing.T, store users.Store) *httptest.Server {
	t.Helper()
	r := NewRouter(nil, metrics.NewServerMetrics("user_service"))
	(&UsersHandler{Svc: users.NewService(store, nil)}).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newShop(t *testing.T) *shop {
	t.Helper()
	s := &shop{
		ProductStore: products.NewMemStore(),
		UserStore:    users.NewMemStore(),
		OrderStore:   orders.NewMemStore(),
		Events:       &fakePublisher{},
	}
	s.Products = newProductServer(t, s.ProductStore)
	s.Users = newUserServer(t, s.UserStore)

	svc := orders.NewService(s.OrderStore,
		client.NewProductClient(s.Products.URL, time.Second),
		client.NewUserClient(s.Users.URL, time.Second),
		nil, nil)
	r := NewRouter(nil, metrics.NewServerMetrics("order_service"))
	(&OrdersHandler{Svc: svc, Events: s.Events, Service: "order-service"}).Register(r)
	s.Orders = httptest.NewServer(r)
	t.Cleanup(s.Orders.Close)
	return s
}

func call(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			rd = bytes.NewBufferString(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			rd = bytes.NewReader(b)
		}
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decodeAs[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func errorMessage(t *testing.T, b []byte) string {
	t.Helper()
	return decodeAs[errorBody](t, b).Error
}

