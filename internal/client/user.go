package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
	"github.com/ariefcatur/go-shop-services/internal/users"
)

const userService = "user-service"

type UserClient struct {
	baseURL string
	hc      *http.Client
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{baseURL: baseURL, hc: newHTTPClient(timeout)}
}

func (c *UserClient) GetUser(ctx context.Context, id int64) (users.User, error) {
	var u users.User
	err := do(ctx, c.hc, http.MethodGet, fmt.Sprintf("%s/users/%d", c.baseURL, id), nil, &u)
	if isStatus(err, http.StatusNotFound) {
		return users.User{}, users.NotFound(id)
	}
	if err != nil {
		return users.User{}, apperr.Upstream(userService, err)
	}
	return u, nil
}

// AddOrderToUser calls the internal PUT /internal/users/{id}/orders/{orderId}.
func (c *UserClient) AddOrderToUser(ctx context.Context, userID, orderID int64) error {
	url := fmt.Sprintf("%s/internal/users/%d/orders/%d", c.baseURL, userID, orderID)
	err := do(ctx, c.hc, http.MethodPut, url, nil, nil)
	if isStatus(err, http.StatusNotFound) {
		return users.NotFound(userID)
	}
	if err != nil {
		return apperr.Upstream(userService, err)
	}
	return nil
}
