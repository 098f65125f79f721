package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
	"github.com/ariefcatur/go-shop-services/internal/products"
)

const productService = "product-service"

type ProductClient struct {
	baseURL string
	hc      *http.Client
}

func NewProductClient(baseURL string, timeout time.Duration) *ProductClient {
	return &ProductClient{baseURL: baseURL, hc: newHTTPClient(timeout)}
}

// GetProduct calls GET /products/{id}. A 404 yields (nil, nil).
func (c *ProductClient) GetProduct(ctx context.Context, id int64) (*products.Product, error) {
	var p products.Product
	err := do(ctx, c.hc, http.MethodGet, c.productURL(id), nil, &p)
	if isStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Upstream(productService, err)
	}
	return &p, nil
}

// UpdateProduct calls PUT /products/{id} with the full product body.
func (c *ProductClient) UpdateProduct(ctx context.Context, id int64, p products.Product) (products.Product, error) {
	var out products.Product
	err := do(ctx, c.hc, http.MethodPut, c.productURL(id), p, &out)
	if isStatus(err, http.StatusNotFound) {
		return products.Product{}, &products.Error{Kind: products.KindNotFound, ID: id}
	}
	if err != nil {
		return products.Product{}, apperr.Upstream(productService, err)
	}
	return out, nil
}

func (c *ProductClient) productURL(id int64) string {
	return fmt.Sprintf("%s/products/%d", c.baseURL, id)
}

func isStatus(err error, code int) bool {
	var se *statusError
	return errors.As(err, &se) && se.Status == code
}
