package handler

import (
	"time"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

// ErrorResponse is the error envelope rendered by the central HTTP error
// handler on every 4xx/5xx response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// --- Request / Response types ---

type createProductRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type updateProductRequest struct {
	Name  *string  `json:"name"  validate:"omitnil,min=1"`
	Price *float64 `json:"price" validate:"omitnil,gt=0"`
}

type listProductsRequest struct {
	Page  int `query:"page"  validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// productResponse is the public product shape. Storage-only fields such as
// the Mongo _id and revision marker are never part of it.
type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Owner     string    `json:"owner"`
	Status    string    `json:"status"`
	Validated bool      `json:"validated"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type paginatedProductsResponse struct {
	Page         int               `json:"page"`
	Limit        int               `json:"limit"`
	TotalRecords int64             `json:"totalRecords"`
	TotalPages   int               `json:"totalPages"`
	Data         []productResponse `json:"data"`
}

// --- Service result → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Owner:     p.Owner,
		Status:    string(p.Status),
		Validated: p.Validated,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toPaginatedResponse(page *ports.ProductPage) paginatedProductsResponse {
	data := make([]productResponse, len(page.Data))
	for i, p := range page.Data {
		data[i] = toProductResponse(p)
	}
	return paginatedProductsResponse{
		Page:         page.Page,
		Limit:        page.Limit,
		TotalRecords: page.TotalRecords,
		TotalPages:   page.TotalPages,
		Data:         data,
	}
}

func toPatch(r updateProductRequest) ports.ProductPatch {
	return ports.ProductPatch{Name: r.Name, Price: r.Price}
}
