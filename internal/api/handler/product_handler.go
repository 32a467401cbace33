package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/products-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations. Every route is
// mounted behind the Auth middleware.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary      Products list with pagination
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default: 1)"
// @Param        limit  query     int  false  "Number of products per page (default: 10)"
// @Success      200    {object}  paginatedProductsResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	req := listProductsRequest{Page: defaultPage, Limit: defaultLimit}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := h.service.ListProducts(c.Request().Context(), claims, req.Page, req.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaginatedResponse(page))
}

// Create handles POST /products.
//
// @Summary      Add new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createProductRequest  true   "Product details"
// @Success      201              {object}  productResponse
// @Success      200              {object}  productResponse  "Replay of an earlier request with the same Idempotency-Key"
// @Failure      400              {object}  ErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Name:           req.Name,
		Price:          req.Price,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}, claims)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, toProductResponse(result.Product))
}

// Update handles PATCH /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product Id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), c.Param("id"), claims, toPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}

// Inactivate handles DELETE /products/:id. Products are never removed; they
// move to INACTIVE.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product Id"
// @Success      200  {object}  productResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Inactivate(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	product, err := h.service.InactivateProduct(c.Request().Context(), c.Param("id"), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product))
}
