package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/products-api/internal/core/domain"
)

// ClaimsKey is the echo.Context key under which the Auth middleware stores
// the verified *domain.SessionClaims.
const ClaimsKey = "claims"

// ctxClaims extracts the claims injected by the Auth middleware and performs a
// fast-fail check before any service call: a token without a subject cannot
// own anything, so it is rejected with 401.
func ctxClaims(c echo.Context) (domain.SessionClaims, error) {
	claims, _ := c.Get(ClaimsKey).(*domain.SessionClaims)
	if claims == nil {
		return domain.SessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if claims.Subject == "" {
		return domain.SessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}
	return *claims, nil
}
