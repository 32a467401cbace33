package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	// Uniqueness is part of input validation: a taken email is reported as a
	// field error and the password is never hashed.
	available, err := h.authService.EmailAvailable(ctx, req.Email)
	if err != nil {
		return err
	}
	if !available {
		verr := domain.NewValidationError()
		verr.Add("email", "Email "+req.Email+" already exists")
		return verr
	}

	profile, err := h.authService.Register(ctx, ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(*profile))
}

// Login authenticates a user and returns a JWT access token.
//
// @Summary      Login and get JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidCredentials
	}
	// A malformed login body is an authentication failure, not a 400.
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidCredentials
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: session.AccessToken,
		User:        toUserResponse(session.User),
	})
}
