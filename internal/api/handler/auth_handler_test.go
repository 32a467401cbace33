package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/products-api/internal/core/domain"
	"github.com/99minutos/products-api/internal/core/ports"
)

type stubAuthService struct {
	taken      map[string]bool
	registered []ports.RegisterInput
	loginFn    func(ctx context.Context, email, password string) (*domain.Session, error)
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	s.registered = append(s.registered, in)
	return &domain.UserProfile{Email: in.Email, FullName: in.FullName}, nil
}

func (s *stubAuthService) EmailAvailable(_ context.Context, email string) (bool, error) {
	return !s.taken[email], nil
}

func (s *stubAuthService) ValidateCredentials(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) IssueSession(*domain.User) (*domain.Session, error) {
	return nil, domain.ErrInternal
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)
	c, rec := jsonRequest(newTestEcho(), http.MethodPost, "/auth/register",
		`{"email":"ada@example.com","password":"secret1","fullName":"Ada Lovelace"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"email": "ada@example.com", "fullName": "Ada Lovelace"}, body)
	require.Len(t, stub.registered, 1)
	assert.Equal(t, "secret1", stub.registered[0].Password)
}

func TestAuthHandler_Register_Invalid(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"missing email":  {`{"password":"secret1","fullName":"A"}`, "email"},
		"bad email":      {`{"email":"nope","password":"secret1","fullName":"A"}`, "email"},
		"short password": {`{"email":"a@example.com","password":"12345","fullName":"A"}`, "password"},
		"missing name":   {`{"email":"a@example.com","password":"secret1"}`, "fullName"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubAuthService{}
			c, _ := jsonRequest(newTestEcho(), http.MethodPost, "/auth/register", tc.body)

			err := NewAuthHandler(stub).Register(c)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
			assert.Empty(t, stub.registered)
		})
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{taken: map[string]bool{"ada@example.com": true}}
	c, _ := jsonRequest(newTestEcho(), http.MethodPost, "/auth/register",
		`{"email":"ada@example.com","password":"secret1","fullName":"Ada"}`)

	err := NewAuthHandler(stub).Register(c)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Email ada@example.com already exists"}, verr.Fields["email"])
	assert.Empty(t, stub.registered, "password must not be hashed for a taken email")
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	c, _ := jsonRequest(newTestEcho(), http.MethodPost, "/auth/register", `{"email":`)

	err := NewAuthHandler(&stubAuthService{}).Register(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.Session, error) {
			assert.Equal(t, "ada@example.com", email)
			assert.Equal(t, "secret1", password)
			return &domain.Session{
				AccessToken: "signed.jwt.token",
				User:        domain.UserProfile{Email: email, FullName: "Ada"},
			}, nil
		},
	}
	c, rec := jsonRequest(newTestEcho(), http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"secret1"}`)

	require.NoError(t, NewAuthHandler(stub).Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.token", body.AccessToken)
	assert.Equal(t, userResponse{Email: "ada@example.com", FullName: "Ada"}, body.User)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	called := false
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.Session, error) {
			called = true
			return nil, domain.ErrInvalidCredentials
		},
	}

	for _, body := range []string{
		`{"email":"ada@example.com","password":"wrong"}`,
		`{"email":"not-an-email","password":"x"}`,
		`{"email":`,
	} {
		c, _ := jsonRequest(newTestEcho(), http.MethodPost, "/auth/login", body)
		assert.ErrorIs(t, NewAuthHandler(stub).Login(c), domain.ErrInvalidCredentials, body)
	}
	assert.True(t, called)
}
